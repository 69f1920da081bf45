package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/probeai/interviewd/internal/domain"
)

// MemoryStore is an in-memory Store with time-based expiry. Suitable for
// single-instance deployments; growth is bounded only by the idle timeout, so
// multi-instance or long-lived deployments should use SQLiteStore instead.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	timeout time.Duration

	// now is stubbed in tests to drive expiry deterministically.
	now func() time.Time
}

type memoryEntry struct {
	interview *domain.Interview
	lastTouch time.Time
}

// NewMemoryStore creates a memory store whose sessions expire after the given
// idle timeout.
func NewMemoryStore(timeout time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		timeout: timeout,
		now:     time.Now,
	}
}

// Create stores a new interview.
func (s *MemoryStore) Create(ctx context.Context, iv *domain.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[iv.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, iv.ID)
	}
	s.entries[iv.ID] = &memoryEntry{interview: iv.Clone(), lastTouch: s.now()}
	return nil
}

// Get returns a copy of the interview, refreshing its lifetime. Expired
// entries are removed on the spot.
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	if s.now().Sub(e.lastTouch) > s.timeout {
		delete(s.entries, id)
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	e.lastTouch = s.now()
	return e.interview.Clone(), nil
}

// Update overwrites an existing interview.
func (s *MemoryStore) Update(ctx context.Context, iv *domain.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[iv.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, iv.ID)
	}
	s.entries[iv.ID] = &memoryEntry{interview: iv.Clone(), lastTouch: s.now()}
	return nil
}

// Delete removes an interview. Idempotent.
func (s *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return false, nil
	}
	delete(s.entries, id)
	return true, nil
}

// SweepExpired removes every entry past the idle timeout.
func (s *MemoryStore) SweepExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastTouch) > s.timeout {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

// ActiveCount sweeps, then counts live sessions.
func (s *MemoryStore) ActiveCount(ctx context.Context) (int, error) {
	if _, err := s.SweepExpired(ctx); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

// List returns copies of all live sessions.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.Interview, error) {
	if _, err := s.SweepExpired(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Interview, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.interview.Clone())
	}
	return out, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
