// Package store defines the interview storage interface and implementations.
package store

import (
	"context"

	"github.com/probeai/interviewd/internal/domain"
)

// Store is the exclusive holder of interview sessions and the authority on
// their existence and expiry. Implementations must serialize all mutating
// operations; the expiry check inside Get is atomic with respect to every
// other operation on the same ID.
type Store interface {
	// Create stores a new interview keyed by its ID and records a fresh
	// last-touch timestamp. Fails with domain.ErrAlreadyExists on collision.
	Create(ctx context.Context, iv *domain.Interview) error

	// Get returns the interview if present and not expired. A successful
	// read refreshes the last-touch timestamp, so active sessions survive
	// while abandoned ones age out. An expired entry is removed as a side
	// effect. Fails with domain.ErrNotFound on miss or expiry.
	Get(ctx context.Context, id string) (*domain.Interview, error)

	// Update overwrites the interview by ID, refreshing last-touch. Fails
	// with domain.ErrNotFound if the ID is absent.
	Update(ctx context.Context, iv *domain.Interview) error

	// Delete removes an interview. Idempotent; reports whether an entry was
	// actually removed.
	Delete(ctx context.Context, id string) (bool, error)

	// SweepExpired removes all expired entries and returns how many were
	// removed.
	SweepExpired(ctx context.Context) (int, error)

	// ActiveCount sweeps first, then returns the number of live sessions.
	ActiveCount(ctx context.Context) (int, error)

	// List returns all live sessions.
	List(ctx context.Context) ([]*domain.Interview, error)

	// Close releases backing resources.
	Close() error
}
