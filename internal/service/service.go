// Package service contains the interview orchestration logic.
package service

import (
	"sync"

	"github.com/probeai/interviewd/internal/adapter/provider"
	"github.com/probeai/interviewd/internal/config"
	"github.com/probeai/interviewd/internal/store"
)

// Service coordinates the interview flow between the store and the reasoning
// provider.
type Service struct {
	store    store.Store
	provider provider.Provider
	config   *config.Config

	// One mutation in flight per interview ID at a time. Submissions on the
	// same session serialize here so the read-modify-write cannot interleave;
	// different sessions proceed fully in parallel.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates a new service.
func New(st store.Store, p provider.Provider, cfg *config.Config) *Service {
	return &Service{
		store:    st,
		provider: p,
		config:   cfg,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockInterview returns the mutation lock for an interview ID, creating it on
// first use. Locks are never reclaimed; they are a few words each and the
// session count is already bounded by the store's expiry.
func (s *Service) lockInterview(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	return mu
}
