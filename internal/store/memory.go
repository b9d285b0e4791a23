package store

import (
	"context"
	"sync"

	"github.com/nhle/okr-dashboard/internal/model"
)

// MemoryStore is an in-memory Store used by tests and ephemeral runs.
// Nothing survives process exit.
type MemoryStore struct {
	mu         sync.Mutex
	objectives []model.Objective
	written    bool

	// WriteErr, when set, is returned by every WriteSnapshot call.
	// Tests use it to simulate an unavailable store.
	WriteErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ReadSnapshot returns the last written objective list.
func (s *MemoryStore) ReadSnapshot(_ context.Context) ([]model.Objective, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.written {
		return nil, false, nil
	}
	return model.CloneObjectives(s.objectives), true, nil
}

// WriteSnapshot replaces the stored objective list.
func (s *MemoryStore) WriteSnapshot(_ context.Context, objectives []model.Objective) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.objectives = model.CloneObjectives(objectives)
	s.written = true
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
