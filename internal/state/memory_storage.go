package state

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage keeps user FSM states in process memory. Telebot delivers
// updates on separate goroutines, so access is guarded by a mutex. State is
// intentionally not persisted: restarts drop in-flight conversations.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[int64]UserState
}

// NewMemoryStorage initializes an in-memory Storage implementation.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		states: make(map[int64]UserState),
	}
}

// GetState returns the stored user state or ErrStateNotFound when absent.
func (s *MemoryStorage) GetState(ctx context.Context, userID int64) (*UserState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.states[userID]
	if !ok {
		return nil, ErrStateNotFound
	}

	copied := stored
	return &copied, nil
}

// SetState saves the provided state for the user, stamping UpdatedAt.
func (s *MemoryStorage) SetState(ctx context.Context, userID int64, state *UserState) error {
	if state == nil {
		return ErrStateNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *state
	stored.UserID = userID
	stored.UpdatedAt = time.Now().UTC()
	s.states[userID] = stored

	return nil
}

// ClearState removes the state for the user. Clearing an absent state is a no-op.
func (s *MemoryStorage) ClearState(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, userID)
	return nil
}

// GetAllStates returns a snapshot of every stored user state.
func (s *MemoryStorage) GetAllStates(ctx context.Context) ([]*UserState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make([]*UserState, 0, len(s.states))
	for _, stored := range s.states {
		copied := stored
		states = append(states, &copied)
	}

	return states, nil
}
