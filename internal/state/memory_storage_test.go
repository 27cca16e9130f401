package state

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStorage_SetGetClear(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	if _, err := storage.GetState(ctx, 1); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}

	if err := storage.SetState(ctx, 1, &UserState{CurrentState: StateAwaitingLink}); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	got, err := storage.GetState(ctx, 1)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if got.CurrentState != StateAwaitingLink {
		t.Fatalf("expected %s, got %s", StateAwaitingLink, got.CurrentState)
	}
	if got.UserID != 1 {
		t.Fatalf("expected user id 1, got %d", got.UserID)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be stamped")
	}

	// Mutating the returned state must not affect the stored copy.
	got.CurrentState = StateError
	again, err := storage.GetState(ctx, 1)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if again.CurrentState != StateAwaitingLink {
		t.Fatalf("stored state mutated through returned pointer: %s", again.CurrentState)
	}

	if err := storage.ClearState(ctx, 1); err != nil {
		t.Fatalf("ClearState: %v", err)
	}
	if _, err := storage.GetState(ctx, 1); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound after clear, got %v", err)
	}

	// Clearing an unknown user is a no-op.
	if err := storage.ClearState(ctx, 99); err != nil {
		t.Fatalf("ClearState unknown: %v", err)
	}
}

func TestMemoryStorage_GetAllStates(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	for i := int64(1); i <= 3; i++ {
		if err := storage.SetState(ctx, i, &UserState{CurrentState: StateAwaitingName}); err != nil {
			t.Fatalf("SetState(%d): %v", i, err)
		}
	}

	states, err := storage.GetAllStates(ctx)
	if err != nil {
		t.Fatalf("GetAllStates: %v", err)
	}
	if len(states) != 3 {
		t.Fatalf("expected 3 states, got %d", len(states))
	}
	for _, s := range states {
		if s.CurrentState != StateAwaitingName {
			t.Fatalf("unexpected state %s", s.CurrentState)
		}
	}
}
