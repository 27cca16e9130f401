package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryLimiterAllowsUpToLimit(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryLimiter(testLogger())

	for i := 0; i < 3; i++ {
		result, err := limiter.Check(ctx, "user:1", 3, time.Minute)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("check %d should be allowed", i)
		}
	}

	result, err := limiter.Check(ctx, "user:1", 3, time.Minute)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if result.Allowed {
		t.Fatal("fourth check must be denied")
	}
	if result.Remaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", result.Remaining)
	}
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryLimiter(testLogger())

	if _, err := limiter.Check(ctx, "user:1", 1, time.Minute); err != nil {
		t.Fatalf("first key: %v", err)
	}

	result, err := limiter.Check(ctx, "user:2", 1, time.Minute)
	if err != nil {
		t.Fatalf("second key: %v", err)
	}
	if !result.Allowed {
		t.Fatal("a different key must have its own bucket")
	}
}

func TestMemoryLimiterWindowExpiry(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryLimiter(testLogger())

	if _, err := limiter.Check(ctx, "user:1", 1, 10*time.Millisecond); err != nil {
		t.Fatalf("first check: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	result, err := limiter.Check(ctx, "user:1", 1, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("post-window check: %v", err)
	}
	if !result.Allowed {
		t.Fatal("request after the window must be allowed")
	}
}

func TestMemoryLimiterCleanup(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryLimiter(testLogger())

	if _, err := limiter.Check(ctx, "user:1", 5, time.Minute); err != nil {
		t.Fatalf("check: %v", err)
	}

	limiter.Cleanup(time.Nanosecond)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.buckets) != 0 {
		t.Fatalf("expected empty buckets after cleanup, got %d", len(limiter.buckets))
	}
}
