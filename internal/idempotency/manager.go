// Package idempotency deduplicates Telegram updates so redelivered events
// are handled at most once.
package idempotency

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager records processed update keys and reports duplicates.
type Manager interface {
	// FirstSeen marks key as processed for ttl and reports whether this was
	// the first time it was seen.
	FirstSeen(ctx context.Context, key string, ttl time.Duration) bool
}

type memoryManager struct {
	mu   sync.Mutex
	seen map[string]time.Time
	log  *slog.Logger
}

// NewMemoryManager creates an in-process Manager. Keys are forgotten on
// restart, which is acceptable: Telegram only redelivers updates within a
// short window.
func NewMemoryManager(log *slog.Logger) Manager {
	if log == nil {
		log = slog.Default()
	}

	return &memoryManager{
		seen: make(map[string]time.Time),
		log:  log,
	}
}

func (m *memoryManager) FirstSeen(ctx context.Context, key string, ttl time.Duration) bool {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, exists := m.seen[key]
	if exists && expiry.After(now) {
		m.log.Debug("duplicate update suppressed", slog.String("key", key))
		return false
	}

	m.seen[key] = now.Add(ttl)
	return true
}

// Cleanup drops expired keys. Intended to be called periodically.
func (m *memoryManager) Cleanup() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, expiry := range m.seen {
		if expiry.Before(now) {
			delete(m.seen, key)
		}
	}
}
