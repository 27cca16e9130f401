package idempotency

import (
	"context"
	"time"
)

// StartCleaner runs periodic expiry for a memory-backed manager until ctx is
// cancelled. Managers of other types are left alone.
func StartCleaner(ctx context.Context, manager Manager, interval time.Duration) {
	m, ok := manager.(*memoryManager)
	if !ok || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Cleanup()
			}
		}
	}()
}
