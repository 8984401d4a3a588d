// Per-sender sliding windows of recent activity timestamps, used for burst-spam
// detection.
//
// Entries older than the configured retention horizon are pruned on every push,
// so the reported size only ever counts recent activity. Includes an interface
// and implementations using redis and in-process memory.
package windowstore

import (
	"context"
	"time"
)

type WindowStore interface {
	// Push prunes entries older than the retention horizon (relative to "at"),
	// appends "at", and returns the resulting window size.
	Push(ctx context.Context, sender string, at time.Time) (int, error)
	Clear(ctx context.Context, sender string) error
}
