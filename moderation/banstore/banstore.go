// Active sender restrictions, keyed by sender ID.
//
// At most one restriction is active per sender; setting a new expiry overwrites
// rather than extends. Entries are removed lazily once expiry has passed, by the
// engine's pre-filter. Includes an interface and implementations using redis and
// in-process memory.
package banstore

import (
	"context"
	"time"
)

type BanStore interface {
	// Get returns the restriction expiry for the sender, and whether an entry
	// exists. Callers are responsible for lazy expiry: an entry with a past
	// expiry is still returned.
	Get(ctx context.Context, sender string) (time.Time, bool, error)
	Set(ctx context.Context, sender string, until time.Time) error
	Remove(ctx context.Context, sender string) error
}
