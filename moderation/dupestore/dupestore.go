// Duplicate-text tracking for cross-sender flood detection.
//
// Maps exact message text to the set of senders who have posted it and have not
// yet triggered a flood match. Entries are cleared whole (not per-sender) once a
// flood fires on that text, so the same group of senders cannot immediately
// re-trigger. Includes an interface and implementations using redis and
// in-process memory; both expire idle entries after a fixed TTL.
package dupestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

type DupeStore interface {
	// Senders returns the senders currently recorded against the text.
	Senders(ctx context.Context, text string) ([]string, error)
	Add(ctx context.Context, text, sender string) error
	Clear(ctx context.Context, text string) error
}

// stable key for arbitrary message text
func textKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
