package engine

import (
	"time"
)

type RestrictionRef struct {
	Sender string
	Until  time.Time
	Reason string
}

// Mutable container for all the possible side-effects from rule execution.
//
// Rules enqueue effects during evaluation; the engine persists registry
// mutations first and then performs gateway enforcement, so that registry state
// is visible to the very next message even if a gateway call is still in flight
// or fails.
type Effects struct {
	// Restrictions to apply as a result of rule execution. The first entry is
	// always the triggering sender; additional entries are co-offenders (eg,
	// cross-sender flood participants).
	Restrictions []RestrictionRef
	// Indicates the current sender should be recorded against the message text
	// in the duplicate-text registry.
	TrackDuplicate bool
	// Indicates the duplicate-text entry for the message text should be
	// cleared entirely.
	ClearDuplicates bool
	// Senders whose activity windows should be reset.
	WindowClears []string
}

// Enqueues a timed restriction on a sender. A restriction on a sender already
// present is ignored: the first matching rule wins.
func (e *Effects) Restrict(sender string, until time.Time, reason string) {
	for _, ref := range e.Restrictions {
		if ref.Sender == sender {
			return
		}
	}
	e.Restrictions = append(e.Restrictions, RestrictionRef{Sender: sender, Until: until, Reason: reason})
}

func (e *Effects) ClearWindow(sender string) {
	e.WindowClears = append(e.WindowClears, sender)
}

// Matched indicates some rule has triggered enforcement, which suppresses
// evaluation of subsequent rules for this message.
func (e *Effects) Matched() bool {
	return len(e.Restrictions) > 0
}

// MatchReason is the classification of the first (triggering) restriction, or
// empty when no rule matched.
func (e *Effects) MatchReason() string {
	if len(e.Restrictions) == 0 {
		return ""
	}
	return e.Restrictions[0].Reason
}
