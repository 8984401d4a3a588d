package rules

import (
	"time"

	"github.com/groupguard/bouncer/moderation/engine"
)

var floodRestrictionPeriod = 3 * 24 * time.Hour

var _ engine.MessageRuleFunc = DuplicateFloodRule

// DuplicateFloodRule looks for identical message text posted by two or more
// distinct senders. The affected-sender set is the union of previously recorded
// senders and the current one; all of them are restricted and swept. The
// duplicate-text entry is then cleared entirely, so the same group cannot
// immediately re-trigger on that text and a third identical post starts a fresh
// tracking cycle.
func DuplicateFloodRule(c *engine.MessageContext) error {
	prior := c.DuplicateSenders()
	if len(prior) > 0 {
		c.Logger.Info("cross-sender flood detected", "priorSenders", len(prior))
		c.RestrictSender(ReasonDuplicateFlood, floodRestrictionPeriod)
		for _, other := range prior {
			if other == c.Message.SenderKey() {
				continue
			}
			c.RestrictAccount(other, ReasonDuplicateFlood, floodRestrictionPeriod)
		}
		c.ClearDuplicates()
		return nil
	}
	c.TrackDuplicate()
	return nil
}
