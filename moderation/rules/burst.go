package rules

import (
	"time"

	"github.com/groupguard/bouncer/moderation/engine"
)

var (
	burstThreshold         = 3
	burstRestrictionPeriod = 20 * 24 * time.Hour
)

var _ engine.MessageRuleFunc = BurstSpamRule

// BurstSpamRule records the message timestamp in the sender's activity window
// (pruned to the retention horizon on every push) and fires once the window
// reaches the threshold. The window is reset after a match so the count starts
// over when the restriction lapses.
func BurstSpamRule(c *engine.MessageContext) error {
	n := c.PushActivity()
	if n >= burstThreshold {
		c.Logger.Info("burst spam detected", "windowSize", n)
		c.RestrictSender(ReasonBurstSpam, burstRestrictionPeriod)
		c.ClearActivity()
	}
	return nil
}
