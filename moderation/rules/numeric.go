package rules

import (
	"regexp"
	"time"

	"github.com/groupguard/bouncer/moderation/engine"
)

var numericSequencePattern = regexp.MustCompile(`\d{3,}`)

var numericRestrictionPeriod = 24 * time.Hour

var _ engine.MessageRuleFunc = NumericSequenceRule

// NumericSequenceRule flags messages containing a run of 3 or more consecutive
// digits.
func NumericSequenceRule(c *engine.MessageContext) error {
	if numericSequencePattern.MatchString(c.Message.Text) {
		c.Logger.Info("numeric sequence detected")
		c.RestrictSender(ReasonNumericSequence, numericRestrictionPeriod)
	}
	return nil
}
