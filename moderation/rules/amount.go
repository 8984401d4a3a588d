package rules

import (
	"regexp"
	"time"

	"github.com/groupguard/bouncer/moderation/engine"
)

// one or more digits, optional whitespace, then a currency-shorthand letter
// (Latin or Cyrillic "k")
var amountPattern = regexp.MustCompile(`\d+\s*[кКkK]`)

var amountRestrictionPeriod = 7 * 24 * time.Hour

var _ engine.MessageRuleFunc = AmountMentionRule

// AmountMentionRule flags solicitation-style messages quoting a monetary
// amount, eg "50к" or "10 k". Runs before NumericSequenceRule: the patterns
// overlap on digit runs, and this one is strictly more specific, so a "50к"
// message classifies as solicitation rather than a generic numeric sequence.
func AmountMentionRule(c *engine.MessageContext) error {
	if amountPattern.MatchString(c.Message.Text) {
		c.Logger.Info("amount mention detected")
		c.RestrictSender(ReasonAmountMention, amountRestrictionPeriod)
	}
	return nil
}
