package rules

import (
	"github.com/groupguard/bouncer/moderation/engine"
)

// Classification reasons recorded on restrictions.
const (
	ReasonAmountMention   = "amount-mention"
	ReasonNumericSequence = "numeric-sequence"
	ReasonDuplicateFlood  = "duplicate-flood"
	ReasonBurstSpam       = "burst-spam"
)

func DefaultRules() engine.RuleSet {
	rules := engine.RuleSet{
		MessageRules: []engine.MessageRuleFunc{
			// priority order: the first match suppresses the rest of the chain
			AmountMentionRule,
			NumericSequenceRule,
			DuplicateFloodRule,
			BurstSpamRule,
		},
	}
	return rules
}
