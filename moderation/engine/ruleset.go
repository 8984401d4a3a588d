package engine

// Holds the ordered chain of message classifiers, and dispatches messages to them.
type RuleSet struct {
	MessageRules []MessageRuleFunc
}

// Executes the message rules in order. The first rule that matches (enqueues a
// restriction) suppresses evaluation of all subsequent rules for this message.
func (r *RuleSet) CallMessageRules(c *MessageContext) error {
	for _, f := range r.MessageRules {
		err := f(c)
		if err != nil {
			return err
		}
		if c.Matched() {
			break
		}
	}
	return nil
}
