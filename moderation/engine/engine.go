package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/groupguard/bouncer/moderation/banstore"
	"github.com/groupguard/bouncer/moderation/dupestore"
	"github.com/groupguard/bouncer/moderation/setstore"
	"github.com/groupguard/bouncer/moderation/windowstore"
)

// Name of the set holding sender IDs exempt from all checks.
var ExcludedSendersSet = "excluded-senders"

// runtime for executing rules, managing state, and enforcing moderation actions.
//
// TODO: careful when initializing: several fields should not be null or zero, even though they are pointer type.
type Engine struct {
	Logger  *slog.Logger
	Rules   RuleSet
	Gateway Gateway
	Windows windowstore.WindowStore
	Bans    banstore.BanStore
	Dupes   dupestore.DupeStore
	Sets    setstore.SetStore
}

// ProcessMessage is the single entry point for inbound messages: pre-filters,
// then the rule chain, then enforcement of any queued effects. Invoked once per
// message; a failure is terminal to that invocation only, never fatal to the
// process.
func (eng *Engine) ProcessMessage(ctx context.Context, msg Message) error {
	// similar to an HTTP server, we want to recover any panics from rule execution
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("moderation event execution exception", "err", r, "chat", msg.ChatID, "message", msg.MessageID)
		}
	}()
	start := time.Now()
	defer func() {
		messageProcessDuration.Observe(time.Since(start).Seconds())
	}()
	messageProcessCount.Inc()

	if msg.Text == "" {
		return nil
	}

	excluded, err := eng.senderExcluded(ctx, msg)
	if err != nil {
		messageErrorCount.Inc()
		return err
	}
	if excluded {
		eng.Logger.Debug("skipping excluded sender", "sender", msg.SenderID, "senderChat", msg.SenderChatID)
		return nil
	}

	if msg.Forwarded {
		eng.Logger.Info("deleting forwarded message", "chat", msg.ChatID, "message", msg.MessageID)
		if err := eng.Gateway.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
			eng.Logger.Error("deleting forwarded message failed", "err", err, "chat", msg.ChatID, "message", msg.MessageID)
		} else {
			messageDeleteCount.Inc()
		}
		return nil
	}

	proceed, err := eng.checkRestriction(ctx, msg)
	if err != nil {
		messageErrorCount.Inc()
		return err
	}
	if !proceed {
		return nil
	}

	mc := NewMessageContext(ctx, eng, msg)
	eng.Logger.Debug("processing message", "chat", msg.ChatID, "message", msg.MessageID)
	if err := eng.Rules.CallMessageRules(&mc); err != nil {
		// fails open: the message is left in place, no enforcement
		mc.Logger.Error("rule execution failed", "err", err)
		messageErrorCount.Inc()
		return nil
	}
	eng.CanonicalLogLineMessage(&mc)
	return eng.persistMessageEffects(ctx, &mc)
}

// checks both the direct sender and the distinct "sending-as-chat" identity
func (eng *Engine) senderExcluded(ctx context.Context, msg Message) (bool, error) {
	excluded, err := eng.Sets.InSet(ctx, ExcludedSendersSet, msg.SenderKey())
	if err != nil {
		return false, err
	}
	if excluded {
		return true, nil
	}
	if msg.SenderChatID != 0 {
		excluded, err = eng.Sets.InSet(ctx, ExcludedSendersSet, msg.SenderChatKey())
		if err != nil {
			return false, err
		}
	}
	return excluded, nil
}

// checkRestriction applies the active-restriction pre-filter: messages from a
// restricted sender are deleted without rule evaluation. Entries whose expiry
// has passed are removed lazily and processing continues normally. Returns
// whether rule evaluation should proceed.
func (eng *Engine) checkRestriction(ctx context.Context, msg Message) (bool, error) {
	sender := msg.SenderKey()
	until, ok, err := eng.Bans.Get(ctx, sender)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	if time.Now().Before(until) {
		eng.Logger.Debug("deleting message from restricted sender", "sender", sender, "until", until)
		if err := eng.Gateway.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
			eng.Logger.Error("deleting restricted sender message failed", "err", err, "chat", msg.ChatID, "message", msg.MessageID)
		} else {
			messageDeleteCount.Inc()
		}
		return false, nil
	}
	eng.Logger.Info("restriction expired", "sender", sender, "until", until)
	if err := eng.Bans.Remove(ctx, sender); err != nil {
		return false, err
	}
	return true, nil
}

func (eng *Engine) CanonicalLogLineMessage(c *MessageContext) {
	c.Logger.Info("canonical-event-line",
		"match", c.effects.MatchReason(),
		"restrictions", len(c.effects.Restrictions),
		"ruleErr", c.Err,
	)
}
