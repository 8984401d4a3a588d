package engine

import (
	"context"
	"log/slog"
	"time"
)

// The primary interface exposed to rules.
type BaseContext struct {
	// Actual golang "context.Context", if needed for timeouts etc
	Ctx context.Context
	// Any errors encountered while processing methods on this struct (or sub-types) get rolled up in this nullable field
	Err error
	// slog logger handle, with event-specific structured fields pre-populated. Pointer, but expected to never be nil.
	Logger *slog.Logger

	engine  *Engine // NOTE: pointer, but expected never to be nil
	effects *Effects
}

// Represents a single inbound message being evaluated by the rule chain.
type MessageContext struct {
	BaseContext

	Message Message
}

func NewMessageContext(ctx context.Context, eng *Engine, msg Message) MessageContext {
	return MessageContext{
		BaseContext: BaseContext{
			Ctx:     ctx,
			Err:     nil,
			Logger:  eng.Logger.With("chat", msg.ChatID, "message", msg.MessageID, "sender", msg.SenderID),
			engine:  eng,
			effects: &Effects{},
		},
		Message: msg,
	}
}

// request external state via engine (indirect) ======

// checks if `val` is an element of set `name`
func (c *BaseContext) InSet(name, val string) bool {
	out, err := c.engine.Sets.InSet(c.Ctx, name, val)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return false
	}
	return out
}

// DuplicateSenders returns the senders already recorded against this exact
// message text in the duplicate-text registry.
func (c *MessageContext) DuplicateSenders() []string {
	out, err := c.engine.Dupes.Senders(c.Ctx, c.Message.Text)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return nil
	}
	return out
}

// PushActivity prunes the sender's activity window to the retention horizon,
// records the current timestamp, and returns the resulting window size. This
// mutates the window store immediately (not via effects) so the very next
// message observes it.
func (c *MessageContext) PushActivity() int {
	out, err := c.engine.Windows.Push(c.Ctx, c.Message.SenderKey(), time.Now())
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return 0
	}
	return out
}

// update effects (indirect) ======

// RestrictSender enqueues a timed restriction on the message's sender, which
// also marks the message as matched and short-circuits the rule chain.
func (c *MessageContext) RestrictSender(reason string, period time.Duration) {
	c.effects.Restrict(c.Message.SenderKey(), time.Now().Add(period), reason)
}

// RestrictAccount enqueues a timed restriction on another sender (a
// co-offender, eg a flood participant).
func (c *MessageContext) RestrictAccount(sender string, reason string, period time.Duration) {
	c.effects.Restrict(sender, time.Now().Add(period), reason)
}

// TrackDuplicate enqueues recording the current sender against this message
// text in the duplicate-text registry.
func (c *MessageContext) TrackDuplicate() {
	c.effects.TrackDuplicate = true
}

// ClearDuplicates enqueues clearing the duplicate-text entry for this message
// text entirely (not per-sender), so a fresh tracking cycle starts.
func (c *MessageContext) ClearDuplicates() {
	c.effects.ClearDuplicates = true
}

// ClearActivity enqueues resetting the sender's activity window.
func (c *MessageContext) ClearActivity() {
	c.effects.ClearWindow(c.Message.SenderKey())
}

// Matched indicates a prior rule already triggered enforcement.
func (c *MessageContext) Matched() bool {
	return c.effects.Matched()
}
