package engine

import (
	"context"
	"strconv"
)

// Number of message IDs scanned on each side of the triggering message when
// sweeping a sender's recent messages. No exact index of a sender's message IDs
// is maintained; the bounded scan trades completeness for simplicity.
var SweepRange int64 = 100

// Persists registry mutations queued during rule execution, then performs
// gateway enforcement for each queued restriction.
//
// Ordering is load-bearing: every registry mutation (duplicate tracking, window
// resets, ban bookkeeping) commits before the first gateway call, so the next
// message observes the new state even if a gateway call blocks or fails. Ban
// registry entries commit regardless of gateway outcome; local state is
// authoritative for local message-dropping.
func (eng *Engine) persistMessageEffects(ctx context.Context, c *MessageContext) error {
	eff := c.effects

	if eff.TrackDuplicate {
		if err := eng.Dupes.Add(ctx, c.Message.Text, c.Message.SenderKey()); err != nil {
			return err
		}
	}
	if eff.ClearDuplicates {
		if err := eng.Dupes.Clear(ctx, c.Message.Text); err != nil {
			return err
		}
	}
	for _, sender := range eff.WindowClears {
		if err := eng.Windows.Clear(ctx, sender); err != nil {
			return err
		}
	}
	for _, ref := range eff.Restrictions {
		if err := eng.Bans.Set(ctx, ref.Sender, ref.Until); err != nil {
			return err
		}
	}

	for _, ref := range eff.Restrictions {
		eng.enforceRestriction(ctx, c, ref)
	}
	return nil
}

// enforceRestriction sweeps the sender's recent messages and applies the timed
// permission restriction. The two gateway operations are independent
// best-effort steps, not a transaction: a failed restriction does not roll back
// deletions, and the ban registry entry is already committed either way.
func (eng *Engine) enforceRestriction(ctx context.Context, c *MessageContext, ref RestrictionRef) {
	deleted := eng.sweepDelete(ctx, c.Message.ChatID, c.Message.MessageID)
	c.Logger.Info("swept recent messages", "sender", ref.Sender, "deleted", deleted, "reason", ref.Reason)

	senderID, err := strconv.ParseInt(ref.Sender, 10, 64)
	if err != nil {
		c.Logger.Error("invalid sender key on restriction", "err", err, "sender", ref.Sender)
		return
	}
	if err := eng.Gateway.RestrictSender(ctx, c.Message.ChatID, senderID, ref.Until, RestrictedPermissions); err != nil {
		c.Logger.Error("restricting sender failed", "err", err, "sender", ref.Sender, "until", ref.Until)
		restrictionFailCount.WithLabelValues(ref.Reason).Inc()
		return
	}
	c.Logger.Info("sender restricted", "sender", ref.Sender, "until", ref.Until, "reason", ref.Reason)
	restrictionCount.WithLabelValues(ref.Reason).Inc()
}

// sweepDelete attempts removal of every message ID in a bounded range around
// the triggering message, scanning from most-recent to oldest. Each individual
// deletion is best-effort: messages already absent, not owned by this actor, or
// failing in transport are silently skipped.
func (eng *Engine) sweepDelete(ctx context.Context, chatID, aroundID int64) int {
	deleted := 0
	floor := aroundID - SweepRange
	if floor < 0 {
		floor = 0
	}
	for id := aroundID + SweepRange; id > floor; id-- {
		if err := eng.Gateway.DeleteMessage(ctx, chatID, id); err != nil {
			continue
		}
		deleted++
		messageDeleteCount.Inc()
	}
	return deleted
}
