package engine

import (
	"context"
	"time"
)

// Set of chat permissions applied when a sender is restricted. The zero value
// disables everything, which is what every rule match applies.
type PermissionSet struct {
	CanSendMessages       bool
	CanSendMedia          bool
	CanSendOther          bool
	CanAddWebPagePreviews bool
	CanSendPolls          bool
	CanInviteUsers        bool
	CanPinMessages        bool
	CanChangeInfo         bool
}

// RestrictedPermissions is the permission set applied on every rule match.
var RestrictedPermissions = PermissionSet{}

// Gateway is the messaging-platform API surface the engine enforces through.
// Both operations are best-effort from the engine's point of view: failures are
// logged or skipped, never retried, and never roll back local bookkeeping.
type Gateway interface {
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	RestrictSender(ctx context.Context, chatID, senderID int64, until time.Time, perms PermissionSet) error
}
