package telegram

import (
	"fmt"

	"github.com/groupguard/bouncer/moderation/engine"
)

type User struct {
	ID int64 `json:"id"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// Subset of the Bot API message object which moderation cares about.
type ChatMessage struct {
	MessageID  int64  `json:"message_id"`
	From       *User  `json:"from,omitempty"`
	SenderChat *Chat  `json:"sender_chat,omitempty"`
	Chat       Chat   `json:"chat"`
	Text       string `json:"text,omitempty"`
	// unix timestamp of the original message for forwarded content; zero
	// otherwise
	ForwardDate int64 `json:"forward_date,omitempty"`
}

type Update struct {
	UpdateID int64        `json:"update_id"`
	Message  *ChatMessage `json:"message,omitempty"`
}

// Moderation converts the wire message to the engine's immutable snapshot.
func (m *ChatMessage) Moderation() engine.Message {
	out := engine.Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
		Forwarded: m.ForwardDate != 0,
	}
	if m.From != nil {
		out.SenderID = m.From.ID
	}
	if m.SenderChat != nil {
		out.SenderChatID = m.SenderChat.ID
	}
	return out
}

// Bot API chat permissions object.
type ChatPermissions struct {
	CanSendMessages       bool `json:"can_send_messages"`
	CanSendMediaMessages  bool `json:"can_send_media_messages"`
	CanSendOtherMessages  bool `json:"can_send_other_messages"`
	CanAddWebPagePreviews bool `json:"can_add_web_page_previews"`
	CanSendPolls          bool `json:"can_send_polls"`
	CanInviteUsers        bool `json:"can_invite_users"`
	CanPinMessages        bool `json:"can_pin_messages"`
	CanChangeInfo         bool `json:"can_change_info"`
}

func permissionsFromSet(p engine.PermissionSet) ChatPermissions {
	return ChatPermissions{
		CanSendMessages:       p.CanSendMessages,
		CanSendMediaMessages:  p.CanSendMedia,
		CanSendOtherMessages:  p.CanSendOther,
		CanAddWebPagePreviews: p.CanAddWebPagePreviews,
		CanSendPolls:          p.CanSendPolls,
		CanInviteUsers:        p.CanInviteUsers,
		CanPinMessages:        p.CanPinMessages,
		CanChangeInfo:         p.CanChangeInfo,
	}
}

// Bot API error response.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d: %s", e.Code, e.Description)
}
