package engine

import (
	"strconv"
)

// Immutable snapshot of a single inbound chat message.
type Message struct {
	ChatID    int64
	MessageID int64
	SenderID  int64
	// Set when a channel posts under its own identity ("sending as chat");
	// zero otherwise. Checked against the exclusion set separately from
	// SenderID.
	SenderChatID int64
	// Raw message text. Empty means no text payload, which short-circuits all
	// processing.
	Text string
	// Indicates the message was forwarded from elsewhere. Forwarded content is
	// deleted outright and never evaluated by rules.
	Forwarded bool
}

// SenderKey is the registry key for the message's sender.
func (m Message) SenderKey() string {
	return strconv.FormatInt(m.SenderID, 10)
}

func (m Message) SenderChatKey() string {
	return strconv.FormatInt(m.SenderChatID, 10)
}
