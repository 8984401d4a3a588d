package rules

import (
	"github.com/groupguard/bouncer/moderation/engine"
)

func engineFixture() (*engine.Engine, *engine.MockGateway) {
	eng, gw := engine.EngineTestFixture()
	eng.Rules = DefaultRules()
	return eng, gw
}

func chatMessage(msgID, senderID int64, text string) engine.Message {
	return engine.Message{
		ChatID:    -100555,
		MessageID: msgID,
		SenderID:  senderID,
		Text:      text,
	}
}
