package engine

import (
	"context"
	"testing"
	"time"

	"github.com/groupguard/bouncer/moderation/setstore"

	"github.com/stretchr/testify/assert"
)

func testMessage(text string) Message {
	return Message{
		ChatID:    -100123,
		MessageID: 500,
		SenderID:  7777,
		Text:      text,
	}
}

// rule that matches everything, for exercising the dispatch path
func restrictAllRule(c *MessageContext) error {
	c.RestrictSender("test-match", time.Hour)
	return nil
}

func TestEngineNoText(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{restrictAllRule}}

	msg := testMessage("")
	assert.NoError(eng.ProcessMessage(ctx, msg))
	assert.Empty(gw.DeleteCalls())
	assert.Empty(gw.RestrictCalls())
}

func TestEngineExcludedSenderBypass(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{restrictAllRule}}
	eng.Sets.(*setstore.MemSetStore).AddToSet(ExcludedSendersSet, []string{"7777"})

	// excluded senders bypass every rule, regardless of content
	msg := testMessage("1234567 spam spam")
	assert.NoError(eng.ProcessMessage(ctx, msg))
	assert.Empty(gw.DeleteCalls())
	assert.Empty(gw.RestrictCalls())

	_, banned, err := eng.Bans.Get(ctx, msg.SenderKey())
	assert.NoError(err)
	assert.False(banned)
}

func TestEngineExcludedSenderChat(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{restrictAllRule}}
	eng.Sets.(*setstore.MemSetStore).AddToSet(ExcludedSendersSet, []string{"2385254556"})

	// channel-authored post: the "sending-as-chat" identity is what's excluded
	msg := testMessage("anything at all")
	msg.SenderChatID = 2385254556
	assert.NoError(eng.ProcessMessage(ctx, msg))
	assert.Empty(gw.RestrictCalls())
}

func TestEngineForwardedMessage(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{restrictAllRule}}

	msg := testMessage("totally innocent text")
	msg.Forwarded = true
	assert.NoError(eng.ProcessMessage(ctx, msg))

	// deleted outright, no rule ran
	assert.Equal([]DeleteCall{{ChatID: msg.ChatID, MessageID: msg.MessageID}}, gw.DeleteCalls())
	assert.Empty(gw.RestrictCalls())
}

func TestEngineActiveRestriction(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{restrictAllRule}}

	msg := testMessage("hello")
	assert.NoError(eng.Bans.Set(ctx, msg.SenderKey(), time.Now().Add(time.Hour)))

	assert.NoError(eng.ProcessMessage(ctx, msg))
	assert.Equal([]DeleteCall{{ChatID: msg.ChatID, MessageID: msg.MessageID}}, gw.DeleteCalls())
	// no rule evaluation while restricted
	assert.Empty(gw.RestrictCalls())
}

func TestEngineLazyRestrictionExpiry(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{restrictAllRule}}

	msg := testMessage("hello")
	assert.NoError(eng.Bans.Set(ctx, msg.SenderKey(), time.Now().Add(-time.Minute)))

	assert.NoError(eng.ProcessMessage(ctx, msg))

	// expiry passed: entry removed and the message evaluated normally, so the
	// match-everything rule restricted the sender again
	assert.NotEmpty(gw.RestrictCalls())
	until, banned, err := eng.Bans.Get(ctx, msg.SenderKey())
	assert.NoError(err)
	assert.True(banned)
	assert.True(until.After(time.Now()))
}

func TestEngineRuleChainShortCircuit(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	var secondRuleRan bool
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{
		restrictAllRule,
		func(c *MessageContext) error {
			secondRuleRan = true
			return nil
		},
	}}

	assert.NoError(eng.ProcessMessage(ctx, testMessage("hello")))
	assert.False(secondRuleRan)
	assert.Len(gw.RestrictCalls(), 1)
	assert.Equal(RestrictedPermissions, gw.RestrictCalls()[0].Perms)
}

func TestEngineRulePanicFailsOpen(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{
		func(c *MessageContext) error {
			panic("rule blew up")
		},
	}}

	// recovered and treated as no match: no enforcement, no crash
	assert.NotPanics(func() {
		_ = eng.ProcessMessage(ctx, testMessage("hello"))
	})
	assert.Empty(gw.DeleteCalls())
	assert.Empty(gw.RestrictCalls())
}

func TestEngineDeleteFailuresSwallowed(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{restrictAllRule}}
	gw.FailDelete = true

	msg := testMessage("hello")
	assert.NoError(eng.ProcessMessage(ctx, msg))

	// every deletion in the sweep failed, restriction still applied and ban
	// registry still committed
	assert.Empty(gw.DeleteCalls())
	assert.Len(gw.RestrictCalls(), 1)
	_, banned, err := eng.Bans.Get(ctx, msg.SenderKey())
	assert.NoError(err)
	assert.True(banned)
}

func TestEngineSweepBounds(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, gw := EngineTestFixture()
	eng.Rules = RuleSet{MessageRules: []MessageRuleFunc{restrictAllRule}}
	// only the triggering message and two neighbors actually exist
	gw.KnownMessages = map[int64]bool{499: true, 500: true, 501: true}

	msg := testMessage("hello")
	assert.NoError(eng.ProcessMessage(ctx, msg))

	// most-recent-first scan, absent IDs silently skipped
	assert.Equal([]DeleteCall{
		{ChatID: msg.ChatID, MessageID: 501},
		{ChatID: msg.ChatID, MessageID: 500},
		{ChatID: msg.ChatID, MessageID: 499},
	}, gw.DeleteCalls())
}
