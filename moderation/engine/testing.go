package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/groupguard/bouncer/moderation/banstore"
	"github.com/groupguard/bouncer/moderation/dupestore"
	"github.com/groupguard/bouncer/moderation/setstore"
	"github.com/groupguard/bouncer/moderation/windowstore"
)

type DeleteCall struct {
	ChatID    int64
	MessageID int64
}

type RestrictCall struct {
	ChatID   int64
	SenderID int64
	Until    time.Time
	Perms    PermissionSet
}

// In-memory Gateway recording every call, for tests. Intentionally exported,
// for use in other packages.
type MockGateway struct {
	mu         sync.Mutex
	Deletes    []DeleteCall
	Restricts  []RestrictCall
	FailDelete bool
	// IDs for which DeleteMessage succeeds; when nil, every delete succeeds
	// (unless FailDelete is set).
	KnownMessages map[int64]bool
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailDelete {
		return fmt.Errorf("message to delete not found")
	}
	if g.KnownMessages != nil && !g.KnownMessages[messageID] {
		return fmt.Errorf("message to delete not found")
	}
	g.Deletes = append(g.Deletes, DeleteCall{ChatID: chatID, MessageID: messageID})
	return nil
}

func (g *MockGateway) RestrictSender(ctx context.Context, chatID, senderID int64, until time.Time, perms PermissionSet) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Restricts = append(g.Restricts, RestrictCall{ChatID: chatID, SenderID: senderID, Until: until, Perms: perms})
	return nil
}

func (g *MockGateway) DeleteCalls() []DeleteCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]DeleteCall{}, g.Deletes...)
}

func (g *MockGateway) RestrictCalls() []RestrictCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]RestrictCall{}, g.Restricts...)
}

// EngineTestFixture returns an engine wired to in-memory stores and a mock
// gateway, with no rules configured. Callers append their own rules.
func EngineTestFixture() (*Engine, *MockGateway) {
	gw := NewMockGateway()
	sets := setstore.NewMemSetStore()
	eng := &Engine{
		Logger:  slog.Default(),
		Gateway: gw,
		Windows: windowstore.NewMemWindowStore(2 * time.Minute),
		Bans:    banstore.NewMemBanStore(),
		Dupes:   dupestore.NewMemDupeStore(1000, time.Hour),
		Sets:    sets,
	}
	return eng, gw
}

// Helper to access the private effects field from a context. Intended for use in test code, *not* from rules.
func ExtractEffects(c *BaseContext) *Effects {
	return c.effects
}
