package telegram

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/groupguard/bouncer/moderation/engine"
)

type HandlerFunc func(ctx context.Context, msg engine.Message)

// Poller drives the inbound message stream: it long-polls getUpdates and hands
// each message to the handler, one at a time, in arrival order. Updates without
// a message payload advance the offset and are otherwise ignored.
type Poller struct {
	Client      *Client
	Logger      *slog.Logger
	Handler     HandlerFunc
	PollTimeout time.Duration

	offset atomic.Int64
}

// SetOffset seeds the update offset, eg from a persisted cursor.
func (p *Poller) SetOffset(v int64) {
	p.offset.Store(v)
}

// LastOffset is the next offset the poller will request. Safe to read
// concurrently, eg from a cursor-persisting goroutine.
func (p *Poller) LastOffset() int64 {
	return p.offset.Load()
}

func (p *Poller) Run(ctx context.Context) error {
	timeout := p.PollTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	for {
		if ctx.Err() != nil {
			return nil
		}
		updates, err := p.Client.GetUpdates(ctx, p.offset.Load(), timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.Logger.Error("getUpdates failed", "err", err)
			time.Sleep(5 * time.Second)
			continue
		}
		for _, u := range updates {
			if u.UpdateID >= p.offset.Load() {
				p.offset.Store(u.UpdateID + 1)
			}
			if u.Message == nil {
				continue
			}
			p.Handler(ctx, u.Message.Moderation())
		}
	}
}
