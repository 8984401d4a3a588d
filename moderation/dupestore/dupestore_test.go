package dupestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemDupeStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemDupeStore(1000, time.Hour)

	senders, err := s.Senders(ctx, "join now")
	assert.NoError(err)
	assert.Empty(senders)

	assert.NoError(s.Add(ctx, "join now", "userA"))
	senders, err = s.Senders(ctx, "join now")
	assert.NoError(err)
	assert.Equal([]string{"userA"}, senders)

	// adding the same sender twice is a no-op
	assert.NoError(s.Add(ctx, "join now", "userA"))
	senders, err = s.Senders(ctx, "join now")
	assert.NoError(err)
	assert.Len(senders, 1)

	assert.NoError(s.Add(ctx, "join now", "userB"))
	senders, err = s.Senders(ctx, "join now")
	assert.NoError(err)
	assert.Len(senders, 2)

	// tracking is keyed by exact text
	senders, err = s.Senders(ctx, "join now!")
	assert.NoError(err)
	assert.Empty(senders)
}

func TestMemDupeStoreClear(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemDupeStore(1000, time.Hour)

	assert.NoError(s.Add(ctx, "join now", "userA"))
	assert.NoError(s.Add(ctx, "join now", "userB"))
	assert.NoError(s.Clear(ctx, "join now"))

	// the entry is gone entirely, not per-sender
	senders, err := s.Senders(ctx, "join now")
	assert.NoError(err)
	assert.Empty(senders)
}
