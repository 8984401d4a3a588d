package windowstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemWindowStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemWindowStore(2 * time.Minute)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	n, err := s.Push(ctx, "user1", base)
	assert.NoError(err)
	assert.Equal(1, n)

	n, err = s.Push(ctx, "user1", base.Add(30*time.Second))
	assert.NoError(err)
	assert.Equal(2, n)

	n, err = s.Push(ctx, "user1", base.Add(time.Minute))
	assert.NoError(err)
	assert.Equal(3, n)

	// windows are per-sender
	n, err = s.Push(ctx, "user2", base.Add(time.Minute))
	assert.NoError(err)
	assert.Equal(1, n)
}

func TestMemWindowStorePruning(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemWindowStore(2 * time.Minute)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.Push(ctx, "user1", base)
	assert.NoError(err)
	_, err = s.Push(ctx, "user1", base.Add(time.Minute))
	assert.NoError(err)

	// both prior entries now fall outside the 2 minute horizon
	n, err := s.Push(ctx, "user1", base.Add(4*time.Minute))
	assert.NoError(err)
	assert.Equal(1, n)
}

func TestMemWindowStoreClear(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemWindowStore(2 * time.Minute)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.Push(ctx, "user1", base)
	assert.NoError(err)
	_, err = s.Push(ctx, "user1", base.Add(time.Second))
	assert.NoError(err)

	assert.NoError(s.Clear(ctx, "user1"))

	n, err := s.Push(ctx, "user1", base.Add(2*time.Second))
	assert.NoError(err)
	assert.Equal(1, n)
}
