package banstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemBanStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemBanStore()

	_, ok, err := s.Get(ctx, "user1")
	assert.NoError(err)
	assert.False(ok)

	until := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	assert.NoError(s.Set(ctx, "user1", until))

	got, ok, err := s.Get(ctx, "user1")
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(until, got)

	// a later Set overwrites, never extends
	later := until.Add(48 * time.Hour)
	assert.NoError(s.Set(ctx, "user1", later))
	got, ok, err = s.Get(ctx, "user1")
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(later, got)

	// expired entries are still returned; removal is the caller's call
	past := time.Now().Add(-time.Hour)
	assert.NoError(s.Set(ctx, "user2", past))
	got, ok, err = s.Get(ctx, "user2")
	assert.NoError(err)
	assert.True(ok)
	assert.True(got.Before(time.Now()))

	assert.NoError(s.Remove(ctx, "user2"))
	_, ok, err = s.Get(ctx, "user2")
	assert.NoError(err)
	assert.False(ok)
}
