package setstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemSetStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemSetStore()

	ok, err := s.InSet(ctx, "excluded-senders", "12345")
	assert.NoError(err)
	assert.False(ok)

	s.AddToSet("excluded-senders", []string{"12345", "67890"})

	ok, err = s.InSet(ctx, "excluded-senders", "12345")
	assert.NoError(err)
	assert.True(ok)

	ok, err = s.InSet(ctx, "excluded-senders", "11111")
	assert.NoError(err)
	assert.False(ok)

	// missing set is not an error
	ok, err = s.InSet(ctx, "no-such-set", "12345")
	assert.NoError(err)
	assert.False(ok)
}

func TestMemSetStoreLoadJSON(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	p := filepath.Join(t.TempDir(), "sets.json")
	blob := `{"excluded-senders": ["2385254556", "8192306358"]}`
	assert.NoError(os.WriteFile(p, []byte(blob), 0644))

	s := NewMemSetStore()
	assert.NoError(s.LoadFromFileJSON(p))

	ok, err := s.InSet(ctx, "excluded-senders", "8192306358")
	assert.NoError(err)
	assert.True(ok)
}
