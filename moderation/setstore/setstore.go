// Static string sets for moderation decisions, loaded once at startup.
//
// The primary use is the "excluded-senders" set: sender IDs which bypass every
// moderation check. Sets are never mutated at runtime.
package setstore

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
)

type SetStore interface {
	InSet(ctx context.Context, name, val string) (bool, error)
}

type MemSetStore struct {
	mu   sync.RWMutex
	Sets map[string]map[string]bool
}

func NewMemSetStore() *MemSetStore {
	return &MemSetStore{
		Sets: make(map[string]map[string]bool),
	}
}

func (s *MemSetStore) InSet(ctx context.Context, name, val string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.Sets[name]
	if !ok {
		// NOTE: currently returns false when entire set isn't found
		return false, nil
	}
	_, ok = set[val]
	return ok, nil
}

func (s *MemSetStore) AddToSet(name string, vals []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.Sets[name]
	if !ok {
		set = make(map[string]bool, len(vals))
		s.Sets[name] = set
	}
	for _, v := range vals {
		set[v] = true
	}
}

func (s *MemSetStore) LoadFromFileJSON(p string) error {

	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	var sets map[string][]string
	if err := json.Unmarshal(raw, &sets); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for name, l := range sets {
		m := make(map[string]bool, len(l))
		for _, val := range l {
			m[val] = true
		}
		s.Sets[name] = m
	}
	return nil
}
