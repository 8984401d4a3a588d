package dupestore

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type MemDupeStore struct {
	mu   sync.Mutex
	Data *expirable.LRU[string, []string]
}

func NewMemDupeStore(capacity int, ttl time.Duration) *MemDupeStore {
	return &MemDupeStore{
		Data: expirable.NewLRU[string, []string](capacity, nil, ttl),
	}
}

func (s *MemDupeStore) Senders(ctx context.Context, text string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.Data.Get(textKey(text))
	if !ok {
		return []string{}, nil
	}
	return v, nil
}

func (s *MemDupeStore) Add(ctx context.Context, text, sender string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := textKey(text)
	v, _ := s.Data.Get(key)
	for _, prev := range v {
		if prev == sender {
			return nil
		}
	}
	s.Data.Add(key, append(v, sender))
	return nil
}

func (s *MemDupeStore) Clear(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Data.Remove(textKey(text))
	return nil
}
