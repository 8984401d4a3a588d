package banstore

import (
	"context"
	"sync"
	"time"
)

type MemBanStore struct {
	mu   sync.Mutex
	bans map[string]time.Time
}

func NewMemBanStore() *MemBanStore {
	return &MemBanStore{
		bans: make(map[string]time.Time),
	}
}

func (s *MemBanStore) Get(ctx context.Context, sender string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.bans[sender]
	return until, ok, nil
}

func (s *MemBanStore) Set(ctx context.Context, sender string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[sender] = until
	return nil
}

func (s *MemBanStore) Remove(ctx context.Context, sender string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bans, sender)
	return nil
}
