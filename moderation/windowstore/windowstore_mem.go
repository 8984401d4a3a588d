package windowstore

import (
	"context"
	"sync"
	"time"
)

type MemWindowStore struct {
	mu        sync.Mutex
	retention time.Duration
	windows   map[string][]time.Time
}

func NewMemWindowStore(retention time.Duration) *MemWindowStore {
	return &MemWindowStore{
		retention: retention,
		windows:   make(map[string][]time.Time),
	}
}

func (s *MemWindowStore) Push(ctx context.Context, sender string, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	horizon := at.Add(-s.retention)
	kept := s.windows[sender][:0]
	for _, t := range s.windows[sender] {
		if t.After(horizon) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, at)
	s.windows[sender] = kept
	return len(kept), nil
}

func (s *MemWindowStore) Clear(ctx context.Context, sender string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, sender)
	return nil
}
