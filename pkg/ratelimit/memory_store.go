package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory counter store for single-process
// deployments and tests. Expired windows are dropped lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
}

type memoryWindow struct {
	count    int64
	expireAt time.Time
}

// NewMemoryStore creates an in-memory rate limit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*memoryWindow)}
}

func (s *MemoryStore) IncrementAndGet(ctx context.Context, key string, incr int, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, ok := s.windows[key]
	if !ok || now.After(w.expireAt) {
		w = &memoryWindow{expireAt: now.Add(window)}
		s.windows[key] = w
	}

	w.count += int64(incr)
	return w.count, time.Until(w.expireAt), nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}
