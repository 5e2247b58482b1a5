package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// FixedWindow limits requests to a maximum count per window.
type FixedWindow struct {
	store  Store
	limit  int
	window time.Duration
}

// NewFixedWindow creates a fixed-window limiter over the given store.
func NewFixedWindow(store Store, limit int, window time.Duration) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: must be positive, got %d", ErrInvalidLimit, limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("%w: must be positive, got %v", ErrInvalidInterval, window)
	}
	return &FixedWindow{store: store, limit: limit, window: window}, nil
}

func (l *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	return l.AllowN(ctx, key, 1)
}

func (l *FixedWindow) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: token count must be positive, got %d", ErrInvalidLimit, n)
	}

	current, ttl, err := l.store.IncrementAndGet(ctx, key, n, l.window)
	if err != nil {
		return nil, err
	}

	remaining := int64(l.limit) - current
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   current <= int64(l.limit),
		Limit:     l.limit,
		Remaining: int(remaining),
		ResetAt:   time.Now().Add(ttl),
	}, nil
}

func (l *FixedWindow) Reset(ctx context.Context, key string) error {
	return l.store.Delete(ctx, key)
}
