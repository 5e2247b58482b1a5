package tenant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/subscription"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	tenants map[uuid.UUID]*Tenant
}

// NewMemoryStore creates an empty in-memory tenant store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tenants: make(map[uuid.UUID]*Tenant)}
}

func (s *MemoryStore) Create(ctx context.Context, t *Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[t.ID]; ok {
		return ErrTenantAlreadyExists
	}
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenants[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *MemoryStore) UpdateSubscription(ctx context.Context, id uuid.UUID, sub subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[id]
	if !ok {
		return ErrTenantNotFound
	}
	cp := sub
	t.Subscription = &cp
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) UpdateSettings(ctx context.Context, id uuid.UUID, set Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[id]
	if !ok {
		return ErrTenantNotFound
	}
	t.Name = set.Name
	t.Description = set.Description
	t.Country = set.Country
	t.Region = set.Region
	t.City = set.City
	t.Currency = set.Currency
	t.UpdatedAt = time.Now().UTC()
	return nil
}
