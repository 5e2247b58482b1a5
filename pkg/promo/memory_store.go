package promo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type usageKey struct {
	codeID uuid.UUID
	ref    string
}

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	byCode map[string]*Code
	usage  map[usageKey]struct{}
}

// NewMemoryStore creates an empty in-memory promo store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode: make(map[string]*Code),
		usage:  make(map[usageKey]struct{}),
	}
}

func (s *MemoryStore) Create(ctx context.Context, c *Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Normalize(c.Code)
	if _, ok := s.byCode[key]; ok {
		return ErrCodeAlreadyExists
	}
	cp := *c
	cp.Code = key
	s.byCode[key] = &cp
	return nil
}

func (s *MemoryStore) GetByCode(ctx context.Context, code string) (*Code, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byCode[Normalize(code)]
	if !ok {
		return nil, ErrCodeNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.byCode {
		if c.ID == id {
			c.Active = active
			c.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrCodeNotFound
}

func (s *MemoryStore) HasUsage(ctx context.Context, codeID uuid.UUID, paymentRef string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.usage[usageKey{codeID: codeID, ref: paymentRef}]
	return ok, nil
}

func (s *MemoryStore) RecordUsage(ctx context.Context, codeID uuid.UUID, paymentRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.byCode {
		if c.ID == codeID {
			s.usage[usageKey{codeID: codeID, ref: paymentRef}] = struct{}{}
			c.TimesUsed++
			c.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrCodeNotFound
}
