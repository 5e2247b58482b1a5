package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/subscription"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*Profile
}

// NewMemoryStore creates an empty in-memory profile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[uuid.UUID]*Profile)}
}

func (s *MemoryStore) Create(ctx context.Context, profile *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; ok {
		return ErrProfileAlreadyExists
	}
	cp := *profile
	s.profiles[profile.ID] = &cp
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) FindActiveByEmail(ctx context.Context, email string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.Email == email && p.Status == StatusActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (s *MemoryStore) FindInvitedByToken(ctx context.Context, tok string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.Status == StatusInvited && p.InvitationToken != nil && *p.InvitationToken == tok {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (s *MemoryStore) CompleteInvitation(ctx context.Context, id uuid.UUID, fullName string, registeredAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	p.FullName = fullName
	p.Status = StatusActive
	p.InvitationToken = nil
	reg := registeredAt
	p.RegistrationDate = &reg
	p.UpdatedAt = registeredAt
	return nil
}

func (s *MemoryStore) SetSubscription(ctx context.Context, id uuid.UUID, sub subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	cp := sub
	p.Subscription = &cp
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) ListWithoutSubscription(ctx context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []uuid.UUID
	for id, p := range s.profiles {
		if p.Subscription == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
