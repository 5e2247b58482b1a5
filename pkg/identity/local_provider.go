package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type localRecord struct {
	id   uuid.UUID
	hash []byte
}

// LocalProvider is an in-memory bcrypt-backed Provider for development
// environments and tests.
type LocalProvider struct {
	mu       sync.RWMutex
	byEmail  map[string]*localRecord
	lastSent string
}

// NewLocalProvider creates an empty local identity provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{byEmail: make(map[string]*localRecord)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *LocalProvider) CreateIdentity(ctx context.Context, email, password string) (uuid.UUID, error) {
	if len(password) < MinPasswordLength {
		return uuid.Nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	key := normalizeEmail(email)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byEmail[key]; ok {
		return uuid.Nil, ErrEmailAlreadyInUse
	}
	rec := &localRecord{id: uuid.New(), hash: hash}
	p.byEmail[key] = rec
	return rec.id, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (uuid.UUID, error) {
	p.mu.RLock()
	rec, ok := p.byEmail[normalizeEmail(email)]
	p.mu.RUnlock()
	if !ok {
		return uuid.Nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return rec.id, nil
}

func (p *LocalProvider) SendPasswordReset(ctx context.Context, email string) error {
	p.mu.Lock()
	p.lastSent = normalizeEmail(email)
	p.mu.Unlock()
	return nil
}

func (p *LocalProvider) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, rec := range p.byEmail {
		if rec.id == id {
			delete(p.byEmail, key)
			return nil
		}
	}
	return ErrIdentityNotFound
}
