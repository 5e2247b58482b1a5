package identity

import (
	"context"

	"github.com/google/uuid"
)

// MinPasswordLength is enforced before any call reaches the provider.
const MinPasswordLength = 8

// Provider is the authentication backend. Implementations wrap an
// external identity service; LocalProvider backs development and tests.
type Provider interface {
	// CreateIdentity registers credentials and returns the new
	// identity ID. Returns ErrEmailAlreadyInUse when the email is
	// taken and ErrWeakPassword on short passwords.
	CreateIdentity(ctx context.Context, email, password string) (uuid.UUID, error)

	// SignIn verifies credentials and returns the identity ID, or
	// ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (uuid.UUID, error)

	// SendPasswordReset triggers the provider's reset flow. Providers
	// must not reveal whether the email exists.
	SendPasswordReset(ctx context.Context, email string) error

	// DeleteIdentity removes an identity. Used as the compensating
	// action when a registration fails after identity creation.
	DeleteIdentity(ctx context.Context, id uuid.UUID) error
}
