package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/subscription"
)

// Store defines profile persistence. Implementations must return
// ErrProfileNotFound from lookups with no match, and operations invoked
// with a transactional context must join that transaction.
type Store interface {
	// Create inserts a new profile. Returns ErrProfileAlreadyExists
	// when the ID is taken.
	Create(ctx context.Context, profile *Profile) error

	// GetByID retrieves a profile by user ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// FindActiveByEmail finds the profile with the given email and
	// active status.
	FindActiveByEmail(ctx context.Context, email string) (*Profile, error)

	// FindInvitedByToken finds the profile holding the given
	// invitation token in invited status.
	FindInvitedByToken(ctx context.Context, token string) (*Profile, error)

	// CompleteInvitation marks the profile active, clears the
	// invitation token, and stamps the registration date.
	CompleteInvitation(ctx context.Context, id uuid.UUID, fullName string, registeredAt time.Time) error

	// SetSubscription writes the legacy subscription copy on a profile.
	SetSubscription(ctx context.Context, id uuid.UUID, sub subscription.Subscription) error

	// ListWithoutSubscription returns IDs of profiles lacking a
	// subscription field, for the starter migration.
	ListWithoutSubscription(ctx context.Context) ([]uuid.UUID, error)
}
