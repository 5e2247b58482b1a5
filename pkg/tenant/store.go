package tenant

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/subscription"
)

// Store defines tenant persistence. Lookups with no match return
// ErrTenantNotFound; operations invoked with a transactional context
// must join that transaction.
type Store interface {
	// Create inserts a new tenant. Returns ErrTenantAlreadyExists when
	// the ID is taken.
	Create(ctx context.Context, t *Tenant) error

	// GetByID retrieves a tenant by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// UpdateSubscription replaces the tenant subscription.
	UpdateSubscription(ctx context.Context, id uuid.UUID, sub subscription.Subscription) error

	// UpdateSettings replaces the editable workspace fields.
	UpdateSettings(ctx context.Context, id uuid.UUID, s Settings) error
}
