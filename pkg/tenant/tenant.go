package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/subscription"
)

// Tenant is one customer workspace. All farm, animal, and office data
// in the wider system hangs off a tenant ID; this package only models
// the document itself.
type Tenant struct {
	ID          uuid.UUID
	Name        string
	Description string

	Country string
	Region  string
	City    string

	// Currency is the ISO 4217 code used for billing display.
	Currency string

	// OwnerUserID is the profile that created the workspace and
	// receives the legacy subscription mirror.
	OwnerUserID uuid.UUID

	// Subscription is the authoritative subscription for the
	// workspace. Nil only for documents predating the billing rollout.
	Subscription *subscription.Subscription

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Settings groups the mutable workspace fields an owner can edit
// without touching billing state.
type Settings struct {
	Name        string
	Description string
	Country     string
	Region      string
	City        string
	Currency    string
}
