package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/subscription"
)

// AccountStatus represents the lifecycle state of a profile.
type AccountStatus string

const (
	StatusActive              AccountStatus = "active"
	StatusPendingVerification AccountStatus = "pending_verification"
	StatusSuspended           AccountStatus = "suspended"
	StatusDeactivated         AccountStatus = "deactivated"
	StatusInvited             AccountStatus = "invited"
)

// Profile represents one human account. For self-registered accounts
// the ID matches the identity issued by the authentication provider;
// invited profiles keep the ID minted at invitation time.
type Profile struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Roles    RoleSet
	Status   AccountStatus

	// TenantID is set once the profile belongs to a workspace. An
	// active profile without a tenant is a valid transient state for
	// self-registered users who have not finished workspace setup.
	TenantID *uuid.UUID

	// InvitationToken and InvitationSentAt are set while Status is
	// invited; the token is cleared when registration completes.
	InvitationToken  *string
	InvitationSentAt *time.Time

	RegistrationDate *time.Time

	// Subscription is a legacy duplicate of the tenant subscription
	// kept on the profile for older clients; the tenant document is
	// authoritative.
	Subscription *subscription.Subscription

	// ManagedFarmerIDs lists the farmer profiles an agricultural
	// extension officer looks after. Weak references: lookups only,
	// no ownership.
	ManagedFarmerIDs []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsInvited reports whether the profile is awaiting registration
// completion with a live invitation token.
func (p *Profile) IsInvited() bool {
	return p.Status == StatusInvited && p.InvitationToken != nil
}
