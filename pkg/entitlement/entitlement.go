package entitlement

import (
	"time"

	"github.com/agrikit/agrikit/pkg/subscription"
	"github.com/agrikit/agrikit/pkg/user"
)

// Access is the fixed-shape matrix of gated application areas.
type Access struct {
	CanAccessFarmOps   bool `json:"can_access_farm_ops"`
	CanAccessAnimalOps bool `json:"can_access_animal_ops"`
	CanAccessOfficeOps bool `json:"can_access_office_ops"`
	CanAccessHROps     bool `json:"can_access_hr_ops"`
	CanAccessAEOTools  bool `json:"can_access_aeo_tools"`
}

// growerTier lists the plans that unlock the grower-tier areas
// (farm and animal operations).
func growerTier(plan subscription.PlanID) bool {
	switch plan {
	case subscription.PlanGrower, subscription.PlanBusiness, subscription.PlanEnterprise:
		return true
	}
	return false
}

// businessTier lists the plans that unlock the business-tier areas
// (office, HR, and extension-officer tooling).
func businessTier(plan subscription.PlanID) bool {
	return plan == subscription.PlanBusiness || plan == subscription.PlanEnterprise
}

// Evaluate computes the access matrix for a subscription and role set
// at the given time. Super admins bypass subscription gating entirely.
// A nil or unknown-plan subscription is treated as starter, which
// unlocks nothing beyond the core dashboard.
func Evaluate(sub *subscription.Subscription, roles user.RoleSet, now time.Time) Access {
	if roles.Has(user.RoleSuperAdmin) {
		return Access{
			CanAccessFarmOps:   true,
			CanAccessAnimalOps: true,
			CanAccessOfficeOps: true,
			CanAccessHROps:     true,
			CanAccessAEOTools:  true,
		}
	}

	if !sub.HasPaidAccessAt(now) {
		return Access{}
	}

	plan := sub.EffectivePlan()
	return Access{
		CanAccessFarmOps:   growerTier(plan),
		CanAccessAnimalOps: growerTier(plan),
		CanAccessOfficeOps: businessTier(plan),
		CanAccessHROps:     businessTier(plan),
		CanAccessAEOTools:  businessTier(plan),
	}
}
