package subscription

import "time"

// Subscription is the billing state embedded in a tenant document (and,
// as a legacy duplicate, in user profiles).
type Subscription struct {
	PlanID          PlanID       `bson:"plan_id" json:"plan_id"`
	Status          Status       `bson:"status" json:"status"`
	BillingCycle    BillingCycle `bson:"billing_cycle" json:"billing_cycle"`
	NextBillingDate *time.Time   `bson:"next_billing_date,omitempty" json:"next_billing_date,omitempty"`
	TrialEndsAt     *time.Time   `bson:"trial_ends_at,omitempty" json:"trial_ends_at,omitempty"`
}

// IsActive returns true if the subscription is on a paid, active plan.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// IsTrialing returns true if the subscription is in trial status.
func (s *Subscription) IsTrialing() bool {
	return s.Status == StatusTrialing
}

// HasPaidAccessAt reports whether the subscription grants paid-tier
// access at the given time: either active, or trialing with the trial
// window still open.
func (s *Subscription) HasPaidAccessAt(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.Status == StatusActive {
		return true
	}
	return s.Status == StatusTrialing && s.TrialEndsAt != nil && now.Before(*s.TrialEndsAt)
}

// EffectivePlan returns the plan the subscription grants, defaulting to
// starter when unset or unknown.
func (s *Subscription) EffectivePlan() PlanID {
	if s == nil || !s.PlanID.Valid() {
		return PlanStarter
	}
	return s.PlanID
}

// TrialDaysRemainingAt returns whole days left in the trial at the
// given time, rounding partial days up. Returns 0 outside of a trial.
func (s *Subscription) TrialDaysRemainingAt(now time.Time) int {
	if !s.IsTrialing() || s.TrialEndsAt == nil {
		return 0
	}
	remaining := s.TrialEndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Hours()/24 + 0.5)
}
