package subscription

import "time"

// TrialDays is the length of the signup trial, on the business plan.
const TrialDays = 20

// StartTrial returns the subscription stamped on every new tenant: a
// 20-day business-plan trial. Deterministic given the clock value.
func StartTrial(now time.Time) Subscription {
	trialEnds := now.UTC().AddDate(0, 0, TrialDays)
	return Subscription{
		PlanID:       PlanBusiness,
		Status:       StatusTrialing,
		BillingCycle: CycleAnnually,
		TrialEndsAt:  &trialEnds,
	}
}

// ActivatePaidPlan returns the subscription resulting from a verified
// payment: active on the given plan with the next billing date one
// month or one year out. Only the payment webhook reconciler may call
// this on behalf of a tenant; it is never driven directly by client
// input.
func ActivatePaidPlan(planID PlanID, cycle BillingCycle, now time.Time) (Subscription, error) {
	if !planID.Valid() {
		return Subscription{}, ErrPlanNotFound
	}
	if !cycle.Valid() {
		return Subscription{}, ErrInvalidBillingCycle
	}

	var next time.Time
	if cycle == CycleAnnually {
		next = now.UTC().AddDate(1, 0, 0)
	} else {
		next = now.UTC().AddDate(0, 1, 0)
	}

	return Subscription{
		PlanID:          planID,
		Status:          StatusActive,
		BillingCycle:    cycle,
		NextBillingDate: &next,
	}, nil
}

// Starter returns the fallback subscription assigned to profiles that
// predate subscription tracking: starter plan, active, no billing date.
func Starter() Subscription {
	return Subscription{
		PlanID:       PlanStarter,
		Status:       StatusActive,
		BillingCycle: CycleAnnually,
	}
}
