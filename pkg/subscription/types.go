package subscription

// PlanID identifies a subscription tier.
type PlanID string

const (
	PlanStarter    PlanID = "starter"
	PlanGrower     PlanID = "grower"
	PlanBusiness   PlanID = "business"
	PlanEnterprise PlanID = "enterprise"
)

// Valid reports whether the plan ID names a known tier.
func (p PlanID) Valid() bool {
	switch p {
	case PlanStarter, PlanGrower, PlanBusiness, PlanEnterprise:
		return true
	}
	return false
}

// Status represents the current state of a subscription.
type Status string

const (
	StatusActive   Status = "active"
	StatusTrialing Status = "trialing"
	StatusCanceled Status = "canceled"
	StatusPastDue  Status = "past_due"
)

// BillingCycle represents the billing frequency for a subscription.
type BillingCycle string

const (
	CycleMonthly  BillingCycle = "monthly"
	CycleAnnually BillingCycle = "annually"
)

// Valid reports whether the billing cycle is a known value.
func (c BillingCycle) Valid() bool {
	return c == CycleMonthly || c == CycleAnnually
}

// Money represents a monetary amount in the smallest currency unit.
type Money struct {
	Amount   int64  `yaml:"amount" json:"amount"`
	Currency string `yaml:"currency" json:"currency"`
}
