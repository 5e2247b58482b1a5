package subscription

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// Plan describes a subscription tier as shown on the pricing page and
// used for checkout amounts.
type Plan struct {
	ID           PlanID `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	MonthlyPrice Money  `yaml:"monthly_price"`
	AnnualPrice  Money  `yaml:"annual_price"`
	Public       bool   `yaml:"public"`
}

// PlansListSource defines how the plan catalog is loaded.
type PlansListSource interface {
	Load(ctx context.Context) (map[PlanID]Plan, error)
}

// ValidateCatalog ensures the catalog is internally consistent and
// covers every known tier, catching configuration mistakes at startup.
func ValidateCatalog(plans map[PlanID]Plan) error {
	for id, plan := range plans {
		if plan.ID != id {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan ID mismatch: map key %s != plan.ID %s", id, plan.ID))
		}
		if !plan.ID.Valid() {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("unknown plan ID %q", plan.ID))
		}
	}
	for _, id := range []PlanID{PlanStarter, PlanGrower, PlanBusiness, PlanEnterprise} {
		if _, ok := plans[id]; !ok {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("catalog is missing plan %q", id))
		}
	}
	return nil
}

type inMemSource struct {
	plans map[PlanID]Plan
}

// NewInMemSource returns a PlansListSource serving a copy of the given
// plans. Panics when no plans are provided so a service never starts
// with an empty catalog.
func NewInMemSource(plans ...Plan) PlansListSource {
	if len(plans) == 0 {
		panic("subscription: at least one plan is required")
	}
	copied := make(map[PlanID]Plan, len(plans))
	for _, plan := range plans {
		copied[plan.ID] = plan
	}
	return &inMemSource{plans: copied}
}

func (s *inMemSource) Load(ctx context.Context) (map[PlanID]Plan, error) {
	return maps.Clone(s.plans), nil
}
