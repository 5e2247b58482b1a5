package subscription

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlSource struct {
	path string
}

// NewYAMLSource returns a PlansListSource reading the plan catalog from
// a YAML file of the shape:
//
//	plans:
//	  - id: starter
//	    name: Starter
//	    monthly_price: {amount: 0, currency: USD}
//	    annual_price: {amount: 0, currency: USD}
//	    public: true
func NewYAMLSource(path string) PlansListSource {
	return &yamlSource{path: path}
}

type yamlCatalog struct {
	Plans []Plan `yaml:"plans"`
}

func (s *yamlSource) Load(ctx context.Context) (map[PlanID]Plan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var catalog yamlCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[PlanID]Plan, len(catalog.Plans))
	for _, plan := range catalog.Plans {
		plans[plan.ID] = plan
	}

	if err := ValidateCatalog(plans); err != nil {
		return nil, err
	}
	return plans, nil
}
