package workflows

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/carbontrack/internal/catalog"
	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/core/ports"
	"github.com/samirrijal/carbontrack/internal/core/usecases"
	"github.com/samirrijal/carbontrack/internal/pkg/metrics"
)

const squareMetersPerHectare = 10000.0

// RecommendInput selects candidate species for a plan.
type RecommendInput struct {
	Water string
	Type  string
	TopN  int
}

// ProjectInput sizes a plan for a drawn area.
type ProjectInput struct {
	Area             float64 // m²
	PlantIDs         []int
	PlantsPerHectare float64
	Years            int
}

// ProjectResult is the outcome of ProjectPlan.
type ProjectResult struct {
	Selections []domain.PlantSelection
	Projection domain.CarbonProjection
}

// PlanningActivities holds the activity implementations for the planting-plan workflow.
type PlanningActivities struct {
	Catalog     *usecases.CatalogService
	Projections *usecases.ProjectionService
	Publisher   ports.EventPublisher
}

// RecommendPlants returns the ids of the TopN highest-sequestering plants
// matching the optional water and type filters.
func (a *PlanningActivities) RecommendPlants(ctx context.Context, in RecommendInput) ([]int, error) {
	q := catalog.ParseQuery("", string(domain.SortCarbonHigh), in.Water, in.Type, domain.FilterAll)
	plants := a.Catalog.Query(ctx, q)
	if in.TopN > 0 && len(plants) > in.TopN {
		plants = plants[:in.TopN]
	}
	ids := make([]int, len(plants))
	for i, p := range plants {
		ids[i] = p.ID
	}
	return ids, nil
}

// ProjectPlan splits the planting density evenly across the chosen species
// and projects the resulting sequestration.
func (a *PlanningActivities) ProjectPlan(ctx context.Context, in ProjectInput) (*ProjectResult, error) {
	res := &ProjectResult{Selections: []domain.PlantSelection{}}
	if n := len(in.PlantIDs); n > 0 {
		perSpecies := int(math.Round(in.Area / squareMetersPerHectare * in.PlantsPerHectare / float64(n)))
		for _, id := range in.PlantIDs {
			res.Selections = append(res.Selections, domain.PlantSelection{PlantID: id, Quantity: perSpecies})
		}
	}

	proj, err := a.Projections.Project(ctx, res.Selections, in.Years)
	if errors.Is(err, domain.ErrInvalidYears) {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidYears", err)
	}
	if err != nil {
		return nil, fmt.Errorf("project plan: %w", err)
	}
	res.Projection = *proj
	return res, nil
}

// PublishPlan announces a finished plan.
func (a *PlanningActivities) PublishPlan(ctx context.Context, plan domain.PlantingPlan) error {
	if a.Publisher == nil {
		activity.GetLogger(ctx).Info("no publisher configured, plan not announced", "session", plan.SessionID)
		return nil
	}
	if err := a.Publisher.PublishPlantingPlan(ctx, &plan); err != nil {
		return fmt.Errorf("publish plan %s: %w", plan.PolygonID, err)
	}
	metrics.PlansPublished.Inc()
	return nil
}
