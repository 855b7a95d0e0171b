package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

// Activity names as registered from PlanningActivities.
const (
	ActivityRecommendPlants = "RecommendPlants"
	ActivityProjectPlan     = "ProjectPlan"
	ActivityPublishPlan     = "PublishPlan"
)

// PlanInput is the input for the planting-plan workflow.
type PlanInput struct {
	SessionID        string
	Polygon          domain.DrawnPolygon
	PlantsPerHectare float64
	Years            int
	TopN             int
	Water            string
	Type             string
}

// WorkflowID keeps one plan per polygon.
func WorkflowID(polygonID string) string {
	return "planting-plan-" + polygonID
}

// PlantingPlanWorkflow recommends species for a finished boundary, sizes the
// planting to its area, projects the carbon it will sequester and publishes
// the plan.
func PlantingPlanWorkflow(ctx workflow.Context, input PlanInput) (*domain.PlantingPlan, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting planting plan workflow", "session", input.SessionID, "polygon", input.Polygon.ID)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Pick species
	var plantIDs []int
	err := workflow.ExecuteActivity(ctx, ActivityRecommendPlants, RecommendInput{
		Water: input.Water,
		Type:  input.Type,
		TopN:  input.TopN,
	}).Get(ctx, &plantIDs)
	if err != nil {
		return nil, err
	}

	// Step 2: Size and project
	var projected ProjectResult
	err = workflow.ExecuteActivity(ctx, ActivityProjectPlan, ProjectInput{
		Area:             input.Polygon.Area,
		PlantIDs:         plantIDs,
		PlantsPerHectare: input.PlantsPerHectare,
		Years:            input.Years,
	}).Get(ctx, &projected)
	if err != nil {
		return nil, err
	}

	plan := &domain.PlantingPlan{
		SessionID:  input.SessionID,
		PolygonID:  input.Polygon.ID,
		Area:       input.Polygon.Area,
		Selections: projected.Selections,
		Projection: projected.Projection,
		CreatedAt:  workflow.Now(ctx),
	}

	// Step 3: Announce
	if err := workflow.ExecuteActivity(ctx, ActivityPublishPlan, *plan).Get(ctx, nil); err != nil {
		logger.Warn("publishing plan failed", "error", err)
		return nil, err
	}

	logger.Info("Planting plan published", "species", len(plan.Selections), "total", plan.Projection.Total)
	return plan, nil
}
