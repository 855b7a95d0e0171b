package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

// WorkflowStarter is the part of client.Client used to start plans.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// PlanDefaults are the planner settings applied to every polygon.
type PlanDefaults struct {
	PlantsPerHectare float64
	Years            int
	TopN             int
	Water            string
	Type             string
}

// PlanStarter turns polygon events into planting-plan workflow runs.
type PlanStarter struct {
	client    WorkflowStarter
	taskQueue string
	defaults  PlanDefaults
}

func NewPlanStarter(c WorkflowStarter, taskQueue string, defaults PlanDefaults) *PlanStarter {
	return &PlanStarter{client: c, taskQueue: taskQueue, defaults: defaults}
}

// HandlePolygonFinalized starts one workflow per polygon. Redelivered events
// map to the same workflow id, so a plan that already exists is not an error.
func (s *PlanStarter) HandlePolygonFinalized(ctx context.Context, event *domain.PolygonEvent) error {
	opts := client.StartWorkflowOptions{
		ID:        WorkflowID(event.Polygon.ID),
		TaskQueue: s.taskQueue,
	}
	input := PlanInput{
		SessionID:        event.SessionID,
		Polygon:          event.Polygon,
		PlantsPerHectare: s.defaults.PlantsPerHectare,
		Years:            s.defaults.Years,
		TopN:             s.defaults.TopN,
		Water:            s.defaults.Water,
		Type:             s.defaults.Type,
	}

	_, err := s.client.ExecuteWorkflow(ctx, opts, PlantingPlanWorkflow, input)
	var started *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &started) {
		slog.Info("planting plan already started", "workflow_id", opts.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("start planting plan %s: %w", opts.ID, err)
	}
	slog.Info("planting plan started", "workflow_id", opts.ID, "session", event.SessionID, "area", event.Polygon.Area)
	return nil
}
