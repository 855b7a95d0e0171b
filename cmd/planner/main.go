package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/samirrijal/carbontrack/internal/adapters/nats"
	"github.com/samirrijal/carbontrack/internal/catalog"
	"github.com/samirrijal/carbontrack/internal/core/usecases"
	"github.com/samirrijal/carbontrack/internal/pkg/config"
	"github.com/samirrijal/carbontrack/internal/pkg/logging"
	"github.com/samirrijal/carbontrack/internal/pkg/telemetry"
	"github.com/samirrijal/carbontrack/internal/workflows"
)

func main() {
	cfg, err := config.Load("carbontrack-planner")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    tlog.NewStructuredLogger(slog.Default()),
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	// NATS: publish finished plans, consume finished polygons
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats publisher: %v", err)
	}
	defer pub.Close()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, "planner")
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer sub.Close()

	plants := catalog.Default()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.PlantingPlanWorkflow)
	w.RegisterActivity(&workflows.PlanningActivities{
		Catalog:     usecases.NewCatalogService(plants, nil),
		Projections: usecases.NewProjectionService(plants),
		Publisher:   pub,
	})

	starter := workflows.NewPlanStarter(c, cfg.Temporal.TaskQueue, workflows.PlanDefaults{
		PlantsPerHectare: cfg.Planner.PlantsPerHectare,
		Years:            cfg.Planner.Years,
		TopN:             cfg.Planner.TopN,
		Water:            cfg.Planner.Water,
		Type:             cfg.Planner.Type,
	})
	if err := sub.SubscribePolygonFinalized(ctx, starter.HandlePolygonFinalized); err != nil {
		log.Fatalf("subscribe polygons: %v", err)
	}

	slog.Info("planner worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
