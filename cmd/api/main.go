package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/carbontrack/internal/adapters/http"
	"github.com/samirrijal/carbontrack/internal/adapters/memory"
	natsadapter "github.com/samirrijal/carbontrack/internal/adapters/nats"
	"github.com/samirrijal/carbontrack/internal/adapters/valkey"
	"github.com/samirrijal/carbontrack/internal/catalog"
	"github.com/samirrijal/carbontrack/internal/core/ports"
	"github.com/samirrijal/carbontrack/internal/core/usecases"
	"github.com/samirrijal/carbontrack/internal/overlays"
	"github.com/samirrijal/carbontrack/internal/pkg/config"
	"github.com/samirrijal/carbontrack/internal/pkg/logging"
	"github.com/samirrijal/carbontrack/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("carbontrack-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Static reference data
	plants := catalog.Default()
	zones, err := overlays.Default()
	if err != nil {
		log.Fatalf("overlays: %v", err)
	}

	sessionTTL := time.Duration(cfg.Drawing.SessionTTL) * time.Second

	// Cache and session store. Interfaces stay nil when Valkey is off so
	// services see "no cache" rather than a nil *valkey.Cache.
	var (
		cache       *valkey.Cache
		queryCache  ports.CacheService
		sessionRepo ports.SessionStore = memory.NewSessionStore(sessionTTL)
	)
	if cfg.Valkey.Enabled {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable, using in-memory sessions", "error", err)
			cache = nil
		} else {
			defer cache.Close()
			queryCache = cache
			sessionRepo = valkey.NewSessionStore(cache, sessionTTL)
		}
	}

	// NATS
	var publisher ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, polygon events disabled", "error", err)
		pub = nil
	} else {
		defer pub.Close()
		publisher = pub
	}

	deps := &http.Dependencies{
		Catalog:     usecases.NewCatalogService(plants, queryCache),
		Drawing:     usecases.NewDrawingService(sessionRepo, publisher),
		Overlays:    usecases.NewOverlayService(zones),
		Projections: usecases.NewProjectionService(plants),
		Cache:       cache,
	}
	if pub != nil {
		deps.NATS = pub.Conn()
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "CarbonTrack API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, If-None-Match",
		ExposeHeaders:    "Link, X-Total-Count, ETag, X-Request-ID",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "plants", plants.Len(), "valkey", cache != nil, "nats", pub != nil)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
