package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/carbontrack/internal/pkg/metrics"
)

const (
	// APIVersion is reported on every response in X-API-Version.
	APIVersion = "1.0.0"

	requestTimeout = 15 * time.Second
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 300 requests per minute per IP. Drawing sends one request per click.
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", APIVersion)
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	with := func(h fiber.Handler) fiber.Handler {
		return timeout.NewWithContext(h, requestTimeout)
	}

	// Plant catalog
	v1.Get("/plants", with(ListPlantsHandler(deps)))
	v1.Get("/plants/:id", with(GetPlantHandler(deps)))

	// Geometry
	v1.Post("/geometry/area", with(EstimateAreaHandler(deps)))

	// Drawing sessions
	v1.Post("/sessions", with(CreateSessionHandler(deps)))
	v1.Get("/sessions/:id", with(GetSessionHandler(deps)))
	v1.Delete("/sessions/:id", with(DeleteSessionHandler(deps)))
	v1.Post("/sessions/:id/toggle", with(ToggleDrawingHandler(deps)))
	v1.Post("/sessions/:id/points", with(AddPointHandler(deps)))
	v1.Get("/sessions/:id/preview", with(PreviewHandler(deps)))
	v1.Post("/sessions/:id/finish", with(FinishPolygonHandler(deps)))
	v1.Post("/sessions/:id/cancel", with(CancelDrawingHandler(deps)))
	v1.Delete("/sessions/:id/polygons", with(ClearPolygonsHandler(deps)))
	v1.Get("/sessions/:id/polygons/:pid/overlays", with(PolygonOverlaysHandler(deps)))

	// Reference overlays
	v1.Get("/overlays", with(ListOverlaysHandler(deps)))
	v1.Get("/overlays/nearby", with(NearbyOverlaysHandler(deps)))

	// Carbon projection and site analysis
	v1.Post("/projections", with(ProjectionHandler(deps)))
	v1.Get("/microclimate", with(MicroclimateHandler(deps)))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
