package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/carbontrack/internal/adapters/valkey"
	"github.com/samirrijal/carbontrack/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Catalog     *usecases.CatalogService
	Drawing     *usecases.DrawingService
	Overlays    *usecases.OverlayService
	Projections *usecases.ProjectionService
	NATS        *nats.Conn
	Cache       *valkey.Cache
}
