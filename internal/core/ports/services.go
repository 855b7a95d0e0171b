package ports

import (
	"context"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishPolygonFinalized(ctx context.Context, event *domain.PolygonEvent) error
	PublishPolygonsCleared(ctx context.Context, sessionID string) error
	PublishPlantingPlan(ctx context.Context, plan *domain.PlantingPlan) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribePolygonFinalized(ctx context.Context, handler func(ctx context.Context, event *domain.PolygonEvent) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
