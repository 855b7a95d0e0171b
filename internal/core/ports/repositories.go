package ports

import (
	"context"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

// PlantCatalog is the read-only plant table.
type PlantCatalog interface {
	All() []domain.PlantRecord
	Len() int
	ByID(id int) (domain.PlantRecord, bool)
	Query(q domain.PlantQuery) []domain.PlantRecord
}

// SessionStore keeps drawing sessions. Put replaces the whole session.
// Get returns domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.DrawingSession, error)
	Put(ctx context.Context, session *domain.DrawingSession) error
	Delete(ctx context.Context, id string) error
}

// OverlaySource provides the static reference overlay zones.
type OverlaySource interface {
	Zones() []domain.OverlayZone
}
