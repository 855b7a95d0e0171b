package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/core/ports"
	"github.com/samirrijal/carbontrack/internal/pkg/geospatial"
	"github.com/samirrijal/carbontrack/internal/pkg/metrics"
	"github.com/samirrijal/carbontrack/internal/pkg/telemetry"
)

// DrawingService runs the map drawing state machine for stored sessions.
type DrawingService struct {
	store     ports.SessionStore
	publisher ports.EventPublisher

	// serialises read-modify-write cycles within this process
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

// NewDrawingService creates a new DrawingService. publisher may be nil.
func NewDrawingService(store ports.SessionStore, publisher ports.EventPublisher) *DrawingService {
	return &DrawingService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Start creates an empty session.
func (s *DrawingService) Start(ctx context.Context) (*domain.DrawingSession, error) {
	sess := cloneSession(domain.DrawingSession{ID: s.newID(), UpdatedAt: s.now()})
	if err := s.store.Put(ctx, &sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &sess, nil
}

// Get returns a session.
func (s *DrawingService) Get(ctx context.Context, id string) (*domain.DrawingSession, error) {
	return s.store.Get(ctx, id)
}

// ToggleDrawing enters or leaves drawing mode.
func (s *DrawingService) ToggleDrawing(ctx context.Context, id string) (*domain.DrawingSession, error) {
	return s.transition(ctx, id, toggleDrawing)
}

// AddPoint appends a vertex while drawing; otherwise the session is unchanged.
func (s *DrawingService) AddPoint(ctx context.Context, id string, p domain.GeoPoint) (*domain.DrawingSession, error) {
	return s.transition(ctx, id, func(sess domain.DrawingSession) domain.DrawingSession {
		return addPoint(sess, p)
	})
}

// Preview estimates the area of the unfinished boundary.
func (s *DrawingService) Preview(ctx context.Context, id string) (float64, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return geospatial.EstimateArea(sess.Points), nil
}

// Finish completes the boundary. It returns a nil polygon when the session is
// not drawing or has fewer than three points.
func (s *DrawingService) Finish(ctx context.Context, id string) (*domain.DrawingSession, *domain.DrawnPolygon, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "drawing.finish")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrSessionID, id))

	var (
		poly     domain.DrawnPolygon
		finished bool
	)
	sess, err := s.transition(ctx, id, func(cur domain.DrawingSession) domain.DrawingSession {
		var next domain.DrawingSession
		next, poly, finished = finishPolygon(cur, s.newID(), s.now())
		return next
	})
	if err != nil {
		return nil, nil, err
	}
	if !finished {
		return sess, nil, nil
	}

	span.SetAttributes(
		attribute.Int(telemetry.AttrPointCount, len(poly.Positions)),
		attribute.Float64(telemetry.AttrArea, poly.Area),
	)
	metrics.PolygonsFinalized.Inc()
	metrics.PolygonArea.Observe(poly.Area)

	if s.publisher != nil {
		event := &domain.PolygonEvent{SessionID: id, Polygon: poly}
		if err := s.publisher.PublishPolygonFinalized(ctx, event); err != nil {
			slog.Warn("publish polygon finalized", "session", id, "polygon", poly.ID, "error", err)
		}
	}
	return sess, &poly, nil
}

// Cancel discards the unfinished boundary and leaves drawing mode.
func (s *DrawingService) Cancel(ctx context.Context, id string) (*domain.DrawingSession, error) {
	return s.transition(ctx, id, cancelDrawing)
}

// Clear removes every finished polygon.
func (s *DrawingService) Clear(ctx context.Context, id string) (*domain.DrawingSession, error) {
	sess, err := s.transition(ctx, id, clearPolygons)
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishPolygonsCleared(ctx, id); err != nil {
			slog.Warn("publish polygons cleared", "session", id, "error", err)
		}
	}
	return sess, nil
}

// Delete drops a session.
func (s *DrawingService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *DrawingService) transition(ctx context.Context, id string, fn func(domain.DrawingSession) domain.DrawingSession) (*domain.DrawingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := fn(*cur)
	next.UpdatedAt = s.now()
	if err := s.store.Put(ctx, &next); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &next, nil
}
