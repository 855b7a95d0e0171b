package usecases_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"

	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/core/usecases"
	"github.com/samirrijal/carbontrack/internal/pkg/metrics"
)

const unitSquareArea = 111000.0 * 111000.0

func startDrawing(t *testing.T, svc *usecases.DrawingService) string {
	t.Helper()
	ctx := context.Background()
	sess, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.ToggleDrawing(ctx, sess.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	return sess.ID
}

func addPoints(t *testing.T, svc *usecases.DrawingService, id string, pts ...domain.GeoPoint) {
	t.Helper()
	for _, p := range pts {
		if _, err := svc.AddPoint(context.Background(), id, p); err != nil {
			t.Fatalf("add point: %v", err)
		}
	}
}

var unitSquare = []domain.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}}

func TestDrawingService_Start(t *testing.T) {
	svc := usecases.NewDrawingService(newMockSessionStore(), nil)

	sess, err := svc.Start(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID == "" {
		t.Error("expected a session id")
	}
	if sess.Drawing || len(sess.Points) != 0 || len(sess.Polygons) != 0 {
		t.Errorf("expected empty session, got %+v", sess)
	}
}

func TestDrawingService_FinishPolygon(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewDrawingService(newMockSessionStore(), pub)
	ctx := context.Background()

	id := startDrawing(t, svc)
	addPoints(t, svc, id, unitSquare...)

	preview, err := svc.Preview(ctx, id)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if math.Abs(preview-unitSquareArea) > 1 {
		t.Errorf("expected preview %.0f, got %.0f", unitSquareArea, preview)
	}

	finalizedBefore := testutil.ToFloat64(metrics.PolygonsFinalized)
	sess, poly, err := svc.Finish(ctx, id)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if poly == nil {
		t.Fatal("expected a polygon")
	}
	if got := testutil.ToFloat64(metrics.PolygonsFinalized) - finalizedBefore; got != 1 {
		t.Errorf("expected polygons_finalized to grow by 1, got %v", got)
	}
	if len(poly.Positions) != 4 || poly.ID == "" {
		t.Errorf("unexpected polygon: %+v", poly)
	}
	if math.Abs(poly.Area-unitSquareArea) > 1 {
		t.Errorf("expected area %.0f, got %.0f", unitSquareArea, poly.Area)
	}
	if sess.Drawing || len(sess.Points) != 0 || len(sess.Polygons) != 1 {
		t.Errorf("expected reset buffer and one polygon, got %+v", sess)
	}

	if len(pub.finalized) != 1 || pub.finalized[0].SessionID != id || pub.finalized[0].Polygon.ID != poly.ID {
		t.Errorf("expected one finalized event for the polygon, got %+v", pub.finalized)
	}
}

func TestDrawingService_FinishNeedsThreePoints(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewDrawingService(newMockSessionStore(), pub)

	id := startDrawing(t, svc)
	addPoints(t, svc, id, unitSquare[:2]...)

	sess, poly, err := svc.Finish(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if poly != nil {
		t.Errorf("expected no polygon, got %+v", poly)
	}
	if !sess.Drawing || len(sess.Points) != 2 {
		t.Errorf("buffer should be kept, got %+v", sess)
	}
	if len(pub.finalized) != 0 {
		t.Error("no event expected")
	}
}

func TestDrawingService_PointsIgnoredWhenNotDrawing(t *testing.T) {
	svc := usecases.NewDrawingService(newMockSessionStore(), nil)
	ctx := context.Background()

	sess, _ := svc.Start(ctx)
	got, err := svc.AddPoint(ctx, sess.ID, domain.GeoPoint{Lat: 1, Lon: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Points) != 0 {
		t.Errorf("expected no points, got %d", len(got.Points))
	}

	_, poly, err := svc.Finish(ctx, sess.ID)
	if err != nil || poly != nil {
		t.Errorf("finish outside drawing mode should be a no-op, got %v, %v", poly, err)
	}
}

func TestDrawingService_ToggleOffDropsBuffer(t *testing.T) {
	svc := usecases.NewDrawingService(newMockSessionStore(), nil)

	id := startDrawing(t, svc)
	addPoints(t, svc, id, unitSquare[:3]...)

	sess, err := svc.ToggleDrawing(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Drawing || len(sess.Points) != 0 {
		t.Errorf("expected drawing off and empty buffer, got %+v", sess)
	}
}

func TestDrawingService_Cancel(t *testing.T) {
	svc := usecases.NewDrawingService(newMockSessionStore(), nil)
	ctx := context.Background()

	id := startDrawing(t, svc)
	addPoints(t, svc, id, unitSquare...)
	_, _, _ = svc.Finish(ctx, id)

	_, _ = svc.ToggleDrawing(ctx, id)
	addPoints(t, svc, id, unitSquare[:2]...)

	sess, err := svc.Cancel(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Drawing || len(sess.Points) != 0 {
		t.Errorf("expected reset buffer, got %+v", sess)
	}
	if len(sess.Polygons) != 1 {
		t.Errorf("cancel must keep finished polygons, got %d", len(sess.Polygons))
	}
}

func TestDrawingService_AreaFixedAtFinish(t *testing.T) {
	svc := usecases.NewDrawingService(newMockSessionStore(), nil)
	ctx := context.Background()

	id := startDrawing(t, svc)
	addPoints(t, svc, id, unitSquare...)
	_, first, _ := svc.Finish(ctx, id)

	id2 := id
	_, _ = svc.ToggleDrawing(ctx, id2)
	addPoints(t, svc, id2, domain.GeoPoint{Lat: 0, Lon: 0}, domain.GeoPoint{Lat: 0, Lon: 2}, domain.GeoPoint{Lat: 2, Lon: 0})
	sess, _, _ := svc.Finish(ctx, id2)

	if len(sess.Polygons) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(sess.Polygons))
	}
	if sess.Polygons[0].Area != first.Area {
		t.Errorf("first polygon area changed: %v -> %v", first.Area, sess.Polygons[0].Area)
	}
	if math.Abs(sess.Polygons[1].Area-2*unitSquareArea) > 1 {
		t.Errorf("expected triangle area %.0f, got %.0f", 2*unitSquareArea, sess.Polygons[1].Area)
	}
}

func TestDrawingService_Clear(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewDrawingService(newMockSessionStore(), pub)
	ctx := context.Background()

	id := startDrawing(t, svc)
	addPoints(t, svc, id, unitSquare...)
	_, _, _ = svc.Finish(ctx, id)

	sess, err := svc.Clear(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Polygons) != 0 || len(sess.Points) != 0 || sess.Drawing {
		t.Errorf("expected empty session, got %+v", sess)
	}
	if len(pub.cleared) != 1 || pub.cleared[0] != id {
		t.Errorf("expected cleared event, got %v", pub.cleared)
	}
}

func TestDrawingService_PublishErrorIsSwallowed(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker down")}
	svc := usecases.NewDrawingService(newMockSessionStore(), pub)

	id := startDrawing(t, svc)
	addPoints(t, svc, id, unitSquare...)

	_, poly, err := svc.Finish(context.Background(), id)
	if err != nil {
		t.Fatalf("publish failure must not fail finish: %v", err)
	}
	if poly == nil {
		t.Error("expected a polygon")
	}
}

func TestDrawingService_UnknownSession(t *testing.T) {
	svc := usecases.NewDrawingService(newMockSessionStore(), nil)
	ctx := context.Background()

	if _, err := svc.ToggleDrawing(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("toggle: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Preview(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("preview: expected ErrSessionNotFound, got %v", err)
	}
	if _, _, err := svc.Finish(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("finish: expected ErrSessionNotFound, got %v", err)
	}
}

func TestDrawingService_StoreError(t *testing.T) {
	store := newMockSessionStore()
	store.putFn = func(ctx context.Context, s *domain.DrawingSession) error {
		return errors.New("valkey down")
	}
	svc := usecases.NewDrawingService(store, nil)

	if _, err := svc.Start(context.Background()); err == nil {
		t.Error("expected error from store")
	}
}

func TestDrawingService_ConcurrentClicksAreSerialised(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := usecases.NewDrawingService(newMockSessionStore(), nil)
	id := startDrawing(t, svc)

	const clicks = 40
	var wg sync.WaitGroup
	for i := 0; i < clicks; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.AddPoint(context.Background(), id, domain.GeoPoint{Lat: float64(i), Lon: float64(i)})
		}(i)
	}
	wg.Wait()

	sess, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(sess.Points) != clicks {
		t.Errorf("expected %d points, got %d (lost update)", clicks, len(sess.Points))
	}
}
