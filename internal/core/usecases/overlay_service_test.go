package usecases_test

import (
	"testing"

	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/core/usecases"
	"github.com/samirrijal/carbontrack/internal/overlays"
)

func overlayService(t *testing.T) *usecases.OverlayService {
	t.Helper()
	set, err := overlays.Default()
	if err != nil {
		t.Fatalf("load overlays: %v", err)
	}
	return usecases.NewOverlayService(set)
}

func zoneNames(zones []domain.OverlayZone) []string {
	out := make([]string, len(zones))
	for i, z := range zones {
		out[i] = z.Name
	}
	return out
}

func TestOverlayService_List(t *testing.T) {
	svc := overlayService(t)

	if got := svc.List(""); len(got) != 4 {
		t.Errorf("expected 4 zones, got %d", len(got))
	}
	if got := svc.List("lava"); len(got) != 4 {
		t.Errorf("unknown kind should list everything, got %d", len(got))
	}

	soil := zoneNames(svc.List(domain.OverlaySoil))
	if len(soil) != 2 || soil[0] != "Clay Loam" || soil[1] != "Sandy Soil" {
		t.Errorf("unexpected soil zones: %v", soil)
	}
}

func TestOverlayService_Nearby(t *testing.T) {
	svc := overlayService(t)

	got := zoneNames(svc.Nearby(37.779, -122.41, 10))
	if len(got) != 1 || got[0] != "Clay Loam" {
		t.Errorf("expected [Clay Loam], got %v", got)
	}

	if got := svc.Nearby(0, 0, 1000); len(got) != 0 {
		t.Errorf("expected nothing near null island, got %v", zoneNames(got))
	}
}

func TestOverlayService_Intersecting(t *testing.T) {
	svc := overlayService(t)

	all := svc.Intersecting([]domain.GeoPoint{
		{Lat: 37.77, Lon: -122.42},
		{Lat: 37.80, Lon: -122.42},
		{Lat: 37.80, Lon: -122.39},
	})
	if len(all) != 4 {
		t.Errorf("expected all 4 zones, got %v", zoneNames(all))
	}

	if got := svc.Intersecting([]domain.GeoPoint{{Lat: 37.78, Lon: -122.41}, {Lat: 37.79, Lon: -122.40}}); len(got) != 0 {
		t.Errorf("two points are not a boundary, got %v", zoneNames(got))
	}
}
