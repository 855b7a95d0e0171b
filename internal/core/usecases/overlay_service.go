package usecases

import (
	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/core/ports"
	"github.com/samirrijal/carbontrack/internal/pkg/geospatial"
)

// OverlayService answers lookups against the reference overlay zones.
type OverlayService struct {
	zones []domain.OverlayZone
}

// NewOverlayService snapshots the zones of src.
func NewOverlayService(src ports.OverlaySource) *OverlayService {
	return &OverlayService{zones: src.Zones()}
}

// List returns zones of one kind. An empty or unknown kind lists every zone.
func (s *OverlayService) List(kind domain.OverlayKind) []domain.OverlayZone {
	return s.filter(func(z domain.OverlayZone) bool {
		switch kind {
		case domain.OverlayMicroclimate, domain.OverlaySoil:
			return z.Kind == kind
		}
		return true
	})
}

// Nearby returns zones whose bounds reach within radiusMeters of a point.
func (s *OverlayService) Nearby(lat, lon, radiusMeters float64) []domain.OverlayZone {
	box := geospatial.BoundingBox(lat, lon, radiusMeters)
	return s.filter(func(z domain.OverlayZone) bool {
		return zoneBounds(z).Intersects(box)
	})
}

// Intersecting returns zones whose bounds overlap the bounds of a drawn
// boundary. Fewer than three points match nothing.
func (s *OverlayService) Intersecting(points []domain.GeoPoint) []domain.OverlayZone {
	if len(points) < minPolygonPoints {
		return []domain.OverlayZone{}
	}
	box := geospatial.BoundsOf(points)
	return s.filter(func(z domain.OverlayZone) bool {
		return zoneBounds(z).Intersects(box)
	})
}

func (s *OverlayService) filter(keep func(domain.OverlayZone) bool) []domain.OverlayZone {
	out := make([]domain.OverlayZone, 0, len(s.zones))
	for _, z := range s.zones {
		if keep(z) {
			out = append(out, z)
		}
	}
	return out
}

func zoneBounds(z domain.OverlayZone) domain.Bounds {
	if len(z.Rings) == 0 {
		return domain.Bounds{}
	}
	return geospatial.BoundsOf(z.Rings[0])
}
