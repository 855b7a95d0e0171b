// Package overlays loads the static microclimate and soil reference zones.
package overlays

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/pkg/geospatial"
)

//go:embed overlays.yaml
var overlaysYAML []byte

// Set is a fixed collection of overlay zones.
type Set struct {
	zones []domain.OverlayZone
}

// Parse decodes a YAML zone list and computes each zone's area. The first
// ring is the outline; any further rings are holes.
func Parse(data []byte) (*Set, error) {
	var doc struct {
		Zones []domain.OverlayZone `yaml:"zones"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode overlays: %w", err)
	}
	for i, z := range doc.Zones {
		if z.Kind != domain.OverlayMicroclimate && z.Kind != domain.OverlaySoil {
			return nil, fmt.Errorf("zone %s: unknown kind %q", z.ID, z.Kind)
		}
		if len(z.Rings) == 0 || len(z.Rings[0]) < 3 {
			return nil, fmt.Errorf("zone %s: outline needs at least 3 points", z.ID)
		}
		area := geospatial.EstimateArea(z.Rings[0])
		for _, hole := range z.Rings[1:] {
			area -= geospatial.EstimateArea(hole)
		}
		doc.Zones[i].Area = max(area, 0)
	}
	return &Set{zones: doc.Zones}, nil
}

// Default returns the embedded zones.
func Default() (*Set, error) {
	return Parse(overlaysYAML)
}

// Zones returns a copy of every zone in declaration order.
func (s *Set) Zones() []domain.OverlayZone {
	out := make([]domain.OverlayZone, len(s.zones))
	copy(out, s.zones)
	return out
}
