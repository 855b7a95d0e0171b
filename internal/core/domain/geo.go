package domain

import "time"

// GeoPoint represents a geographic coordinate in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Intersects reports whether two boxes share at least one point.
func (b Bounds) Intersects(o Bounds) bool {
	return b.MinLat <= o.MaxLat && o.MinLat <= b.MaxLat &&
		b.MinLon <= o.MaxLon && o.MinLon <= b.MaxLon
}

// DrawnPolygon is a finalised project boundary. Area is computed once at
// finalisation and never changes afterwards.
type DrawnPolygon struct {
	ID        string     `json:"id"`
	Positions []GeoPoint `json:"positions"`
	Area      float64    `json:"area"` // m²
	CreatedAt time.Time  `json:"created_at"`
}

// OverlayKind distinguishes reference overlay layers on the map.
type OverlayKind string

const (
	OverlayMicroclimate OverlayKind = "microclimate"
	OverlaySoil         OverlayKind = "soil"
)

// OverlayZone is a static reference area drawn beneath user polygons.
type OverlayZone struct {
	ID    string       `json:"id" yaml:"id"`
	Kind  OverlayKind  `json:"kind" yaml:"kind"`
	Name  string       `json:"name" yaml:"name"`
	Color string       `json:"color" yaml:"color"`
	Rings [][]GeoPoint `json:"rings" yaml:"rings"`
	Area  float64      `json:"area,omitempty" yaml:"-"` // computed field, m²
}
