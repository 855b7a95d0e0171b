package domain

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("drawing session not found")
	ErrPlantNotFound   = errors.New("plant not found")
	ErrInvalidYears    = errors.New("years must be between 1 and 1000")
)

// MaxProjectionYears bounds the horizon of a carbon projection.
const MaxProjectionYears = 1000

// DrawingSession is the map state of one user: the in-progress boundary
// buffer plus every finalised polygon. Sessions are replaced wholesale on each
// transition, never patched in place.
type DrawingSession struct {
	ID        string         `json:"id"`
	Drawing   bool           `json:"drawing"`
	Points    []GeoPoint     `json:"points"`
	Polygons  []DrawnPolygon `json:"polygons"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PolygonEvent is published when a polygon is finalised.
type PolygonEvent struct {
	SessionID string       `json:"session_id"`
	Polygon   DrawnPolygon `json:"polygon"`
}

// PlantSelection is a quantity of one catalog plant.
type PlantSelection struct {
	PlantID  int `json:"plant_id"`
	Quantity int `json:"quantity"`
}

// CarbonProjection is cumulative sequestration over a number of years.
type CarbonProjection struct {
	Years      int       `json:"years"`
	AnnualRate float64   `json:"annual_rate"`
	Total      float64   `json:"total"`
	Cumulative []float64 `json:"cumulative"` // index 0 is year 1
	SkippedIDs []int     `json:"skipped_ids,omitempty"`
}

// PlantingPlan is the outcome of planning a finalised polygon.
type PlantingPlan struct {
	SessionID  string           `json:"session_id"`
	PolygonID  string           `json:"polygon_id"`
	Area       float64          `json:"area"`
	Selections []PlantSelection `json:"selections"`
	Projection CarbonProjection `json:"projection"`
	CreatedAt  time.Time        `json:"created_at"`
}
