package geospatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samirrijal/carbontrack/internal/pkg/geospatial"
)

func TestHaversine_OneDegreeOnEquator(t *testing.T) {
	d := geospatial.Haversine(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 1)
}

func TestPerimeter(t *testing.T) {
	assert.Zero(t, geospatial.Perimeter(pts(1, 1)))

	// Out and back along the equator.
	assert.InDelta(t, 2*111195.0, geospatial.Perimeter(pts(0, 0, 0, 1)), 2)
}

func TestBoundingBox(t *testing.T) {
	b := geospatial.BoundingBox(0, 0, 111320)
	assert.InDelta(t, -1, b.MinLat, 1e-9)
	assert.InDelta(t, 1, b.MaxLat, 1e-9)
	assert.InDelta(t, -1, b.MinLon, 1e-9)
	assert.InDelta(t, 1, b.MaxLon, 1e-9)
}
