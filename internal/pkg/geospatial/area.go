package geospatial

import (
	"math"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

// MetersPerDegree is the flat-earth scale used by EstimateArea: one degree is
// taken as 111 km on both axes, regardless of latitude.
const MetersPerDegree = 111000.0

// EstimateArea returns the approximate area in square meters of the polygon
// traced by points, treating (lat, lon) as planar (x, y) and applying the
// shoelace formula over the implicitly closed ring.
//
// No projection is applied, so the result is increasingly distorted away from
// the equator and over large regions. Fewer than three points yield 0.
// Self-intersecting rings are not rejected.
func EstimateArea(points []domain.GeoPoint) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].Lat * points[j].Lon
		sum -= points[j].Lat * points[i].Lon
	}

	return math.Abs(sum) / 2 * MetersPerDegree * MetersPerDegree
}

// Centroid returns the arithmetic mean of the vertices.
func Centroid(points []domain.GeoPoint) domain.GeoPoint {
	if len(points) == 0 {
		return domain.GeoPoint{}
	}
	var c domain.GeoPoint
	for _, p := range points {
		c.Lat += p.Lat
		c.Lon += p.Lon
	}
	c.Lat /= float64(len(points))
	c.Lon /= float64(len(points))
	return c
}

// BoundsOf returns the bounding box of points. An empty slice gives a zero box.
func BoundsOf(points []domain.GeoPoint) domain.Bounds {
	if len(points) == 0 {
		return domain.Bounds{}
	}
	b := domain.Bounds{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
	}
	return b
}
