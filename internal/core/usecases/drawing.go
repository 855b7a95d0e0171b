package usecases

import (
	"slices"
	"time"

	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/pkg/geospatial"
)

// minPolygonPoints is the smallest boundary that can be finished.
const minPolygonPoints = 3

// The transitions below never modify their argument. Each returns a fresh
// session so stored values can be replaced wholesale.

func cloneSession(s domain.DrawingSession) domain.DrawingSession {
	s.Points = slices.Clone(s.Points)
	s.Polygons = slices.Clone(s.Polygons)
	if s.Points == nil {
		s.Points = []domain.GeoPoint{}
	}
	if s.Polygons == nil {
		s.Polygons = []domain.DrawnPolygon{}
	}
	return s
}

// toggleDrawing flips drawing mode. Leaving it drops the unfinished boundary.
func toggleDrawing(s domain.DrawingSession) domain.DrawingSession {
	next := cloneSession(s)
	next.Drawing = !s.Drawing
	if !next.Drawing {
		next.Points = []domain.GeoPoint{}
	}
	return next
}

// addPoint appends p to the buffer. Outside drawing mode clicks are ignored.
func addPoint(s domain.DrawingSession, p domain.GeoPoint) domain.DrawingSession {
	next := cloneSession(s)
	if s.Drawing {
		next.Points = append(next.Points, p)
	}
	return next
}

// finishPolygon closes the buffer into a polygon when drawing with enough
// points. The area is fixed here and never recomputed. ok is false when
// nothing was finished.
func finishPolygon(s domain.DrawingSession, id string, now time.Time) (next domain.DrawingSession, poly domain.DrawnPolygon, ok bool) {
	next = cloneSession(s)
	if !s.Drawing || len(s.Points) < minPolygonPoints {
		return next, domain.DrawnPolygon{}, false
	}
	poly = domain.DrawnPolygon{
		ID:        id,
		Positions: slices.Clone(s.Points),
		Area:      geospatial.EstimateArea(s.Points),
		CreatedAt: now,
	}
	next.Polygons = append(next.Polygons, poly)
	next.Points = []domain.GeoPoint{}
	next.Drawing = false
	return next, poly, true
}

// cancelDrawing discards the buffer and leaves drawing mode.
func cancelDrawing(s domain.DrawingSession) domain.DrawingSession {
	next := cloneSession(s)
	next.Points = []domain.GeoPoint{}
	next.Drawing = false
	return next
}

// clearPolygons destroys every polygon and resets the buffer.
func clearPolygons(s domain.DrawingSession) domain.DrawingSession {
	next := cancelDrawing(s)
	next.Polygons = []domain.DrawnPolygon{}
	return next
}
