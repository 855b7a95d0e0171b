package telemetry

// Span and attribute names shared by the use-cases.
const (
	TracerName = "github.com/samirrijal/carbontrack"

	AttrSortKey     = "catalog.sort"
	AttrResultCount = "catalog.results"
	AttrSessionID   = "drawing.session_id"
	AttrPointCount  = "drawing.points"
	AttrArea        = "drawing.area_m2"
	AttrYears       = "projection.years"
)
