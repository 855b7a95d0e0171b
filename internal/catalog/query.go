package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

// Query returns the records of plants that match every filter in q, ordered
// by q.SortBy. Ties keep their order in plants. An unrecognised sort key
// leaves the filtered order untouched. The input slice is never modified.
func Query(plants []domain.PlantRecord, q domain.PlantQuery) []domain.PlantRecord {
	term := strings.ToLower(q.Search)

	out := make([]domain.PlantRecord, 0, len(plants))
	for _, p := range plants {
		if matches(p, term, q) {
			out = append(out, p)
		}
	}

	if less := comparator(q.SortBy); less != nil {
		slices.SortStableFunc(out, less)
	}
	return out
}

func matches(p domain.PlantRecord, term string, q domain.PlantQuery) bool {
	if term != "" &&
		!strings.Contains(strings.ToLower(p.Name), term) &&
		!strings.Contains(strings.ToLower(p.Description), term) {
		return false
	}
	if q.Water.Valid() && p.WaterNeeds != q.Water {
		return false
	}
	if q.Type.Valid() && p.PlantType != q.Type {
		return false
	}
	return q.Carbon.Contains(p.CarbonSequestration)
}

// comparator returns nil for unknown keys.
func comparator(key domain.SortKey) func(a, b domain.PlantRecord) int {
	switch key {
	case domain.SortNameAsc, domain.SortNameDesc:
		// Collators keep scratch buffers and must not be shared across goroutines.
		col := collate.New(language.English)
		if key == domain.SortNameDesc {
			return func(a, b domain.PlantRecord) int { return col.CompareString(b.Name, a.Name) }
		}
		return func(a, b domain.PlantRecord) int { return col.CompareString(a.Name, b.Name) }
	case domain.SortCarbonHigh:
		return func(a, b domain.PlantRecord) int {
			return cmp.Compare(b.CarbonSequestration, a.CarbonSequestration)
		}
	case domain.SortCarbonLow:
		return func(a, b domain.PlantRecord) int {
			return cmp.Compare(a.CarbonSequestration, b.CarbonSequestration)
		}
	case domain.SortWaterLow:
		return func(a, b domain.PlantRecord) int {
			return cmp.Compare(a.WaterNeeds.Rank(), b.WaterNeeds.Rank())
		}
	case domain.SortWaterHigh:
		return func(a, b domain.PlantRecord) int {
			return cmp.Compare(b.WaterNeeds.Rank(), a.WaterNeeds.Rank())
		}
	}
	return nil
}

// ParseQuery builds a query from raw form values. Unknown filter values and
// "all" disable the corresponding filter; an unknown sort key is kept as-is
// and sorts nothing.
func ParseQuery(search, sortBy, water, plantType, carbon string) domain.PlantQuery {
	q := domain.PlantQuery{
		Search: search,
		SortBy: domain.SortKey(strings.ToLower(strings.TrimSpace(sortBy))),
		Water:  domain.WaterNeed(domain.FilterAll),
		Type:   domain.PlantType(domain.FilterAll),
		Carbon: domain.CarbonAll,
	}
	if w := domain.WaterNeed(strings.ToLower(strings.TrimSpace(water))); w.Valid() {
		q.Water = w
	}
	if t := domain.PlantType(strings.ToLower(strings.TrimSpace(plantType))); t.Valid() {
		q.Type = t
	}
	switch r := domain.CarbonRange(strings.ToLower(strings.TrimSpace(carbon))); r {
	case domain.CarbonLow, domain.CarbonMedium, domain.CarbonHigh:
		q.Carbon = r
	}
	return q
}
