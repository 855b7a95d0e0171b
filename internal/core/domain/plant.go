package domain

// WaterNeed is the irrigation requirement of a plant.
type WaterNeed string

const (
	WaterLow    WaterNeed = "low"
	WaterMedium WaterNeed = "medium"
	WaterHigh   WaterNeed = "high"
)

// Rank orders water needs low < medium < high. Unknown values rank 0.
func (w WaterNeed) Rank() int {
	switch w {
	case WaterLow:
		return 1
	case WaterMedium:
		return 2
	case WaterHigh:
		return 3
	}
	return 0
}

// Valid reports whether w is one of the three known levels.
func (w WaterNeed) Valid() bool { return w.Rank() > 0 }

// PlantType is the catalog category of a plant.
type PlantType string

const (
	PlantTree   PlantType = "tree"
	PlantShrub  PlantType = "shrub"
	PlantGrass  PlantType = "grass"
	PlantFlower PlantType = "flower"
	PlantHerb   PlantType = "herb"
	PlantVine   PlantType = "vine"
)

// PlantTypes lists every category in display order.
var PlantTypes = []PlantType{PlantTree, PlantShrub, PlantGrass, PlantFlower, PlantHerb, PlantVine}

// Valid reports whether t is a known category.
func (t PlantType) Valid() bool {
	switch t {
	case PlantTree, PlantShrub, PlantGrass, PlantFlower, PlantHerb, PlantVine:
		return true
	}
	return false
}

// CarbonRange buckets annual carbon sequestration values.
type CarbonRange string

const (
	CarbonAll    CarbonRange = "all"
	CarbonLow    CarbonRange = "low"    // [0, 10)
	CarbonMedium CarbonRange = "medium" // [10, 30)
	CarbonHigh   CarbonRange = "high"   // [30, ∞)
)

// Carbon range boundaries.
const (
	carbonMediumFloor = 10
	carbonHighFloor   = 30
)

// Contains reports whether v falls inside the range. "all" and unknown
// ranges contain every value.
func (r CarbonRange) Contains(v float64) bool {
	switch r {
	case CarbonLow:
		return v < carbonMediumFloor
	case CarbonMedium:
		return v >= carbonMediumFloor && v < carbonHighFloor
	case CarbonHigh:
		return v >= carbonHighFloor
	}
	return true
}

// SortKey selects the ordering of catalog query results.
type SortKey string

const (
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
	SortCarbonHigh SortKey = "carbon-high"
	SortCarbonLow  SortKey = "carbon-low"
	SortWaterLow   SortKey = "water-low"
	SortWaterHigh  SortKey = "water-high"
)

// FilterAll disables a categorical filter.
const FilterAll = "all"

// PlantRecord is a static catalog entry.
type PlantRecord struct {
	ID                  int       `json:"id" yaml:"id"`
	Name                string    `json:"name" yaml:"name"`
	Image               string    `json:"image,omitempty" yaml:"image"`
	CarbonSequestration float64   `json:"carbon_sequestration" yaml:"carbon"` // per year
	WaterNeeds          WaterNeed `json:"water_needs" yaml:"water"`
	PlantType           PlantType `json:"plant_type" yaml:"type"`
	Description         string    `json:"description" yaml:"description"`
}

// PlantQuery holds catalog search parameters. Zero values and "all" mean no
// restriction; unrecognised filter values are treated the same way.
type PlantQuery struct {
	Search string      `json:"search"`
	SortBy SortKey     `json:"sort_by"`
	Water  WaterNeed   `json:"water"`
	Type   PlantType   `json:"type"`
	Carbon CarbonRange `json:"carbon"`
}
