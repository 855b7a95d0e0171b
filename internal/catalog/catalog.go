// Package catalog holds the static plant table and the query engine that
// searches, filters and sorts it.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

//go:embed plants.yaml
var plantsYAML []byte

// Catalog is an immutable, ordered plant table.
type Catalog struct {
	plants []domain.PlantRecord
	byID   map[int]int // id -> index
}

// New builds a catalog from records, keeping their order.
func New(plants []domain.PlantRecord) *Catalog {
	c := &Catalog{
		plants: make([]domain.PlantRecord, len(plants)),
		byID:   make(map[int]int, len(plants)),
	}
	copy(c.plants, plants)
	for i, p := range c.plants {
		c.byID[p.ID] = i
	}
	return c
}

// Parse decodes a YAML plant table.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Plants []domain.PlantRecord `yaml:"plants"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode plants: %w", err)
	}
	for _, p := range doc.Plants {
		if p.CarbonSequestration < 0 {
			return nil, fmt.Errorf("plant %d: negative carbon value %v", p.ID, p.CarbonSequestration)
		}
		if !p.WaterNeeds.Valid() {
			return nil, fmt.Errorf("plant %d: unknown water need %q", p.ID, p.WaterNeeds)
		}
		if !p.PlantType.Valid() {
			return nil, fmt.Errorf("plant %d: unknown plant type %q", p.ID, p.PlantType)
		}
	}
	return New(doc.Plants), nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, decoded on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(plantsYAML)
		if err != nil {
			panic("embedded plant catalog: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// All returns a copy of every record in declaration order.
func (c *Catalog) All() []domain.PlantRecord {
	out := make([]domain.PlantRecord, len(c.plants))
	copy(out, c.plants)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.plants) }

// ByID looks up a record.
func (c *Catalog) ByID(id int) (domain.PlantRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.PlantRecord{}, false
	}
	return c.plants[i], true
}

// Query runs the query engine over the whole catalog.
func (c *Catalog) Query(q domain.PlantQuery) []domain.PlantRecord {
	return Query(c.plants, q)
}
