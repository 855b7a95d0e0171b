package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/core/ports"
	"github.com/samirrijal/carbontrack/internal/pkg/metrics"
	"github.com/samirrijal/carbontrack/internal/pkg/telemetry"
)

// catalogCacheTTL is in seconds. The table is static, so entries only go
// stale across deployments.
const catalogCacheTTL = 3600

// CatalogService serves plant catalog queries.
type CatalogService struct {
	catalog ports.PlantCatalog
	cache   ports.CacheService
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(catalog ports.PlantCatalog, cache ports.CacheService) *CatalogService {
	return &CatalogService{catalog: catalog, cache: cache}
}

// Query searches, filters and sorts the catalog. Cached and uncached results
// are identical.
func (s *CatalogService) Query(ctx context.Context, q domain.PlantQuery) []domain.PlantRecord {
	ctx, span := telemetry.Tracer().Start(ctx, "catalog.query")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrSortKey, string(q.SortBy)))

	metrics.CatalogQueries.WithLabelValues(sortLabel(q.SortBy)).Inc()

	// Try cache
	cacheKey := queryCacheKey(q)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var plants []domain.PlantRecord
			if err := json.Unmarshal(data, &plants); err == nil {
				metrics.CacheHits.WithLabelValues("catalog_query").Inc()
				metrics.CatalogResultSize.Observe(float64(len(plants)))
				span.SetAttributes(attribute.Int(telemetry.AttrResultCount, len(plants)))
				return plants
			}
		}
		metrics.CacheMisses.WithLabelValues("catalog_query").Inc()
	}

	plants := s.catalog.Query(q)
	metrics.CatalogResultSize.Observe(float64(len(plants)))
	span.SetAttributes(attribute.Int(telemetry.AttrResultCount, len(plants)))

	if s.cache != nil {
		if data, err := json.Marshal(plants); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, catalogCacheTTL); err != nil {
				slog.WarnContext(ctx, "failed to cache catalog query", "key", cacheKey, "error", err)
			}
		}
	}

	return plants
}

// Get returns a single plant.
func (s *CatalogService) Get(_ context.Context, id int) (domain.PlantRecord, error) {
	p, ok := s.catalog.ByID(id)
	if !ok {
		return domain.PlantRecord{}, fmt.Errorf("plant %d: %w", id, domain.ErrPlantNotFound)
	}
	return p, nil
}

// Total returns the size of the whole catalog.
func (s *CatalogService) Total() int {
	return s.catalog.Len()
}

// queryCacheKey encodes the query as the engine sees it: lowered search term,
// unknown sort keys collapsed to "none" and disabled filters to "all". The
// fields are JSON encoded so free-text search terms cannot collide with the
// other fields.
func queryCacheKey(q domain.PlantQuery) string {
	key := struct {
		Sort   string `json:"s"`
		Water  string `json:"w"`
		Type   string `json:"t"`
		Carbon string `json:"c"`
		Search string `json:"q"`
	}{
		Sort:   sortLabel(q.SortBy),
		Water:  domain.FilterAll,
		Type:   domain.FilterAll,
		Carbon: string(domain.CarbonAll),
		Search: strings.ToLower(q.Search),
	}
	if q.Water.Valid() {
		key.Water = string(q.Water)
	}
	if q.Type.Valid() {
		key.Type = string(q.Type)
	}
	switch q.Carbon {
	case domain.CarbonLow, domain.CarbonMedium, domain.CarbonHigh:
		key.Carbon = string(q.Carbon)
	}
	data, _ := json.Marshal(key)
	return "plants:query:" + string(data)
}

// sortLabel bounds the metric label set to the known keys.
func sortLabel(k domain.SortKey) string {
	switch k {
	case domain.SortNameAsc, domain.SortNameDesc, domain.SortCarbonHigh,
		domain.SortCarbonLow, domain.SortWaterLow, domain.SortWaterHigh:
		return string(k)
	}
	return "none"
}
