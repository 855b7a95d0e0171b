package usecases

import (
	"context"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/core/ports"
	"github.com/samirrijal/carbontrack/internal/pkg/metrics"
	"github.com/samirrijal/carbontrack/internal/pkg/telemetry"
)

// ProjectionService projects cumulative carbon sequestration of a planting.
type ProjectionService struct {
	catalog ports.PlantCatalog
}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService(catalog ports.PlantCatalog) *ProjectionService {
	return &ProjectionService{catalog: catalog}
}

// Project sums the yearly sequestration of every selection and accumulates it
// over years. Selections naming an unknown plant or a negative quantity are
// skipped and reported in SkippedIDs. years must lie in
// [1, domain.MaxProjectionYears].
func (s *ProjectionService) Project(ctx context.Context, selections []domain.PlantSelection, years int) (*domain.CarbonProjection, error) {
	if years <= 0 || years > domain.MaxProjectionYears {
		return nil, domain.ErrInvalidYears
	}

	_, span := telemetry.Tracer().Start(ctx, "projection.project")
	defer span.End()
	span.SetAttributes(attribute.Int(telemetry.AttrYears, years))

	proj := &domain.CarbonProjection{
		Years:      years,
		Cumulative: make([]float64, years),
	}
	for _, sel := range selections {
		plant, ok := s.catalog.ByID(sel.PlantID)
		if !ok || sel.Quantity < 0 {
			slog.Warn("skipping plant selection", "plant_id", sel.PlantID, "quantity", sel.Quantity)
			proj.SkippedIDs = append(proj.SkippedIDs, sel.PlantID)
			continue
		}
		proj.AnnualRate += plant.CarbonSequestration * float64(sel.Quantity)
	}

	var total float64
	for y := range years {
		total += proj.AnnualRate
		proj.Cumulative[y] = round2(total)
	}
	proj.Total = round2(total)

	metrics.ProjectionsComputed.Inc()
	return proj, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
