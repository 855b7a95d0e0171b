package http_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/carbontrack/api"
)

func loadSpec(t *testing.T) *openapi3.T {
	t.Helper()
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(api.OpenAPI)
	require.NoError(t, err, "failed to parse OpenAPI document")
	return spec
}

// TestOpenAPISpec validates the embedded OpenAPI document.
func TestOpenAPISpec(t *testing.T) {
	spec := loadSpec(t)
	require.NoError(t, spec.Validate(context.Background()))

	// Every route registered in SetupRoutes is documented
	expectedPaths := []string{
		"/v1/health",
		"/v1/ready",
		"/v1/plants",
		"/v1/plants/{id}",
		"/v1/geometry/area",
		"/v1/sessions",
		"/v1/sessions/{id}",
		"/v1/sessions/{id}/toggle",
		"/v1/sessions/{id}/points",
		"/v1/sessions/{id}/preview",
		"/v1/sessions/{id}/finish",
		"/v1/sessions/{id}/cancel",
		"/v1/sessions/{id}/polygons",
		"/v1/sessions/{id}/polygons/{pid}/overlays",
		"/v1/overlays",
		"/v1/overlays/nearby",
		"/v1/projections",
		"/v1/microclimate",
		"/graphql",
	}
	for _, path := range expectedPaths {
		assert.NotNil(t, spec.Paths.Find(path), "expected path %s", path)
	}

	expectedSchemas := []string{
		"PlantRecord",
		"DrawingSession",
		"DrawnPolygon",
		"GeoPoint",
		"OverlayZone",
		"PlantSelection",
		"CarbonProjection",
		"APIError",
		"Pagination",
	}
	for _, schema := range expectedSchemas {
		assert.NotNil(t, spec.Components.Schemas[schema], "expected schema %s", schema)
	}
}

// TestOpenAPIInfo checks the document title and version.
func TestOpenAPIInfo(t *testing.T) {
	spec := loadSpec(t)

	assert.Equal(t, "CarbonTrack API", spec.Info.Title)
	assert.Equal(t, "1.0.0", spec.Info.Version)
	assert.NotEmpty(t, spec.Info.Description)
	require.NotEmpty(t, spec.Servers)
}
