package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/carbontrack/internal/catalog"
	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/pkg/geospatial"
)

// buildSchema creates the GraphQL schema wired to our services.
// Object fields resolve through the json tags of the domain structs.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	geoPointInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "GeoPointInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"lat": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"lon": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	selectionInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PlantSelectionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"plant_id": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"quantity": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	plantType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Plant",
		Fields: graphql.Fields{
			"id":                   &graphql.Field{Type: graphql.Int},
			"name":                 &graphql.Field{Type: graphql.String},
			"image":                &graphql.Field{Type: graphql.String},
			"carbon_sequestration": &graphql.Field{Type: graphql.Float},
			"water_needs":          &graphql.Field{Type: graphql.String},
			"plant_type":           &graphql.Field{Type: graphql.String},
			"description":          &graphql.Field{Type: graphql.String},
		},
	})

	overlayType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Overlay",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.String},
			"kind":  &graphql.Field{Type: graphql.String},
			"name":  &graphql.Field{Type: graphql.String},
			"color": &graphql.Field{Type: graphql.String},
			"area":  &graphql.Field{Type: graphql.Float},
			"rings": &graphql.Field{Type: graphql.NewList(graphql.NewList(geoPointType))},
		},
	})

	areaType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AreaEstimate",
		Fields: graphql.Fields{
			"area_m2":           &graphql.Field{Type: graphql.Float},
			"area_km2":          &graphql.Field{Type: graphql.Float},
			"perimeter_m":       &graphql.Field{Type: graphql.Float},
			"points":            &graphql.Field{Type: graphql.Int},
			"overlapping_zones": &graphql.Field{Type: graphql.Int},
		},
	})

	projectionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CarbonProjection",
		Fields: graphql.Fields{
			"years":       &graphql.Field{Type: graphql.Int},
			"annual_rate": &graphql.Field{Type: graphql.Float},
			"total":       &graphql.Field{Type: graphql.Float},
			"cumulative":  &graphql.Field{Type: graphql.NewList(graphql.Float)},
			"skipped_ids": &graphql.Field{Type: graphql.NewList(graphql.Int)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"plants": &graphql.Field{
				Type:        graphql.NewList(plantType),
				Description: "Search, filter and sort the plant catalog",
				Args: graphql.FieldConfigArgument{
					"search": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"sort":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"water":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: domain.FilterAll},
					"type":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: domain.FilterAll},
					"carbon": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: domain.FilterAll},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := catalog.ParseQuery(
						stringArg(p.Args, "search", ""),
						stringArg(p.Args, "sort", ""),
						stringArg(p.Args, "water", domain.FilterAll),
						stringArg(p.Args, "type", domain.FilterAll),
						stringArg(p.Args, "carbon", domain.FilterAll),
					)
					return deps.Catalog.Query(p.Context, q), nil
				},
			},
			"plant": &graphql.Field{
				Type:        plantType,
				Description: "Get a plant by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					plant, err := deps.Catalog.Get(p.Context, p.Args["id"].(int))
					if err != nil {
						return nil, err
					}
					return plant, nil
				},
			},
			"estimateArea": &graphql.Field{
				Type:        areaType,
				Description: "Approximate area of a boundary in square metres",
				Args: graphql.FieldConfigArgument{
					"points": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(geoPointInput)))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					points := pointsArg(p.Args["points"])
					area := geospatial.EstimateArea(points)
					return AreaResponse{
						AreaM2:      area,
						AreaKm2:     area / 1e6,
						PerimeterM:  geospatial.Perimeter(points),
						Points:      len(points),
						Overlapping: len(deps.Overlays.Intersecting(points)),
					}, nil
				},
			},
			"overlays": &graphql.Field{
				Type:        graphql.NewList(overlayType),
				Description: "Reference microclimate and soil zones",
				Args: graphql.FieldConfigArgument{
					"kind": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Overlays.List(domain.OverlayKind(stringArg(p.Args, "kind", ""))), nil
				},
			},
			"projection": &graphql.Field{
				Type:        projectionType,
				Description: "Cumulative carbon sequestration for a plant selection",
				Args: graphql.FieldConfigArgument{
					"selections": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(selectionInput)))},
					"years":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Projections.Project(p.Context, selectionsArg(p.Args["selections"]), p.Args["years"].(int))
				},
			},
			"microclimate": &graphql.Field{
				Type:        graphql.String,
				Description: "Categorise a climate reading",
				Args: graphql.FieldConfigArgument{
					"temperature": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"humidity":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"rainfall":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return domain.CategorizeMicroclimate(domain.ClimateReading{
						TempC:           p.Args["temperature"].(float64),
						HumidityPercent: p.Args["humidity"].(float64),
						RainfallMM:      p.Args["rainfall"].(float64),
					}), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// stringArg returns def when a nullable argument is absent or explicitly null.
func stringArg(args map[string]interface{}, name, def string) string {
	if s, ok := args[name].(string); ok {
		return s
	}
	return def
}

func pointsArg(v interface{}) []domain.GeoPoint {
	raw, _ := v.([]interface{})
	points := make([]domain.GeoPoint, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		lat, _ := m["lat"].(float64)
		lon, _ := m["lon"].(float64)
		points = append(points, domain.GeoPoint{Lat: lat, Lon: lon})
	}
	return points
}

func selectionsArg(v interface{}) []domain.PlantSelection {
	raw, _ := v.([]interface{})
	out := make([]domain.PlantSelection, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := m["plant_id"].(int)
		qty, _ := m["quantity"].(int)
		out = append(out, domain.PlantSelection{PlantID: id, Quantity: qty})
	}
	return out
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
