package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/carbontrack/internal/catalog"
	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/pkg/geospatial"
)

const maxSearchLength = 200

// ---- Plants ----

// ListPlantsHandler searches, filters and sorts the plant catalog.
// Unknown filter or sort values are ignored rather than rejected.
func ListPlantsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		search := c.Query("q")
		if len(search) > maxSearchLength {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		q := catalog.ParseQuery(search, c.Query("sort"), c.Query("water"), c.Query("type"), c.Query("carbon"))

		plants := deps.Catalog.Query(c.UserContext(), q)

		offset, limit := pageParams(c)
		pg := Pagination{Offset: offset, Limit: limit, Total: len(plants)}
		SetLinkHeaders(c, pg)
		c.Set("X-Total-Count", strconv.Itoa(len(plants)))
		return c.JSON(PaginatedResponse{Data: page(plants, offset, limit), Pagination: pg})
	}
}

// GetPlantHandler returns a single plant by ID.
func GetPlantHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return errBadRequest(c, "plant id must be an integer")
		}
		plant, err := deps.Catalog.Get(c.UserContext(), id)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(plant)
	}
}

// ---- Geometry ----

type pointsRequest struct {
	Points []domain.GeoPoint `json:"points"`
}

// AreaResponse is the estimate for an ad-hoc boundary.
type AreaResponse struct {
	AreaM2      float64 `json:"area_m2"`
	AreaKm2     float64 `json:"area_km2"`
	PerimeterM  float64 `json:"perimeter_m"`
	Points      int     `json:"points"`
	Overlapping int     `json:"overlapping_zones"`
}

// EstimateAreaHandler estimates the area of a boundary given in the body.
// Fewer than three points are not an error; the area is simply 0.
func EstimateAreaHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req pointsRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		area := geospatial.EstimateArea(req.Points)
		resp := AreaResponse{
			AreaM2:     area,
			AreaKm2:    area / 1e6,
			PerimeterM: geospatial.Perimeter(req.Points),
			Points:     len(req.Points),
		}
		if deps.Overlays != nil {
			resp.Overlapping = len(deps.Overlays.Intersecting(req.Points))
		}
		return c.JSON(resp)
	}
}

// ---- Drawing sessions ----

// CreateSessionHandler starts a new drawing session.
func CreateSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := deps.Drawing.Start(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}
		c.Location("/v1/sessions/" + sess.ID)
		return c.Status(fiber.StatusCreated).JSON(sess)
	}
}

// GetSessionHandler returns the current state of a session.
func GetSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := deps.Drawing.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(sess)
	}
}

// DeleteSessionHandler drops a session.
func DeleteSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Drawing.Delete(c.UserContext(), c.Params("id")); err != nil {
			return errFromDomain(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ToggleDrawingHandler enters or leaves drawing mode.
func ToggleDrawingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := deps.Drawing.ToggleDrawing(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(sess)
	}
}

// AddPointHandler records a map click.
func AddPointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p domain.GeoPoint
		if err := c.BodyParser(&p); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
			return errBadRequest(c, "lat must be within ±90 and lon within ±180")
		}
		sess, err := deps.Drawing.AddPoint(c.UserContext(), c.Params("id"), p)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(sess)
	}
}

// PreviewHandler returns the live area of the unfinished boundary.
func PreviewHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		area, err := deps.Drawing.Preview(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		c.Set("Cache-Control", "no-store")
		return c.JSON(fiber.Map{"area_m2": area, "area_km2": area / 1e6})
	}
}

// FinishResponse reports the outcome of a finish request. Polygon is null
// when the boundary was not complete.
type FinishResponse struct {
	Session *domain.DrawingSession `json:"session"`
	Polygon *domain.DrawnPolygon   `json:"polygon"`
}

// FinishPolygonHandler completes the current boundary.
func FinishPolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, poly, err := deps.Drawing.Finish(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(FinishResponse{Session: sess, Polygon: poly})
	}
}

// CancelDrawingHandler discards the unfinished boundary.
func CancelDrawingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := deps.Drawing.Cancel(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(sess)
	}
}

// ClearPolygonsHandler removes every finished polygon of a session.
func ClearPolygonsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := deps.Drawing.Clear(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(sess)
	}
}

// PolygonOverlaysHandler lists overlay zones under a finished polygon.
func PolygonOverlaysHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := deps.Drawing.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		pid := c.Params("pid")
		for _, poly := range sess.Polygons {
			if poly.ID == pid {
				return c.JSON(deps.Overlays.Intersecting(poly.Positions))
			}
		}
		return errNotFound(c, "polygon not found")
	}
}

// ---- Overlays ----

// ListOverlaysHandler returns reference zones, optionally of one kind.
func ListOverlaysHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Overlays.List(domain.OverlayKind(c.Query("kind"))))
	}
}

// NearbyOverlaysHandler returns zones within a radius of a point.
func NearbyOverlaysHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("lat") == "" || c.Query("lon") == "" {
			return errBadRequest(c, "lat and lon are required")
		}
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)
		radius := c.QueryFloat("radius", 500)
		if radius <= 0 || radius > 50000 {
			return errBadRequest(c, "radius must be between 1 and 50000 meters")
		}
		return c.JSON(deps.Overlays.Nearby(lat, lon, radius))
	}
}

// ---- Projections ----

type projectionRequest struct {
	Selections []domain.PlantSelection `json:"selections"`
	Years      int                     `json:"years"`
}

// ProjectionHandler projects cumulative sequestration for a plant selection.
func ProjectionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req projectionRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		proj, err := deps.Projections.Project(c.UserContext(), req.Selections, req.Years)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(proj)
	}
}

// ---- Microclimate ----

// MicroclimateHandler categorises a temperature, humidity and rainfall reading.
func MicroclimateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, k := range []string{"temp", "humidity", "rainfall"} {
			if c.Query(k) == "" {
				return errBadRequest(c, "temp, humidity and rainfall are required")
			}
		}
		r := domain.ClimateReading{
			TempC:           c.QueryFloat("temp", 0),
			HumidityPercent: c.QueryFloat("humidity", 0),
			RainfallMM:      c.QueryFloat("rainfall", 0),
		}
		return c.JSON(fiber.Map{
			"category": domain.CategorizeMicroclimate(r),
			"reading":  r,
		})
	}
}
