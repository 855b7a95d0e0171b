package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbontrack",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "carbontrack",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "carbontrack",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Catalog metrics
	CatalogQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbontrack",
		Subsystem: "catalog",
		Name:      "queries_total",
		Help:      "Total catalog queries by sort key",
	}, []string{"sort"})

	CatalogResultSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "carbontrack",
		Subsystem: "catalog",
		Name:      "result_size",
		Help:      "Number of plants returned per catalog query",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	})

	// Drawing metrics
	PolygonsFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carbontrack",
		Subsystem: "drawing",
		Name:      "polygons_finalized_total",
		Help:      "Total project boundaries completed",
	})

	PolygonArea = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "carbontrack",
		Subsystem: "drawing",
		Name:      "polygon_area_square_meters",
		Help:      "Estimated area of completed project boundaries",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 8),
	})

	ProjectionsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carbontrack",
		Subsystem: "projection",
		Name:      "computed_total",
		Help:      "Total carbon projections computed",
	})

	PlansPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carbontrack",
		Subsystem: "planner",
		Name:      "plans_published_total",
		Help:      "Total planting plans published",
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "carbontrack",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbontrack",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbontrack",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		// route pattern keeps session ids out of the label set
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
