package observability

import (
	"strconv"
	"time"

	"session-analytics-service/internal/analytics/core/engine"
	"session-analytics-service/internal/sessions/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "session_analytics"

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	recordsTotal      *prometheus.CounterVec
	streamFailures    *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	sessionsStored    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		recordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_normalized_total",
			Help:      "Session records normalized by kind and outcome (clean, defaulted, excluded).",
		}, []string{"kind", "outcome"}),
		streamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_failures_total",
			Help:      "Collection fetches that left a session stream unavailable.",
		}, []string{"kind"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Collection cache hits by kind.",
		}, []string{"kind"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Collection cache misses by kind.",
		}, []string{"kind"}),
		sessionsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_stored_total",
			Help:      "Ingested session records by kind and result (created, duplicate).",
		}, []string{"kind", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.recordsTotal,
		m.streamFailures,
		m.cacheHits,
		m.cacheMisses,
		m.sessionsStored,
	)

	return m
}

// Middleware counts requests by matched route so path parameters do not
// explode the label space.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if m == nil {
			return err
		}

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		route := c.Route().Path
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) Handler() fiber.Handler {
	if m == nil {
		return func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) }
	}
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) ObserveBatch(b engine.Batch) {
	if m == nil {
		return
	}
	kind := string(b.Kind)
	clean := len(b.Records) - b.Defaulted
	m.recordsTotal.WithLabelValues(kind, engine.OutcomeClean.String()).Add(float64(clean))
	m.recordsTotal.WithLabelValues(kind, engine.OutcomeDefaulted.String()).Add(float64(b.Defaulted))
	m.recordsTotal.WithLabelValues(kind, engine.OutcomeExcluded.String()).Add(float64(len(b.Excluded)))
}

func (m *Metrics) StreamFailed(kind domain.Kind) {
	if m == nil {
		return
	}
	m.streamFailures.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) CacheHit(kind domain.Kind) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) CacheMiss(kind domain.Kind) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) SessionsStored(kind domain.Kind, created, duplicates int) {
	if m == nil {
		return
	}
	m.sessionsStored.WithLabelValues(string(kind), "created").Add(float64(created))
	m.sessionsStored.WithLabelValues(string(kind), "duplicate").Add(float64(duplicates))
}
