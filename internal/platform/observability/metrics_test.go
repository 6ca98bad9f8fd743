package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"session-analytics-service/internal/analytics/core/engine"
	"session-analytics-service/internal/platform/observability"
	"session-analytics-service/internal/sessions/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestMetrics_ExposesDomainCounters(t *testing.T) {
	m := observability.NewMetrics()

	m.ObserveBatch(engine.Batch{
		Kind:      domain.KindAvatar,
		Records:   make([]engine.SessionRecord, 3),
		Defaulted: 1,
		Excluded:  []string{"broken"},
	})
	m.StreamFailed(domain.KindMeditation)
	m.CacheHit(domain.KindAvatar)
	m.CacheMiss(domain.KindAvatar)
	m.SessionsStored(domain.KindPerformance, 2, 1)

	app := fiber.New()
	app.Get("/internal/metrics", m.Handler())

	body := scrape(t, app)

	assert.Contains(t, body, `session_analytics_records_normalized_total{kind="avatar",outcome="clean"} 2`)
	assert.Contains(t, body, `session_analytics_records_normalized_total{kind="avatar",outcome="defaulted"} 1`)
	assert.Contains(t, body, `session_analytics_records_normalized_total{kind="avatar",outcome="excluded"} 1`)
	assert.Contains(t, body, `session_analytics_stream_failures_total{kind="meditation"} 1`)
	assert.Contains(t, body, `session_analytics_cache_hits_total{kind="avatar"} 1`)
	assert.Contains(t, body, `session_analytics_cache_misses_total{kind="avatar"} 1`)
	assert.Contains(t, body, `session_analytics_sessions_stored_total{kind="performance",result="created"} 2`)
	assert.Contains(t, body, `session_analytics_sessions_stored_total{kind="performance",result="duplicate"} 1`)
}

func TestMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	m := observability.NewMetrics()

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/analytics/signal/:kind/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNotFound)
	})
	app.Get("/internal/metrics", m.Handler())

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/analytics/signal/avatar/s1", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/analytics/signal/avatar/s2", nil))
	require.NoError(t, err)

	body := scrape(t, app)
	assert.Contains(t, body, `session_analytics_http_requests_total{route="/analytics/signal/:kind/:id",status="404"} 2`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics

	assert.NotPanics(t, func() {
		m.ObserveBatch(engine.Batch{Kind: domain.KindAvatar})
		m.StreamFailed(domain.KindAvatar)
		m.CacheHit(domain.KindAvatar)
		m.CacheMiss(domain.KindAvatar)
		m.SessionsStored(domain.KindAvatar, 1, 0)
	})
}
