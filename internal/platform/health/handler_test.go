package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"session-analytics-service/internal/platform/health"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readiness(t *testing.T, h *health.Handler) (int, health.Response) {
	t.Helper()
	app := fiber.New()
	h.Register(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz/ready", nil))
	require.NoError(t, err)

	var body health.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestLiveness(t *testing.T) {
	app := fiber.New()
	health.NewHandler(time.Second).Register(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadiness_Healthy(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	h := health.NewHandler(time.Second).
		Add("redis", func(ctx context.Context) error { return client.Ping(ctx).Err() })

	status, body := readiness(t, h)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, health.StatusHealthy, body.Status)
	assert.Equal(t, health.StatusHealthy, body.Components["redis"].Status)
}

func TestReadiness_Unhealthy(t *testing.T) {
	h := health.NewHandler(time.Second).
		Add("database", func(ctx context.Context) error { return errors.New("connection refused") }).
		Add("redis", func(ctx context.Context) error { return nil })

	status, body := readiness(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, health.StatusUnhealthy, body.Status)
	assert.Equal(t, "connection refused", body.Components["database"].Error)
	assert.Equal(t, health.StatusHealthy, body.Components["redis"].Status)
}
