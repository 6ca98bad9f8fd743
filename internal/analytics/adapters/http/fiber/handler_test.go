package fiber_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "session-analytics-service/internal/analytics/adapters/http/fiber"
	"session-analytics-service/internal/analytics/core/engine"
	"session-analytics-service/internal/analytics/core/usecase"
	"session-analytics-service/internal/sessions/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDashboardUseCase only answers the calls a test wires up.
type fakeDashboardUseCase struct {
	EngagementFn func(ctx context.Context) (*usecase.EngagementView, error)
	OverviewFn   func(ctx context.Context) (*usecase.OverviewView, error)
	SignalFn     func(ctx context.Context, kind domain.Kind, id string) (*usecase.SignalView, error)

	lastKind domain.Kind
	lastID   string
}

func (f *fakeDashboardUseCase) Engagement(ctx context.Context) (*usecase.EngagementView, error) {
	if f.EngagementFn != nil {
		return f.EngagementFn(ctx)
	}
	return &usecase.EngagementView{}, nil
}

func (f *fakeDashboardUseCase) Avatar(ctx context.Context) (*usecase.AvatarView, error) {
	return &usecase.AvatarView{}, nil
}

func (f *fakeDashboardUseCase) Meditation(ctx context.Context) (*usecase.MeditationView, error) {
	return &usecase.MeditationView{}, nil
}

func (f *fakeDashboardUseCase) Questionary(ctx context.Context) (*usecase.QuestionaryView, error) {
	return &usecase.QuestionaryView{}, nil
}

func (f *fakeDashboardUseCase) Performance(ctx context.Context) (*usecase.PerformanceView, error) {
	return &usecase.PerformanceView{}, nil
}

func (f *fakeDashboardUseCase) Overview(ctx context.Context) (*usecase.OverviewView, error) {
	if f.OverviewFn != nil {
		return f.OverviewFn(ctx)
	}
	return &usecase.OverviewView{}, nil
}

func (f *fakeDashboardUseCase) Signal(ctx context.Context, kind domain.Kind, id string) (*usecase.SignalView, error) {
	f.lastKind = kind
	f.lastID = id
	if f.SignalFn != nil {
		return f.SignalFn(ctx, kind, id)
	}
	return &usecase.SignalView{Kind: kind, ID: id}, nil
}

func setupApp(t *testing.T, uc httpadapter.DashboardUseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	httpadapter.NewAnalyticsHandler(uc).Register(app.Group("/analytics"))
	return app
}

func doGet(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func TestGetEngagement_Success(t *testing.T) {
	d := engine.HoursMinutes(3810)
	uc := &fakeDashboardUseCase{
		EngagementFn: func(ctx context.Context) (*usecase.EngagementView, error) {
			return &usecase.EngagementView{
				Availability: usecase.Availability{Available: true},
				DurationSummary: usecase.DurationSummary{
					TotalDuration: engine.Available(3810),
					Duration:      &d,
					DurationLabel: "1h 3m",
				},
				Participants: engine.Available(3),
				DurationBySegment: engine.Series{
					{Label: "X", Value: engine.Available(180)},
					{Label: engine.FallbackLabel, Value: engine.Available(3600)},
				},
			}, nil
		},
	}

	status, body := doGet(t, setupApp(t, uc), "/analytics/engagement")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["available"])
	assert.Equal(t, float64(3), body["participants"])
	assert.Equal(t, float64(3810), body["total_duration_seconds"])
	assert.Equal(t, "1h 3m", body["duration_label"])

	segments, ok := body["duration_by_segment"].([]any)
	require.True(t, ok)
	require.Len(t, segments, 2)
	assert.Equal(t, "X", segments[0].(map[string]any)["label"])
}

func TestGetOverview_UnavailableValuesAreNull(t *testing.T) {
	uc := &fakeDashboardUseCase{
		OverviewFn: func(ctx context.Context) (*usecase.OverviewView, error) {
			return &usecase.OverviewView{
				Combined: engine.Assemble(
					engine.UnavailableStream(domain.KindAvatar, "backend down"),
				),
				DurationLabel: "N/A",
			}, nil
		},
	}

	status, body := doGet(t, setupApp(t, uc), "/analytics/overview")

	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["total_duration_seconds"])
	assert.Nil(t, body["participants"])
	assert.Equal(t, "N/A", body["duration_label"])
}

func TestGetSignal_Success(t *testing.T) {
	uc := &fakeDashboardUseCase{}

	status, body := doGet(t, setupApp(t, uc), "/analytics/signal/sessionAvatar/s1")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.KindAvatar, uc.lastKind)
	assert.Equal(t, "s1", uc.lastID)
	assert.Equal(t, "avatar", body["kind"])
}

func TestGetSignal_UnknownKind(t *testing.T) {
	uc := &fakeDashboardUseCase{}

	status, body := doGet(t, setupApp(t, uc), "/analytics/signal/heartbeat/s1")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "unknown_kind", body["error"])
	assert.Empty(t, uc.lastID)
}

func TestGetSignal_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", usecase.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{
			"stream unavailable",
			&usecase.StreamUnavailableError{Kind: domain.KindAvatar, Err: errors.New("timeout")},
			http.StatusServiceUnavailable,
			"stream_unavailable",
		},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeDashboardUseCase{
				SignalFn: func(ctx context.Context, kind domain.Kind, id string) (*usecase.SignalView, error) {
					return nil, tc.err
				},
			}

			status, body := doGet(t, setupApp(t, uc), "/analytics/signal/avatar/s1")

			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body["error"])
		})
	}
}

func TestViews_BackedByUseCase(t *testing.T) {
	source := sourceFunc(func(ctx context.Context, kind domain.Kind) (domain.Collection, error) {
		if kind == domain.KindMeditation {
			return nil, errors.New("connection refused")
		}
		return domain.Collection{
			{ID: "r1", Value: map[string]any{"user_id": "u1", "session_duration": 120, "score": 0.5}},
		}, nil
	})
	app := setupApp(t, usecase.NewDashboardUseCase(source, usecase.DefaultOptions()))

	status, body := doGet(t, app, "/analytics/meditation")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["available"])
	assert.Contains(t, body["reason"], "connection refused")
	assert.Contains(t, body, "duration")
	assert.Nil(t, body["duration"])

	status, body = doGet(t, app, "/analytics/overview")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["partial"])
	assert.Equal(t, []any{"meditation"}, body["unavailable"])
}

type sourceFunc func(ctx context.Context, kind domain.Kind) (domain.Collection, error)

func (f sourceFunc) FetchCollection(ctx context.Context, kind domain.Kind) (domain.Collection, error) {
	return f(ctx, kind)
}

type requestKey struct{}

func TestHandlers_PassUserContext(t *testing.T) {
	var seen []any
	uc := &fakeDashboardUseCase{
		EngagementFn: func(ctx context.Context) (*usecase.EngagementView, error) {
			seen = append(seen, ctx.Value(requestKey{}))
			return &usecase.EngagementView{}, nil
		},
		OverviewFn: func(ctx context.Context) (*usecase.OverviewView, error) {
			seen = append(seen, ctx.Value(requestKey{}))
			return &usecase.OverviewView{}, nil
		},
		SignalFn: func(ctx context.Context, kind domain.Kind, id string) (*usecase.SignalView, error) {
			seen = append(seen, ctx.Value(requestKey{}))
			return &usecase.SignalView{Kind: kind, ID: id}, nil
		},
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(context.WithValue(c.UserContext(), requestKey{}, "req-1"))
		return c.Next()
	})
	httpadapter.NewAnalyticsHandler(uc).Register(app.Group("/analytics"))

	for _, path := range []string{"/analytics/engagement", "/analytics/overview", "/analytics/signal/avatar/r1"} {
		status, _ := doGet(t, app, path)
		require.Equal(t, http.StatusOK, status, path)
	}
	assert.Equal(t, []any{"req-1", "req-1", "req-1"}, seen)
}
