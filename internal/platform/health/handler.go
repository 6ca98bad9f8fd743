package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

type ComponentStatus struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type Response struct {
	Status        Status                     `json:"status"`
	Timestamp     time.Time                  `json:"timestamp"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Components    map[string]ComponentStatus `json:"components"`
}

// Check probes one dependency, e.g. (*sql.DB).PingContext.
type Check func(ctx context.Context) error

type Handler struct {
	checks    map[string]Check
	timeout   time.Duration
	startTime time.Time
}

func NewHandler(timeout time.Duration) *Handler {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Handler{
		checks:    make(map[string]Check),
		timeout:   timeout,
		startTime: time.Now(),
	}
}

func (h *Handler) Add(name string, check Check) *Handler {
	h.checks[name] = check
	return h
}

func (h *Handler) Register(r fiber.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/healthz/ready", h.Readiness)
}

// Liveness godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Liveness(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness godoc
// @Summary Readiness probe
// @Description Pings every configured dependency
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /healthz/ready [get]
func (h *Handler) Readiness(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	components := make(map[string]ComponentStatus, len(h.checks))
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(len(h.checks))
	for name, check := range h.checks {
		name, check := name, check
		go func() {
			defer wg.Done()
			status := probe(ctx, check)
			mu.Lock()
			components[name] = status
			mu.Unlock()
		}()
	}
	wg.Wait()

	overall := StatusHealthy
	for _, cs := range components {
		if cs.Status == StatusUnhealthy {
			overall = StatusUnhealthy
			break
		}
	}

	resp := Response{
		Status:        overall,
		Timestamp:     time.Now().UTC(),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Components:    components,
	}

	statusCode := http.StatusOK
	if overall == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	return c.Status(statusCode).JSON(resp)
}

func probe(ctx context.Context, check Check) ComponentStatus {
	start := time.Now()
	err := check(ctx)
	cs := ComponentStatus{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		cs.Status = StatusUnhealthy
		cs.Error = err.Error()
	}
	return cs
}
