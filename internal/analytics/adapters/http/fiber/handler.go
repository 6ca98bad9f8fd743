package fiber

import (
	"context"
	"errors"
	"net/http"

	"session-analytics-service/internal/analytics/core/usecase"
	"session-analytics-service/internal/sessions/core/domain"

	"github.com/gofiber/fiber/v2"
)

type DashboardUseCase interface {
	Engagement(ctx context.Context) (*usecase.EngagementView, error)
	Avatar(ctx context.Context) (*usecase.AvatarView, error)
	Meditation(ctx context.Context) (*usecase.MeditationView, error)
	Questionary(ctx context.Context) (*usecase.QuestionaryView, error)
	Performance(ctx context.Context) (*usecase.PerformanceView, error)
	Overview(ctx context.Context) (*usecase.OverviewView, error)
	Signal(ctx context.Context, kind domain.Kind, id string) (*usecase.SignalView, error)
}

type AnalyticsHandler struct {
	uc DashboardUseCase
}

func NewAnalyticsHandler(uc DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) Register(r fiber.Router) {
	r.Get("/engagement", h.GetEngagement)
	r.Get("/avatar", h.GetAvatar)
	r.Get("/meditation", h.GetMeditation)
	r.Get("/questionary", h.GetQuestionary)
	r.Get("/performance", h.GetPerformance)
	r.Get("/overview", h.GetOverview)
	r.Get("/signal/:kind/:id", h.GetSignal)
}

// GetEngagement godoc
// @Summary Participant engagement
// @Description Distinct participants, total session time and time per segment
// @Tags Analytics
// @Produce json
// @Success 200 {object} usecase.EngagementView
// @Failure 500 {object} ErrorResponse
// @Router /analytics/engagement [get]
func (h *AnalyticsHandler) GetEngagement(c *fiber.Ctx) error {
	v, err := h.uc.Engagement(c.UserContext())
	return respond(c, v, err)
}

// GetAvatar godoc
// @Summary Neurofeedback avatar sessions
// @Description Monthly activity and mean signal value of avatar sessions
// @Tags Analytics
// @Produce json
// @Success 200 {object} usecase.AvatarView
// @Failure 500 {object} ErrorResponse
// @Router /analytics/avatar [get]
func (h *AnalyticsHandler) GetAvatar(c *fiber.Ctx) error {
	v, err := h.uc.Avatar(c.UserContext())
	return respond(c, v, err)
}

// GetMeditation godoc
// @Summary Meditation sessions
// @Tags Analytics
// @Produce json
// @Success 200 {object} usecase.MeditationView
// @Failure 500 {object} ErrorResponse
// @Router /analytics/meditation [get]
func (h *AnalyticsHandler) GetMeditation(c *fiber.Ctx) error {
	v, err := h.uc.Meditation(c.UserContext())
	return respond(c, v, err)
}

// GetQuestionary godoc
// @Summary Questionary answers
// @Description Stress, focus and control answers per category
// @Tags Analytics
// @Produce json
// @Success 200 {object} usecase.QuestionaryView
// @Failure 500 {object} ErrorResponse
// @Router /analytics/questionary [get]
func (h *AnalyticsHandler) GetQuestionary(c *fiber.Ctx) error {
	v, err := h.uc.Questionary(c.UserContext())
	return respond(c, v, err)
}

// GetPerformance godoc
// @Summary Performance test scores
// @Tags Analytics
// @Produce json
// @Success 200 {object} usecase.PerformanceView
// @Failure 500 {object} ErrorResponse
// @Router /analytics/performance [get]
func (h *AnalyticsHandler) GetPerformance(c *fiber.Ctx) error {
	v, err := h.uc.Performance(c.UserContext())
	return respond(c, v, err)
}

// GetOverview godoc
// @Summary Combined overview
// @Description Totals across every session kind; unavailable kinds are listed and left out
// @Tags Analytics
// @Produce json
// @Success 200 {object} usecase.OverviewView
// @Failure 500 {object} ErrorResponse
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *fiber.Ctx) error {
	v, err := h.uc.Overview(c.UserContext())
	return respond(c, v, err)
}

// GetSignal godoc
// @Summary Raw signal of one session
// @Tags Analytics
// @Produce json
// @Param kind path string true "Session kind: avatar | meditation | questionary | performance"
// @Param id path string true "Session record id"
// @Success 200 {object} usecase.SignalView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /analytics/signal/{kind}/{id} [get]
func (h *AnalyticsHandler) GetSignal(c *fiber.Ctx) error {
	kind, ok := domain.ParseKind(c.Params("kind"))
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "unknown_kind",
			Message: usecase.ErrUnknownKind.Error(),
		})
	}

	v, err := h.uc.Signal(c.UserContext(), kind, c.Params("id"))
	return respond(c, v, err)
}

func respond(c *fiber.Ctx, v any, err error) error {
	if err == nil {
		return c.Status(http.StatusOK).JSON(v)
	}

	switch {
	case errors.Is(err, usecase.ErrUnknownKind):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "unknown_kind",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrRecordNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrStreamUnavailable):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "stream_unavailable",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
