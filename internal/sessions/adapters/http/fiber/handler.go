package fiber

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"session-analytics-service/internal/sessions/core/domain"
	"session-analytics-service/internal/sessions/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type StoreSessionUseCase interface {
	Execute(ctx context.Context, in usecase.StoreSessionInput) (usecase.StoreSessionResult, error)
	BulkCreateSessions(ctx context.Context, in usecase.BulkCreateSessionsInput) (usecase.BulkCreateSessionsResult, error)
	ImportCollection(ctx context.Context, kind string, coll domain.Collection) (usecase.BulkCreateSessionsResult, error)
	ListSessions(ctx context.Context, kind string) (domain.Collection, error)
}

type SessionHandler struct {
	uc StoreSessionUseCase
}

func NewSessionHandler(uc StoreSessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) Register(r fiber.Router) {
	r.Post("/:kind", h.CreateSession)
	r.Post("/:kind/bulk", h.BulkCreateSessions)
	r.Post("/:kind/import", h.ImportCollection)
	r.Get("/:kind", h.ListSessions)
}

// CreateSession godoc
// @Summary Store a session record
// @Description Stores one raw record; an existing id is reported as duplicate
// @Tags Sessions
// @Accept json
// @Produce json
// @Param kind path string true "Session kind"
// @Param request body object true "Raw session record"
// @Success 201 {object} CreateSessionResponse
// @Success 200 {object} CreateSessionResponse "Duplicate session"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions/{kind} [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	res, err := h.uc.Execute(c.UserContext(), usecase.StoreSessionInput{
		Kind:    c.Params("kind"),
		Payload: payload,
	})
	if err != nil {
		return writeError(c, err)
	}

	if !res.Created {
		return c.Status(http.StatusOK).JSON(CreateSessionResponse{Status: "duplicate", ID: res.ID})
	}
	return c.Status(http.StatusCreated).JSON(CreateSessionResponse{Status: "created", ID: res.ID})
}

// BulkCreateSessions godoc
// @Summary Bulk store session records
// @Description Validates every record before storing any of them
// @Tags Sessions
// @Accept json
// @Produce json
// @Param kind path string true "Session kind"
// @Param request body BulkCreateSessionsRequest true "Records"
// @Success 201 {object} BulkCreateSessionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions/{kind}/bulk [post]
func (h *SessionHandler) BulkCreateSessions(c *fiber.Ctx) error {
	var req BulkCreateSessionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if len(req.Sessions) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "sessions_list_required",
		})
	}

	items := make([]usecase.StoreSessionInput, len(req.Sessions))
	for i, p := range req.Sessions {
		items[i] = usecase.StoreSessionInput{Payload: p}
	}

	res, err := h.uc.BulkCreateSessions(c.UserContext(), usecase.BulkCreateSessionsInput{
		Kind:     c.Params("kind"),
		Sessions: items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(BulkCreateSessionsResponse{
		Created:    res.Created,
		Duplicates: res.Duplicates,
		IDs:        res.IDs,
	})
}

// ImportCollection godoc
// @Summary Import an exported collection
// @Description Accepts an object keyed by record id and keeps those ids
// @Tags Sessions
// @Accept json
// @Produce json
// @Param kind path string true "Session kind"
// @Param request body object true "Collection export"
// @Success 201 {object} BulkCreateSessionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions/{kind}/import [post]
func (h *SessionHandler) ImportCollection(c *fiber.Ctx) error {
	var coll domain.Collection
	if err := json.Unmarshal(c.Body(), &coll); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_json",
			Message: err.Error(),
		})
	}

	res, err := h.uc.ImportCollection(c.UserContext(), c.Params("kind"), coll)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(BulkCreateSessionsResponse{
		Created:    res.Created,
		Duplicates: res.Duplicates,
		IDs:        res.IDs,
	})
}

// ListSessions godoc
// @Summary List stored session records
// @Description Returns the collection keyed by record id in insertion order
// @Tags Sessions
// @Produce json
// @Param kind path string true "Session kind"
// @Success 200 {object} map[string]object
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions/{kind} [get]
func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	coll, err := h.uc.ListSessions(c.UserContext(), c.Params("kind"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(ListSessionsResponse(coll))
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnknownKind):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "unknown_kind",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidSession),
		errors.Is(err, usecase.ErrDuplicateID):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_session",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
