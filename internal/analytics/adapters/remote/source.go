package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"session-analytics-service/internal/analytics/core/ports"
	"session-analytics-service/internal/sessions/core/domain"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status from session backend")
	ErrNotJSON          = errors.New("session backend response is not JSON")
)

// SessionSource fetches collections from a dashboard backend that serves
// them at <base>/api/<collection>, e.g. /api/sessionAvatar.
type SessionSource struct {
	baseURL string
	timeout time.Duration
}

func NewSessionSource(baseURL string, timeout time.Duration) *SessionSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SessionSource{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

var _ ports.SessionSourcePort = (*SessionSource)(nil)

func (s *SessionSource) URL(kind domain.Kind) string {
	return s.baseURL + "/api/" + kind.CollectionName()
}

func (s *SessionSource) FetchCollection(ctx context.Context, kind domain.Kind) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	agent := fiber.Get(s.URL(kind)).
		Timeout(timeout).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("fetch %s: %w", kind, errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %d", kind, ErrUnexpectedStatus, code)
	}

	// a null body is a missing collection, not an empty one
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, fmt.Errorf("fetch %s: %w: %w", kind, ErrNotJSON, domain.ErrNotObject)
	}

	var coll domain.Collection
	if err := json.Unmarshal(body, &coll); err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %v", kind, ErrNotJSON, err)
	}
	return coll, nil
}
