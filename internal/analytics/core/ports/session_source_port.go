package ports

import (
	"context"

	"session-analytics-service/internal/analytics/core/engine"
	"session-analytics-service/internal/sessions/core/domain"
)

// SessionSourcePort fetches the raw record collection of one session kind.
// An error means the whole stream is unavailable.
type SessionSourcePort interface {
	FetchCollection(ctx context.Context, kind domain.Kind) (domain.Collection, error)
}

type InstrumentationPort interface {
	ObserveBatch(b engine.Batch)
	StreamFailed(kind domain.Kind)
}
