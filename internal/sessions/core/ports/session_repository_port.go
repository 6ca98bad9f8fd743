package ports

import (
	"context"

	"session-analytics-service/internal/sessions/core/domain"
)

type SessionRepositoryPort interface {
	// InsertSession:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> id already stored
	//   created = false, err != nil -> DB error
	InsertSession(ctx context.Context, s *domain.Session) (created bool, err error)

	// InsertSessions stores a batch in one round trip and reports how many
	// rows were new.
	InsertSessions(ctx context.Context, ss []*domain.Session) (created int, err error)

	// ListSessions returns the sessions of kind in insertion order.
	ListSessions(ctx context.Context, kind domain.Kind) ([]domain.Session, error)
}

// CollectionInvalidator drops derived copies of a kind's collection once
// new records were stored.
type CollectionInvalidator interface {
	Invalidate(ctx context.Context, kinds ...domain.Kind) error
}

type IngestRecorder interface {
	SessionsStored(kind domain.Kind, created, duplicates int)
}
