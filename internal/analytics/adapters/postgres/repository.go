package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"session-analytics-service/internal/analytics/core/ports"
	"session-analytics-service/internal/sessions/core/domain"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// SessionSource reads raw session collections from the session_records table.
type SessionSource struct {
	db DB
}

func NewSessionSource(db DB) *SessionSource {
	return &SessionSource{db: db}
}

var _ ports.SessionSourcePort = (*SessionSource)(nil)

const selectCollectionSQL = `
SELECT
    id,
    payload
FROM session_records
WHERE kind = $1
ORDER BY created_at, id`

// FetchCollection returns the records of kind in insertion order. A row
// whose payload is not valid JSON is kept as a nil entry so the normalizer
// excludes it; only query failures make the stream unavailable.
func (s *SessionSource) FetchCollection(ctx context.Context, kind domain.Kind) (domain.Collection, error) {
	rows, err := s.db.QueryContext(ctx, selectCollectionSQL, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query %s sessions: %w", kind, err)
	}
	defer rows.Close()

	coll := domain.Collection{}
	for rows.Next() {
		var id string
		var payload []byte

		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan %s session: %w", kind, err)
		}

		var v any
		if err := json.Unmarshal(payload, &v); err != nil {
			v = nil
		}
		coll = append(coll, domain.Entry{ID: id, Value: v})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s sessions: %w", kind, err)
	}

	return coll, nil
}
