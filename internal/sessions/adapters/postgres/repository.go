package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"session-analytics-service/internal/sessions/core/domain"
	"session-analytics-service/internal/sessions/core/ports"

	"github.com/lib/pq"
)

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ ports.SessionRepositoryPort = (*SessionRepository)(nil)

const insertSessionSQL = `
INSERT INTO session_records (
    id,
    kind,
    payload
) VALUES (
    $1, $2, $3
)
ON CONFLICT (kind, id) DO NOTHING;
`

// The batch is sent as three parallel arrays and expanded server side.
const insertSessionsSQL = `
INSERT INTO session_records (id, kind, payload)
SELECT id, kind, payload::jsonb
FROM unnest($1::text[], $2::text[], $3::text[]) AS t(id, kind, payload)
ON CONFLICT (kind, id) DO NOTHING;
`

const listSessionsSQL = `
SELECT
    id,
    payload,
    created_at
FROM session_records
WHERE kind = $1
ORDER BY created_at, id`

func (r *SessionRepository) InsertSession(ctx context.Context, s *domain.Session) (bool, error) {
	payload, err := json.Marshal(s.Payload)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, insertSessionSQL, s.ID, string(s.Kind), payload)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 0 -> id already stored for this kind (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func (r *SessionRepository) InsertSessions(ctx context.Context, ss []*domain.Session) (int, error) {
	if len(ss) == 0 {
		return 0, nil
	}

	ids := make([]string, len(ss))
	kinds := make([]string, len(ss))
	payloads := make([]string, len(ss))
	for i, s := range ss {
		payload, err := json.Marshal(s.Payload)
		if err != nil {
			return 0, fmt.Errorf("encode session %s: %w", s.ID, err)
		}
		ids[i] = s.ID
		kinds[i] = string(s.Kind)
		payloads[i] = string(payload)
	}

	res, err := r.db.ExecContext(ctx, insertSessionsSQL,
		pq.Array(ids),
		pq.Array(kinds),
		pq.Array(payloads),
	)
	if err != nil {
		return 0, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (r *SessionRepository) ListSessions(ctx context.Context, kind domain.Kind) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, listSessionsSQL, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		var (
			id        string
			payload   []byte
			createdAt time.Time
		)
		if err := rows.Scan(&id, &payload, &createdAt); err != nil {
			return nil, err
		}

		var m map[string]any
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", id, err)
		}

		out = append(out, domain.Session{
			ID:        id,
			Kind:      kind,
			Payload:   m,
			CreatedAt: createdAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
