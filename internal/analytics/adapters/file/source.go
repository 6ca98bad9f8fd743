package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"session-analytics-service/internal/analytics/core/ports"
	"session-analytics-service/internal/sessions/core/domain"
)

// SessionSource reads collection exports from a directory. Each kind lives
// in <dir>/<kind>.json as an object keyed by record id; an export named
// after the backend collection (sessionAvatar.json) is accepted too.
type SessionSource struct {
	dir string
}

func NewSessionSource(dir string) *SessionSource {
	return &SessionSource{dir: dir}
}

var _ ports.SessionSourcePort = (*SessionSource)(nil)

func (s *SessionSource) Path(kind domain.Kind) string {
	p := filepath.Join(s.dir, string(kind)+".json")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	alt := filepath.Join(s.dir, kind.CollectionName()+".json")
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return p
}

func (s *SessionSource) FetchCollection(ctx context.Context, kind domain.Kind) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(kind))
	if err != nil {
		return nil, fmt.Errorf("read %s export: %w", kind, err)
	}

	var coll domain.Collection
	if err := json.Unmarshal(data, &coll); err != nil {
		return nil, fmt.Errorf("decode %s export: %w", kind, err)
	}
	return coll, nil
}
