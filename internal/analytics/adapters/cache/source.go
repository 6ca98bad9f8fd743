package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"session-analytics-service/internal/analytics/core/ports"
	"session-analytics-service/internal/sessions/core/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Recorder counts cache lookups.
type Recorder interface {
	CacheHit(kind domain.Kind)
	CacheMiss(kind domain.Kind)
}

type nopRecorder struct{}

func (nopRecorder) CacheHit(domain.Kind)  {}
func (nopRecorder) CacheMiss(domain.Kind) {}

// SessionSource keeps fetched collections in Redis for ttl. Redis failures
// never fail a fetch; the wrapped source is asked instead.
type SessionSource struct {
	next     ports.SessionSourcePort
	redis    *redis.Client
	ttl      time.Duration
	recorder Recorder
	logger   zerolog.Logger
}

type Option func(*SessionSource)

func WithRecorder(r Recorder) Option {
	return func(s *SessionSource) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *SessionSource) { s.logger = l }
}

func NewSessionSource(next ports.SessionSourcePort, client *redis.Client, ttl time.Duration, opts ...Option) *SessionSource {
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	s := &SessionSource{
		next:     next,
		redis:    client,
		ttl:      ttl,
		recorder: nopRecorder{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SessionSourcePort = (*SessionSource)(nil)

func Key(kind domain.Kind) string {
	return "sessions:" + string(kind)
}

func (s *SessionSource) FetchCollection(ctx context.Context, kind domain.Kind) (domain.Collection, error) {
	key := Key(kind)

	data, err := s.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var coll domain.Collection
		if jerr := json.Unmarshal(data, &coll); jerr == nil {
			s.recorder.CacheHit(kind)
			return coll, nil
		}
		s.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case errors.Is(err, redis.Nil):
	default:
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	s.recorder.CacheMiss(kind)

	coll, err := s.next.FetchCollection(ctx, kind)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(coll)
	if err != nil {
		return coll, nil
	}
	if err := s.redis.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return coll, nil
}

// Invalidate drops the cached collection of kind, e.g. after an ingest.
func (s *SessionSource) Invalidate(ctx context.Context, kinds ...domain.Kind) error {
	if len(kinds) == 0 {
		return nil
	}
	keys := make([]string, len(kinds))
	for i, k := range kinds {
		keys[i] = Key(k)
	}
	return s.redis.Del(ctx, keys...).Err()
}
