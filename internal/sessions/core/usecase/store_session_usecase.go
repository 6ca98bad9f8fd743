package usecase

import (
	"context"
	"errors"
	"fmt"

	"session-analytics-service/internal/sessions/core/domain"
	"session-analytics-service/internal/sessions/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrUnknownKind    = errors.New("unknown session kind")
	ErrDuplicateID    = errors.New("duplicate session id in batch")
)

type StoreSessionUseCase struct {
	repo        ports.SessionRepositoryPort
	invalidator ports.CollectionInvalidator
	recorder    ports.IngestRecorder
	logger      zerolog.Logger
}

type Option func(*StoreSessionUseCase)

func WithInvalidator(inv ports.CollectionInvalidator) Option {
	return func(uc *StoreSessionUseCase) { uc.invalidator = inv }
}

func WithRecorder(r ports.IngestRecorder) Option {
	return func(uc *StoreSessionUseCase) { uc.recorder = r }
}

func WithLogger(l zerolog.Logger) Option {
	return func(uc *StoreSessionUseCase) { uc.logger = l }
}

func NewStoreSessionUseCase(repo ports.SessionRepositoryPort, opts ...Option) *StoreSessionUseCase {
	uc := &StoreSessionUseCase{repo: repo, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// StoreSessionInput is one raw record as the dashboard backend keeps it.
// ID falls back to the payload's "id" field, then to a fresh UUID.
type StoreSessionInput struct {
	Kind    string
	ID      string
	Payload map[string]any
}

type StoreSessionResult struct {
	ID      string
	Created bool
}

func (uc *StoreSessionUseCase) Execute(ctx context.Context, in StoreSessionInput) (StoreSessionResult, error) {
	s, err := buildSession(in)
	if err != nil {
		return StoreSessionResult{}, err
	}

	created, err := uc.repo.InsertSession(ctx, s)
	if err != nil {
		return StoreSessionResult{}, err
	}

	if created {
		uc.invalidate(ctx, s.Kind)
		uc.record(s.Kind, 1, 0)
	} else {
		uc.record(s.Kind, 0, 1)
	}

	return StoreSessionResult{ID: s.ID, Created: created}, nil
}

type BulkCreateSessionsInput struct {
	Kind     string
	Sessions []StoreSessionInput
}

type BulkCreateSessionsResult struct {
	Created    int
	Duplicates int
	IDs        []string
}

// BulkCreateSessions validates the whole batch before storing any of it.
func (uc *StoreSessionUseCase) BulkCreateSessions(ctx context.Context, in BulkCreateSessionsInput) (BulkCreateSessionsResult, error) {
	var res BulkCreateSessionsResult

	kind, ok := domain.ParseKind(in.Kind)
	if !ok {
		return res, ErrUnknownKind
	}
	if len(in.Sessions) == 0 {
		return res, fmt.Errorf("%w: empty batch", ErrInvalidSession)
	}

	batch := make([]*domain.Session, 0, len(in.Sessions))
	seen := make(map[string]struct{}, len(in.Sessions))
	for i, item := range in.Sessions {
		item.Kind = string(kind)
		s, err := buildSession(item)
		if err != nil {
			return res, fmt.Errorf("session %d: %w", i, err)
		}
		if _, dup := seen[s.ID]; dup {
			return res, fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = struct{}{}
		batch = append(batch, s)
	}

	created, err := uc.repo.InsertSessions(ctx, batch)
	if err != nil {
		return res, err
	}

	res.Created = created
	res.Duplicates = len(batch) - created
	res.IDs = make([]string, len(batch))
	for i, s := range batch {
		res.IDs[i] = s.ID
	}

	if created > 0 {
		uc.invalidate(ctx, kind)
	}
	uc.record(kind, res.Created, res.Duplicates)

	return res, nil
}

// ImportCollection stores an exported collection, keeping its record ids.
func (uc *StoreSessionUseCase) ImportCollection(ctx context.Context, kind string, coll domain.Collection) (BulkCreateSessionsResult, error) {
	items := make([]StoreSessionInput, 0, len(coll))
	for _, e := range coll {
		payload, ok := e.Value.(map[string]any)
		if !ok {
			return BulkCreateSessionsResult{}, fmt.Errorf("%w: record %q is not an object", ErrInvalidSession, e.ID)
		}
		items = append(items, StoreSessionInput{ID: e.ID, Payload: payload})
	}
	return uc.BulkCreateSessions(ctx, BulkCreateSessionsInput{Kind: kind, Sessions: items})
}

// ListSessions returns the stored records of kind as an ordered collection.
func (uc *StoreSessionUseCase) ListSessions(ctx context.Context, kind string) (domain.Collection, error) {
	k, ok := domain.ParseKind(kind)
	if !ok {
		return nil, ErrUnknownKind
	}

	sessions, err := uc.repo.ListSessions(ctx, k)
	if err != nil {
		return nil, err
	}

	coll := make(domain.Collection, 0, len(sessions))
	for _, s := range sessions {
		coll = append(coll, domain.Entry{ID: s.ID, Value: s.Payload})
	}
	return coll, nil
}

func (uc *StoreSessionUseCase) invalidate(ctx context.Context, kind domain.Kind) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.Invalidate(ctx, kind); err != nil {
		uc.logger.Warn().Err(err).Str("kind", string(kind)).Msg("collection invalidation failed")
	}
}

func (uc *StoreSessionUseCase) record(kind domain.Kind, created, duplicates int) {
	if uc.recorder != nil {
		uc.recorder.SessionsStored(kind, created, duplicates)
	}
}

func buildSession(in StoreSessionInput) (*domain.Session, error) {
	kind, ok := domain.ParseKind(in.Kind)
	if !ok {
		return nil, ErrUnknownKind
	}
	if len(in.Payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidSession)
	}

	id := in.ID
	if id == "" {
		if raw, present := in.Payload["id"]; present {
			s, err := cast.ToStringE(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: id: %v", ErrInvalidSession, err)
			}
			id = s
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	return &domain.Session{ID: id, Kind: kind, Payload: in.Payload}, nil
}
