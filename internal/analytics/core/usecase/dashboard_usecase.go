package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"session-analytics-service/internal/analytics/core/engine"
	"session-analytics-service/internal/analytics/core/ports"
	"session-analytics-service/internal/sessions/core/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownKind       = errors.New("unknown session kind")
	ErrRecordNotFound    = errors.New("session record not found")
	ErrStreamUnavailable = errors.New("session stream unavailable")
)

// StreamUnavailableError reports a stream that could not be fetched.
type StreamUnavailableError struct {
	Kind domain.Kind
	Err  error
}

func (e *StreamUnavailableError) Error() string {
	return fmt.Sprintf("%s stream unavailable: %v", e.Kind, e.Err)
}

func (e *StreamUnavailableError) Unwrap() []error {
	return []error{ErrStreamUnavailable, e.Err}
}

type Options struct {
	Schemas  engine.Schemas
	Location *time.Location
	Months   engine.MonthLabels
	Order    engine.Order
	Logger   zerolog.Logger
	Metrics  ports.InstrumentationPort
}

// DefaultOptions uses the built-in schemas, UTC, Portuguese month labels and
// first-seen bucket order.
func DefaultOptions() Options {
	return Options{
		Schemas:  engine.DefaultSchemas(),
		Location: time.UTC,
		Months:   engine.PortugueseMonths,
		Order:    engine.OrderFirstSeen,
		Logger:   zerolog.Nop(),
	}
}

type DashboardUseCase struct {
	source ports.SessionSourcePort
	opts   Options
}

func NewDashboardUseCase(source ports.SessionSourcePort, opts Options) *DashboardUseCase {
	if opts.Schemas == nil {
		opts.Schemas = engine.DefaultSchemas()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Months == (engine.MonthLabels{}) {
		opts.Months = engine.PortugueseMonths
	}
	if opts.Order == "" {
		opts.Order = engine.OrderFirstSeen
	}
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	return &DashboardUseCase{source: source, opts: opts}
}

// stream is one fetched and normalized collection, or the reason it is
// missing.
type stream struct {
	kind  domain.Kind
	batch engine.Batch
	err   error
}

func (s stream) available() bool { return s.err == nil }

func (s stream) reason() string {
	if s.err == nil {
		return ""
	}
	return s.err.Error()
}

// load fetches kinds concurrently. A failing stream never cancels the
// others; its error is kept on the result.
func (uc *DashboardUseCase) load(ctx context.Context, kinds ...domain.Kind) []stream {
	results := make([]stream, len(kinds))

	var g errgroup.Group
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			results[i] = uc.fetch(ctx, kind)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (uc *DashboardUseCase) fetch(ctx context.Context, kind domain.Kind) stream {
	log := uc.opts.Logger.With().Str("kind", string(kind)).Logger()

	coll, err := uc.source.FetchCollection(ctx, kind)
	if err != nil {
		log.Warn().Err(err).Msg("session stream unavailable")
		uc.opts.Metrics.StreamFailed(kind)
		return stream{kind: kind, err: &StreamUnavailableError{Kind: kind, Err: err}}
	}

	batch := engine.NormalizeCollection(uc.opts.Schemas[kind], coll)
	uc.opts.Metrics.ObserveBatch(batch)
	if len(batch.Excluded) > 0 || batch.Defaulted > 0 {
		log.Debug().
			Int("records", len(batch.Records)).
			Int("defaulted", batch.Defaulted).
			Strs("excluded", batch.Excluded).
			Msg("malformed session records absorbed")
	}

	return stream{kind: kind, batch: batch}
}

func (uc *DashboardUseCase) Engagement(ctx context.Context) (*EngagementView, error) {
	s := uc.load(ctx, domain.KindAvatar)[0]
	v, _ := uc.engagement(s)
	return &v, nil
}

func (uc *DashboardUseCase) Avatar(ctx context.Context) (*AvatarView, error) {
	s := uc.load(ctx, domain.KindAvatar)[0]
	v, _ := uc.avatar(s)
	return &v, nil
}

func (uc *DashboardUseCase) Meditation(ctx context.Context) (*MeditationView, error) {
	s := uc.load(ctx, domain.KindMeditation)[0]
	v, _ := uc.meditation(s)
	return &v, nil
}

func (uc *DashboardUseCase) Questionary(ctx context.Context) (*QuestionaryView, error) {
	s := uc.load(ctx, domain.KindQuestionary)[0]
	v, _ := uc.questionary(s)
	return &v, nil
}

func (uc *DashboardUseCase) Performance(ctx context.Context) (*PerformanceView, error) {
	s := uc.load(ctx, domain.KindPerformance)[0]
	v, _ := uc.performance(s)
	return &v, nil
}

// Overview fetches every stream and assembles the combined summary.
func (uc *DashboardUseCase) Overview(ctx context.Context) (*OverviewView, error) {
	streams := uc.load(ctx, domain.Kinds...)

	summaries := make([]engine.StreamSummary, 0, len(streams))
	for _, s := range streams {
		var sum engine.StreamSummary
		switch s.kind {
		case domain.KindAvatar:
			_, sum = uc.avatar(s)
		case domain.KindMeditation:
			_, sum = uc.meditation(s)
		case domain.KindQuestionary:
			_, sum = uc.questionary(s)
		case domain.KindPerformance:
			_, sum = uc.performance(s)
		}
		summaries = append(summaries, sum)
	}

	combined := engine.Assemble(summaries...)
	v := OverviewView{Combined: combined, DurationLabel: "N/A"}
	if combined.Duration != nil {
		v.DurationLabel = combined.Duration.String()
	}
	return &v, nil
}

// Signal returns the raw sample series of one record.
func (uc *DashboardUseCase) Signal(ctx context.Context, kind domain.Kind, id string) (*SignalView, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	s := uc.load(ctx, kind)[0]
	if !s.available() {
		return nil, s.err
	}

	for _, rec := range s.batch.Records {
		if rec.Base().ID == id {
			return &SignalView{Kind: kind, ID: id, Samples: engine.SignalSeries(rec)}, nil
		}
	}
	return nil, ErrRecordNotFound
}

type nopMetrics struct{}

func (nopMetrics) ObserveBatch(engine.Batch) {}
func (nopMetrics) StreamFailed(domain.Kind) {}
