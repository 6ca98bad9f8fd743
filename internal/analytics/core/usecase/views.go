package usecase

import (
	"time"

	"session-analytics-service/internal/analytics/core/engine"
	"session-analytics-service/internal/sessions/core/domain"
)

// Availability tells the presentation layer whether a view's stream could
// be read. Values of an unavailable view are null and labels read "N/A".
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type DurationSummary struct {
	TotalDuration engine.Value     `json:"total_duration_seconds"`
	Duration      *engine.Duration `json:"duration"`
	DurationLabel string           `json:"duration_label"`
}

type EngagementView struct {
	Availability
	DurationSummary
	Participants      engine.Value  `json:"participants"`
	DurationBySegment engine.Series `json:"duration_by_segment"`
}

type AvatarView struct {
	Availability
	DurationSummary
	Sessions            engine.Value  `json:"sessions"`
	MeanActivity        engine.Value  `json:"mean_activity"`
	MeanActivityLabel   string        `json:"mean_activity_label"`
	AvatarValueByMonth  engine.Series `json:"avatar_value_by_month"`
	SessionValueByMonth engine.Series `json:"session_value_by_month"`
	SessionsByMonth     engine.Series `json:"sessions_by_month"`
}

type MeditationView struct {
	Availability
	DurationSummary
	Sessions          engine.Value  `json:"sessions"`
	MeanActivity      engine.Value  `json:"mean_activity"`
	MeanActivityLabel string        `json:"mean_activity_label"`
	ActivityByMonth   engine.Series `json:"activity_by_month"`
	SessionsByMonth   engine.Series `json:"sessions_by_month"`
}

type QuestionaryView struct {
	Availability
	DurationSummary
	Sessions          engine.Value  `json:"sessions"`
	Participants      engine.Value  `json:"participants"`
	StressByCategory  engine.Series `json:"stress_by_category"`
	FocusByCategory   engine.Series `json:"focus_by_category"`
	ControlByCategory engine.Series `json:"control_by_category"`
	SessionsByMonth   engine.Series `json:"sessions_by_month"`
}

type PerformanceView struct {
	Availability
	DurationSummary
	Sessions            engine.Value  `json:"sessions"`
	Participants        engine.Value  `json:"participants"`
	MeanScore           engine.Value  `json:"mean_score"`
	MeanScoreLabel      string        `json:"mean_score_label"`
	ScorePerParticipant engine.Value  `json:"score_per_participant"`
	ScoreByCategory     engine.Series `json:"score_by_category"`
	ScoreByMonth        engine.Series `json:"score_by_month"`
}

type OverviewView struct {
	engine.Combined
	DurationLabel string `json:"duration_label"`
}

type SignalView struct {
	Kind    domain.Kind   `json:"kind"`
	ID      string        `json:"id"`
	Samples engine.Series `json:"samples"`
}

func availability(s stream) Availability {
	return Availability{Available: s.available(), Reason: s.reason()}
}

func durationSummary(t *engine.Totals) DurationSummary {
	total := t.Sum(engine.MetricDuration)
	d := engine.HoursMinutes(total)
	return DurationSummary{
		TotalDuration: engine.Available(total),
		Duration:      &d,
		DurationLabel: d.String(),
	}
}

func unavailableDuration() DurationSummary {
	return DurationSummary{TotalDuration: engine.Unavailable(), DurationLabel: "N/A"}
}

func count(n int) engine.Value {
	return engine.Available(float64(n))
}

func (uc *DashboardUseCase) monthLabel(m time.Month) string {
	return uc.opts.Months.Label(m)
}

func (uc *DashboardUseCase) summary(s stream, t *engine.Totals) engine.StreamSummary {
	if !s.available() {
		return engine.UnavailableStream(s.kind, s.reason())
	}
	return engine.Summarize(s.batch, t)
}

// engagement: distinct avatar participants, total duration and duration by
// segment. Segment-less records land under the fallback label.
func (uc *DashboardUseCase) engagement(s stream) (EngagementView, engine.StreamSummary) {
	v := EngagementView{Availability: availability(s)}
	if !s.available() {
		v.DurationSummary = unavailableDuration()
		v.Participants = engine.Unavailable()
		return v, uc.summary(s, nil)
	}

	totals := engine.NewTotals(engine.MetricDuration)
	segments := engine.NewGrouping(engine.ByGroup(), engine.SumMetrics[string](engine.MetricDuration))
	engine.Scan(s.batch.Records, totals, segments)

	v.DurationSummary = durationSummary(totals)
	v.Participants = count(totals.Participants.Len())
	v.DurationBySegment = engine.SeriesOf(uc.opts.Order.Labels(segments.Buckets()),
		identity, engine.SumOf[string](engine.MetricDuration))

	return v, uc.summary(s, totals)
}

// avatar: monthly means of avatar_value and session_value. Mean activity
// divides the session_value total by the number of sessions, not by
// participants.
func (uc *DashboardUseCase) avatar(s stream) (AvatarView, engine.StreamSummary) {
	v := AvatarView{Availability: availability(s), MeanActivityLabel: "N/A"}
	if !s.available() {
		v.DurationSummary = unavailableDuration()
		v.Sessions = engine.Unavailable()
		v.MeanActivity = engine.Unavailable()
		return v, uc.summary(s, nil)
	}

	scale := uc.opts.Schemas[domain.KindAvatar].Scale
	totals := engine.NewTotals(engine.MetricDuration, engine.MetricSessionValue)
	months := engine.NewGrouping(engine.ByMonth(uc.opts.Location),
		engine.SumMetrics[time.Month](engine.MetricAvatarValue, engine.MetricSessionValue, engine.MetricDuration))
	engine.Scan(s.batch.Records, totals, months)

	ordered := uc.opts.Order.Months(months.Buckets(), uc.opts.Months)
	mean := engine.Percent(engine.GrandMean(totals, engine.MetricSessionValue, engine.PerSession), scale)

	v.DurationSummary = durationSummary(totals)
	v.Sessions = count(totals.Sessions)
	v.MeanActivity = mean
	v.MeanActivityLabel = engine.FormatPercent(mean, engine.ScalePercent)
	v.AvatarValueByMonth = engine.SeriesOf(ordered, uc.monthLabel, engine.MeanOf[time.Month](engine.MetricAvatarValue))
	v.SessionValueByMonth = engine.SeriesOf(ordered, uc.monthLabel, engine.MeanOf[time.Month](engine.MetricSessionValue))
	v.SessionsByMonth = engine.SeriesOf(ordered, uc.monthLabel, engine.CountOf[time.Month]())

	sum := uc.summary(s, totals)
	sum.Scalars["mean_activity"] = mean
	sum.Series["session_value_by_month"] = v.SessionValueByMonth
	return v, sum
}

// meditation: monthly mean activity. Mean activity divides by the number of
// sessions.
func (uc *DashboardUseCase) meditation(s stream) (MeditationView, engine.StreamSummary) {
	v := MeditationView{Availability: availability(s), MeanActivityLabel: "N/A"}
	if !s.available() {
		v.DurationSummary = unavailableDuration()
		v.Sessions = engine.Unavailable()
		v.MeanActivity = engine.Unavailable()
		return v, uc.summary(s, nil)
	}

	scale := uc.opts.Schemas[domain.KindMeditation].Scale
	totals := engine.NewTotals(engine.MetricDuration, engine.MetricSessionValue)
	months := engine.NewGrouping(engine.ByMonth(uc.opts.Location),
		engine.SumMetrics[time.Month](engine.MetricSessionValue))
	engine.Scan(s.batch.Records, totals, months)

	ordered := uc.opts.Order.Months(months.Buckets(), uc.opts.Months)
	mean := engine.Percent(engine.GrandMean(totals, engine.MetricSessionValue, engine.PerSession), scale)

	v.DurationSummary = durationSummary(totals)
	v.Sessions = count(totals.Sessions)
	v.MeanActivity = mean
	v.MeanActivityLabel = engine.FormatPercent(mean, engine.ScalePercent)
	v.ActivityByMonth = engine.SeriesOf(ordered, uc.monthLabel, engine.MeanOf[time.Month](engine.MetricSessionValue))
	v.SessionsByMonth = engine.SeriesOf(ordered, uc.monthLabel, engine.CountOf[time.Month]())

	sum := uc.summary(s, totals)
	sum.Scalars["mean_activity"] = mean
	sum.Series["activity_by_month"] = v.ActivityByMonth
	return v, sum
}

// questionary: per-category means of the three answers.
func (uc *DashboardUseCase) questionary(s stream) (QuestionaryView, engine.StreamSummary) {
	v := QuestionaryView{Availability: availability(s)}
	if !s.available() {
		v.DurationSummary = unavailableDuration()
		v.Sessions = engine.Unavailable()
		v.Participants = engine.Unavailable()
		return v, uc.summary(s, nil)
	}

	totals := engine.NewTotals(engine.MetricDuration)
	categories := engine.NewGrouping(engine.ByGroup(),
		engine.SumMetrics[string](engine.MetricStress, engine.MetricFocus, engine.MetricControl))
	months := engine.NewGrouping(engine.ByMonth(uc.opts.Location), nil)
	engine.Scan(s.batch.Records, totals, categories, months)

	ordered := uc.opts.Order.Labels(categories.Buckets())

	v.DurationSummary = durationSummary(totals)
	v.Sessions = count(totals.Sessions)
	v.Participants = count(totals.Participants.Len())
	v.StressByCategory = engine.SeriesOf(ordered, identity, engine.MeanOf[string](engine.MetricStress))
	v.FocusByCategory = engine.SeriesOf(ordered, identity, engine.MeanOf[string](engine.MetricFocus))
	v.ControlByCategory = engine.SeriesOf(ordered, identity, engine.MeanOf[string](engine.MetricControl))
	v.SessionsByMonth = engine.SeriesOf(uc.opts.Order.Months(months.Buckets(), uc.opts.Months),
		uc.monthLabel, engine.CountOf[time.Month]())

	sum := uc.summary(s, totals)
	sum.Series["sessions_by_month"] = v.SessionsByMonth
	return v, sum
}

// performance: scores as percentages in the schema's scale. MeanScore
// divides by sessions; ScorePerParticipant divides the same total by
// distinct participants.
func (uc *DashboardUseCase) performance(s stream) (PerformanceView, engine.StreamSummary) {
	v := PerformanceView{Availability: availability(s), MeanScoreLabel: "N/A"}
	if !s.available() {
		v.DurationSummary = unavailableDuration()
		v.Sessions = engine.Unavailable()
		v.Participants = engine.Unavailable()
		v.MeanScore = engine.Unavailable()
		v.ScorePerParticipant = engine.Unavailable()
		return v, uc.summary(s, nil)
	}

	scale := uc.opts.Schemas[domain.KindPerformance].Scale
	totals := engine.NewTotals(engine.MetricDuration, engine.MetricScore)
	categories := engine.NewGrouping(engine.ByGroup(), engine.SumMetrics[string](engine.MetricScore))
	months := engine.NewGrouping(engine.ByMonth(uc.opts.Location), engine.SumMetrics[time.Month](engine.MetricScore))
	engine.Scan(s.batch.Records, totals, categories, months)

	percentOf := func(metric string) func(*engine.Bucket[string]) engine.Value {
		return func(b *engine.Bucket[string]) engine.Value {
			return engine.Percent(engine.Mean(b, metric), scale)
		}
	}
	monthPercent := func(b *engine.Bucket[time.Month]) engine.Value {
		return engine.Percent(engine.Mean(b, engine.MetricScore), scale)
	}

	mean := engine.Percent(engine.GrandMean(totals, engine.MetricScore, engine.PerSession), scale)

	v.DurationSummary = durationSummary(totals)
	v.Sessions = count(totals.Sessions)
	v.Participants = count(totals.Participants.Len())
	v.MeanScore = mean
	v.MeanScoreLabel = engine.FormatPercent(mean, engine.ScalePercent)
	v.ScorePerParticipant = engine.Percent(engine.GrandMean(totals, engine.MetricScore, engine.PerParticipant), scale)
	v.ScoreByCategory = engine.SeriesOf(uc.opts.Order.Labels(categories.Buckets()), identity, percentOf(engine.MetricScore))
	v.ScoreByMonth = engine.SeriesOf(uc.opts.Order.Months(months.Buckets(), uc.opts.Months), uc.monthLabel, monthPercent)

	sum := uc.summary(s, totals)
	sum.Scalars["mean_score"] = mean
	sum.Series["score_by_category"] = v.ScoreByCategory
	return v, sum
}

func identity(s string) string { return s }
