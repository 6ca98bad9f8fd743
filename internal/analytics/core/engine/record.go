package engine

import (
	"time"

	"session-analytics-service/internal/sessions/core/domain"
)

// Common holds the fields every session kind shares. UserID is empty when
// the record names no user; HasTimestamp is false when the timestamp was
// missing or unparsable.
type Common struct {
	ID              string
	UserID          string
	Timestamp       time.Time
	HasTimestamp    bool
	DurationSeconds float64
	GroupKey        string
	RawSeries       []float64
}

// SessionRecord is one normalized record. The concrete type tells which
// metrics the record carries; Metric returns 0 for a metric its kind lacks.
type SessionRecord interface {
	Kind() domain.Kind
	Base() Common
	Metric(name string) float64
}

type AvatarSession struct {
	Common
	SessionValue float64
	AvatarValue  float64
}

func (s AvatarSession) Kind() domain.Kind { return domain.KindAvatar }
func (s AvatarSession) Base() Common      { return s.Common }

func (s AvatarSession) Metric(name string) float64 {
	switch name {
	case MetricDuration:
		return s.DurationSeconds
	case MetricSessionValue:
		return s.SessionValue
	case MetricAvatarValue:
		return s.AvatarValue
	}
	return 0
}

type MeditationSession struct {
	Common
	SessionValue float64
}

func (s MeditationSession) Kind() domain.Kind { return domain.KindMeditation }
func (s MeditationSession) Base() Common      { return s.Common }

func (s MeditationSession) Metric(name string) float64 {
	switch name {
	case MetricDuration:
		return s.DurationSeconds
	case MetricSessionValue:
		return s.SessionValue
	}
	return 0
}

// Answers is the questionnaire response vector.
type Answers struct {
	Stress  float64
	Focus   float64
	Control float64
}

type QuestionarySession struct {
	Common
	Answers Answers
}

func (s QuestionarySession) Kind() domain.Kind { return domain.KindQuestionary }
func (s QuestionarySession) Base() Common      { return s.Common }

func (s QuestionarySession) Metric(name string) float64 {
	switch name {
	case MetricDuration:
		return s.DurationSeconds
	case MetricStress:
		return s.Answers.Stress
	case MetricFocus:
		return s.Answers.Focus
	case MetricControl:
		return s.Answers.Control
	}
	return 0
}

type PerformanceSession struct {
	Common
	Score float64
}

func (s PerformanceSession) Kind() domain.Kind { return domain.KindPerformance }
func (s PerformanceSession) Base() Common      { return s.Common }

func (s PerformanceSession) Metric(name string) float64 {
	switch name {
	case MetricDuration:
		return s.DurationSeconds
	case MetricScore:
		return s.Score
	}
	return 0
}
