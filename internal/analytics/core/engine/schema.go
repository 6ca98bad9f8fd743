package engine

import (
	"fmt"

	"session-analytics-service/internal/sessions/core/domain"
)

// Metric names accumulated by the bucketing engine.
const (
	MetricDuration     = "duration"
	MetricSessionValue = "session_value"
	MetricAvatarValue  = "avatar_value"
	MetricScore        = "score"
	MetricStress       = "stress"
	MetricFocus        = "focus"
	MetricControl      = "control"
)

// FallbackLabel is the group key of records that carry no segment or category.
const FallbackLabel = "Numeração"

// Scale tells the reducer how a value field is expressed.
type Scale string

const (
	ScaleRatio   Scale = "ratio"   // [0,1], multiplied by 100 for display
	ScalePercent Scale = "percent" // already 0-100
)

func (s Scale) Valid() bool {
	return s == ScaleRatio || s == ScalePercent
}

// Schema names the raw fields of one session kind.
type Schema struct {
	Kind           domain.Kind       `yaml:"kind"`
	UserField      string            `yaml:"user_field"`
	TimestampField string            `yaml:"timestamp_field"`
	DurationField  string            `yaml:"duration_field"`
	GroupField     string            `yaml:"group_field,omitempty"`
	ValueFields    map[string]string `yaml:"value_fields,omitempty"`
	AnswersField   string            `yaml:"answers_field,omitempty"`
	SeriesField    string            `yaml:"series_field,omitempty"`
	Scale          Scale             `yaml:"scale"`
}

func (s Schema) Validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("schema: unknown kind %q", s.Kind)
	}
	if s.UserField == "" || s.TimestampField == "" || s.DurationField == "" {
		return fmt.Errorf("schema %s: user, timestamp and duration fields are required", s.Kind)
	}
	if !s.Scale.Valid() {
		return fmt.Errorf("schema %s: scale must be %q or %q", s.Kind, ScaleRatio, ScalePercent)
	}
	if s.Kind == domain.KindQuestionary && s.AnswersField == "" {
		return fmt.Errorf("schema %s: answers field is required", s.Kind)
	}
	for _, metric := range requiredValues[s.Kind] {
		if s.ValueFields[metric] == "" {
			return fmt.Errorf("schema %s: value field %q is required", s.Kind, metric)
		}
	}
	return nil
}

var requiredValues = map[domain.Kind][]string{
	domain.KindAvatar:      {MetricSessionValue, MetricAvatarValue},
	domain.KindMeditation:  {MetricSessionValue},
	domain.KindPerformance: {MetricScore},
}

type Schemas map[domain.Kind]Schema

// DefaultSchemas returns the field layout the dashboard backend writes.
func DefaultSchemas() Schemas {
	return Schemas{
		domain.KindAvatar: {
			Kind:           domain.KindAvatar,
			UserField:      "user_id",
			TimestampField: "updated_at",
			DurationField:  "session_duration",
			GroupField:     "segment",
			ValueFields: map[string]string{
				MetricSessionValue: "session_value",
				MetricAvatarValue:  "avatar_value",
			},
			SeriesField: "signal",
			Scale:       ScalePercent,
		},
		domain.KindMeditation: {
			Kind:           domain.KindMeditation,
			UserField:      "user_id",
			TimestampField: "updated_at",
			DurationField:  "session_duration",
			GroupField:     "segment",
			ValueFields: map[string]string{
				MetricSessionValue: "session_value",
			},
			SeriesField: "signal",
			Scale:       ScalePercent,
		},
		domain.KindQuestionary: {
			Kind:           domain.KindQuestionary,
			UserField:      "user_id",
			TimestampField: "updated_at",
			DurationField:  "session_duration",
			GroupField:     "category",
			AnswersField:   "answers",
			Scale:          ScalePercent,
		},
		domain.KindPerformance: {
			Kind:           domain.KindPerformance,
			UserField:      "user_id",
			TimestampField: "updated_at",
			DurationField:  "session_duration",
			GroupField:     "category",
			ValueFields: map[string]string{
				MetricScore: "score",
			},
			Scale: ScaleRatio,
		},
	}
}

// Merge returns a copy of s with every schema of other replacing its own.
func (s Schemas) Merge(other Schemas) Schemas {
	out := make(Schemas, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		v.Kind = k
		out[k] = v
	}
	return out
}

func (s Schemas) Validate() error {
	for _, kind := range domain.Kinds {
		schema, ok := s[kind]
		if !ok {
			return fmt.Errorf("schema for %s is missing", kind)
		}
		if err := schema.Validate(); err != nil {
			return err
		}
	}
	return nil
}
