package engine

import (
	"math"
	"strings"
	"time"

	"session-analytics-service/internal/sessions/core/domain"

	"github.com/spf13/cast"
)

type Outcome int

const (
	OutcomeClean     Outcome = iota
	OutcomeDefaulted         // at least one field was substituted by its default
	OutcomeExcluded          // not an object; the record does not exist for the engine
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeDefaulted:
		return "defaulted"
	case OutcomeExcluded:
		return "excluded"
	}
	return "unknown"
}

// Batch is a normalized collection.
type Batch struct {
	Kind      domain.Kind
	Records   []SessionRecord
	Defaulted int
	Excluded  []string
}

// NormalizeCollection normalizes every entry of c in order. It never fails:
// malformed entries are defaulted or excluded and counted.
func NormalizeCollection(schema Schema, c domain.Collection) Batch {
	b := Batch{Kind: schema.Kind, Records: make([]SessionRecord, 0, len(c))}
	for _, e := range c {
		rec, outcome := Normalize(schema, e)
		switch outcome {
		case OutcomeExcluded:
			b.Excluded = append(b.Excluded, e.ID)
			continue
		case OutcomeDefaulted:
			b.Defaulted++
		}
		b.Records = append(b.Records, rec)
	}
	return b
}

// Normalize turns one raw entry into a typed record.
func Normalize(schema Schema, e domain.Entry) (SessionRecord, Outcome) {
	raw, ok := e.Value.(map[string]any)
	if !ok || raw == nil {
		return nil, OutcomeExcluded
	}

	n := normalizer{raw: raw}
	common := Common{
		ID:              e.ID,
		UserID:          n.id(schema.UserField),
		DurationSeconds: n.duration(schema.DurationField),
		GroupKey:        n.group(schema.GroupField),
		RawSeries:       n.series(schema.SeriesField),
	}
	common.Timestamp, common.HasTimestamp = n.timestamp(schema.TimestampField)

	var rec SessionRecord
	switch schema.Kind {
	case domain.KindAvatar:
		rec = AvatarSession{
			Common:       common,
			SessionValue: n.value(schema, MetricSessionValue),
			AvatarValue:  n.value(schema, MetricAvatarValue),
		}
	case domain.KindMeditation:
		rec = MeditationSession{
			Common:       common,
			SessionValue: n.value(schema, MetricSessionValue),
		}
	case domain.KindQuestionary:
		rec = QuestionarySession{
			Common:  common,
			Answers: n.answers(schema.AnswersField),
		}
	case domain.KindPerformance:
		rec = PerformanceSession{
			Common: common,
			Score:  n.value(schema, MetricScore),
		}
	default:
		return nil, OutcomeExcluded
	}

	if n.defaulted {
		return rec, OutcomeDefaulted
	}
	return rec, OutcomeClean
}

type normalizer struct {
	raw       map[string]any
	defaulted bool
}

func (n *normalizer) number(field string) float64 {
	f, ok := toNumber(n.raw[field])
	if !ok {
		n.defaulted = true
		return 0
	}
	return f
}

func (n *normalizer) duration(field string) float64 {
	d := n.number(field)
	if d < 0 {
		n.defaulted = true
		return 0
	}
	return d
}

func (n *normalizer) value(schema Schema, metric string) float64 {
	field, ok := schema.ValueFields[metric]
	if !ok {
		return 0
	}
	return n.number(field)
}

// id is not a defaulted field: a record without user still counts for
// durations, it is only left out of participant sets.
func (n *normalizer) id(field string) string {
	switch v := n.raw[field].(type) {
	case nil, bool, map[string]any, []any:
		return ""
	case string:
		return v
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return ""
		}
		return s
	}
}

func (n *normalizer) group(field string) string {
	if field == "" {
		return FallbackLabel
	}
	s, ok := n.raw[field].(string)
	if !ok || s == "" {
		n.defaulted = true
		return FallbackLabel
	}
	return s
}

func (n *normalizer) timestamp(field string) (time.Time, bool) {
	v, present := n.raw[field]
	if !present || v == nil {
		return time.Time{}, false
	}
	t, ok := toTime(v)
	if !ok {
		n.defaulted = true
	}
	return t, ok
}

func (n *normalizer) series(field string) []float64 {
	if field == "" {
		return nil
	}
	items, ok := n.raw[field].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		f, ok := toNumber(item)
		if !ok {
			n.defaulted = true
			continue
		}
		out = append(out, f)
	}
	return out
}

// answers accepts [stress, focus, control] or an object with those keys.
func (n *normalizer) answers(field string) Answers {
	var vals [3]float64
	switch v := n.raw[field].(type) {
	case []any:
		if len(v) < 3 {
			n.defaulted = true
		}
		for i := 0; i < 3 && i < len(v); i++ {
			f, ok := toNumber(v[i])
			if !ok {
				n.defaulted = true
			}
			vals[i] = f
		}
	case map[string]any:
		for i, key := range []string{MetricStress, MetricFocus, MetricControl} {
			f, ok := toNumber(v[key])
			if !ok {
				n.defaulted = true
			}
			vals[i] = f
		}
	default:
		n.defaulted = true
	}
	return Answers{Stress: vals[0], Focus: vals[1], Control: vals[2]}
}

func toNumber(v any) (float64, bool) {
	switch v.(type) {
	case nil, bool, map[string]any, []any:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Unix timestamps at or above this are taken as milliseconds.
const millisThreshold = 1e12

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		parsed, err := cast.ToTimeInDefaultLocationE(s, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	case map[string]any:
		return firestoreTime(t)
	}

	f, ok := toNumber(v)
	if !ok || f <= 0 {
		return time.Time{}, false
	}
	if f >= millisThreshold {
		return time.UnixMilli(int64(f)).UTC(), true
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}

// firestoreTime reads the {"_seconds", "_nanoseconds"} shape Firestore
// timestamps take once serialized.
func firestoreTime(m map[string]any) (time.Time, bool) {
	for _, keys := range [][2]string{{"_seconds", "_nanoseconds"}, {"seconds", "nanos"}} {
		sec, ok := toNumber(m[keys[0]])
		if !ok {
			continue
		}
		nanos, _ := toNumber(m[keys[1]])
		return time.Unix(int64(sec), int64(nanos)).UTC(), true
	}
	return time.Time{}, false
}
