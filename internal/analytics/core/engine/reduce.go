package engine

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is a reduced metric. An unavailable Value means "no data" and is
// never the same thing as a computed zero.
type Value struct {
	v  float64
	ok bool
}

func Available(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unavailable()
	}
	return Value{v: v, ok: true}
}

func Unavailable() Value {
	return Value{}
}

func (v Value) IsAvailable() bool { return v.ok }

func (v Value) Float() (float64, bool) { return v.v, v.ok }

// String renders two decimals, or "N/A".
func (v Value) String() string {
	if !v.ok {
		return "N/A"
	}
	return strconv.FormatFloat(v.v, 'f', 2, 64)
}

// MarshalJSON writes null for an unavailable value.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Unavailable()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Available(f)
	return nil
}

// Ratio divides num by den; a zero denominator is unavailable.
func Ratio(num, den float64) Value {
	if den == 0 {
		return Unavailable()
	}
	return Available(num / den)
}

// Mean is sum/count of metric in b. Empty or missing buckets are unavailable.
func Mean[K comparable](b *Bucket[K], metric string) Value {
	if b == nil || b.Count == 0 {
		return Unavailable()
	}
	return Ratio(b.Sum(metric), float64(b.Count))
}

// Divisor picks the denominator of a grand mean. Call sites choose it per
// metric; the dashboard views do not share one convention.
type Divisor int

const (
	PerSession     Divisor = iota // total number of sessions
	PerParticipant                // distinct participants
)

// GrandMean divides the stream total of metric by the chosen divisor.
func GrandMean(t *Totals, metric string, d Divisor) Value {
	switch d {
	case PerParticipant:
		return Ratio(t.Sum(metric), float64(t.Participants.Len()))
	default:
		return Ratio(t.Sum(metric), float64(t.Sessions))
	}
}

// Round2 rounds half away from zero to two decimals.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Percent reports v as a percentage rounded to two decimals. ScaleRatio
// values are multiplied by 100, ScalePercent values are only rounded.
func Percent(v Value, scale Scale) Value {
	f, ok := v.Float()
	if !ok || !scale.Valid() {
		return Unavailable()
	}
	if scale == ScaleRatio {
		f *= 100
	}
	return Available(Round2(f))
}

// FormatPercent renders "85.32%", or "N/A".
func FormatPercent(v Value, scale Scale) string {
	p := Percent(v, scale)
	if !p.IsAvailable() {
		return p.String()
	}
	return p.String() + "%"
}

// Duration is a whole hours/minutes split of a number of seconds.
type Duration struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
}

// HoursMinutes truncates seconds to hours and minutes. The dropped
// remainder is always below 60 seconds.
func HoursMinutes(seconds float64) Duration {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Duration{}
	}
	s := int64(math.Floor(seconds))
	return Duration{Hours: s / 3600, Minutes: (s % 3600) / 60}
}

func (d Duration) String() string {
	return strconv.FormatInt(d.Hours, 10) + "h " + strconv.FormatInt(d.Minutes, 10) + "m"
}

// IDSet is a set of distinct user identifiers.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add ignores the empty identifier.
func (s IDSet) Add(id string) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int { return len(s) }

// Union returns a new set holding the members of s and every other set.
func (s IDSet) Union(others ...IDSet) IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	for _, o := range others {
		for id := range o {
			out[id] = struct{}{}
		}
	}
	return out
}
