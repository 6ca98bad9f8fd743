package engine

import (
	"session-analytics-service/internal/sessions/core/domain"
)

// StreamSummary is the reduced output of one record stream. Participants is
// passed through raw so streams can be unioned later.
type StreamSummary struct {
	Kind          domain.Kind       `json:"kind"`
	Available     bool              `json:"available"`
	Reason        string            `json:"reason,omitempty"`
	Sessions      int               `json:"sessions"`
	Excluded      int               `json:"excluded"`
	Defaulted     int               `json:"defaulted"`
	TotalDuration float64           `json:"total_duration_seconds"`
	Participants  IDSet             `json:"-"`
	Scalars       map[string]Value  `json:"scalars,omitempty"`
	Series        map[string]Series `json:"series,omitempty"`
}

// UnavailableStream marks a stream that could not be fetched or decoded.
func UnavailableStream(kind domain.Kind, reason string) StreamSummary {
	return StreamSummary{Kind: kind, Reason: reason}
}

// Summarize builds the part of a StreamSummary every kind shares: counts,
// total duration and participants. Callers add their own scalars and series.
func Summarize(b Batch, t *Totals) StreamSummary {
	return StreamSummary{
		Kind:          b.Kind,
		Available:     true,
		Sessions:      t.Sessions,
		Excluded:      len(b.Excluded),
		Defaulted:     b.Defaulted,
		TotalDuration: t.Sum(MetricDuration),
		Participants:  t.Participants,
		Scalars:       map[string]Value{},
		Series:        map[string]Series{},
	}
}

// Combined merges several stream summaries. Streams keeps the inputs as
// given; the combined scalars only read available streams.
type Combined struct {
	Streams       []StreamSummary `json:"streams"`
	TotalDuration Value           `json:"total_duration_seconds"`
	Duration      *Duration       `json:"duration"`
	Participants  Value           `json:"participants"`
	Partial       bool            `json:"partial"`
	Unavailable   []domain.Kind   `json:"unavailable,omitempty"`
}

// Assemble merges stream summaries in any order. Combined duration is the
// sum of each available stream's total; combined participants is the size
// of the union of their identifier sets. With no available stream both are
// unavailable.
func Assemble(streams ...StreamSummary) Combined {
	c := Combined{Streams: streams}

	var (
		total     float64
		available int
		sets      []IDSet
	)
	for _, s := range streams {
		if !s.Available {
			c.Unavailable = append(c.Unavailable, s.Kind)
			continue
		}
		available++
		total += s.TotalDuration
		sets = append(sets, s.Participants)
	}

	if available == 0 {
		c.TotalDuration = Unavailable()
		c.Participants = Unavailable()
		c.Partial = len(streams) > 0
		return c
	}

	d := HoursMinutes(total)
	c.TotalDuration = Available(total)
	c.Duration = &d
	c.Participants = Available(float64(NewIDSet().Union(sets...).Len()))
	c.Partial = len(c.Unavailable) > 0
	return c
}
