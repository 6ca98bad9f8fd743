package engine

import (
	"fmt"
	"strconv"
	"time"
)

// Point is one labelled value of a chart series.
type Point struct {
	Label string `json:"label"`
	Value Value  `json:"value"`
}

type Series []Point

func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Label
	}
	return out
}

// SeriesOf maps ordered buckets to points.
func SeriesOf[K comparable](buckets []*Bucket[K], label func(K) string, value func(*Bucket[K]) Value) Series {
	out := make(Series, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Point{Label: label(b.Key), Value: value(b)})
	}
	return out
}

// MeanOf is a SeriesOf value function for the bucket mean of metric.
func MeanOf[K comparable](metric string) func(*Bucket[K]) Value {
	return func(b *Bucket[K]) Value { return Mean(b, metric) }
}

// SumOf is a SeriesOf value function for the bucket sum of metric.
func SumOf[K comparable](metric string) func(*Bucket[K]) Value {
	return func(b *Bucket[K]) Value { return Available(b.Sum(metric)) }
}

// CountOf is a SeriesOf value function for the bucket count.
func CountOf[K comparable]() func(*Bucket[K]) Value {
	return func(b *Bucket[K]) Value { return Available(float64(b.Count)) }
}

// SignalSeries returns the raw samples of a record indexed from zero.
func SignalSeries(rec SessionRecord) Series {
	samples := rec.Base().RawSeries
	out := make(Series, len(samples))
	for i, v := range samples {
		out[i] = Point{Label: strconv.Itoa(i), Value: Available(v)}
	}
	return out
}

// MonthLabels names January through December.
type MonthLabels [12]string

var (
	PortugueseMonths = MonthLabels{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	EnglishMonths = MonthLabels{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

func (m MonthLabels) Label(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return m[month-1]
}

// Order selects how buckets are laid out in a series.
type Order string

const (
	OrderFirstSeen Order = "first_seen"
	OrderCalendar  Order = "calendar"
	OrderLexical   Order = "lexical"
)

func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderFirstSeen:
		return OrderFirstSeen, nil
	case OrderCalendar, OrderLexical:
		return Order(s), nil
	}
	return "", fmt.Errorf("unknown bucket order %q", s)
}

// Months orders month buckets. Lexical order compares the labels.
func (o Order) Months(bs *Buckets[time.Month], labels MonthLabels) []*Bucket[time.Month] {
	switch o {
	case OrderCalendar:
		return bs.Ordered(func(a, b time.Month) bool { return a < b })
	case OrderLexical:
		return bs.Ordered(func(a, b time.Month) bool { return labels.Label(a) < labels.Label(b) })
	}
	return bs.Ordered(nil)
}

// Labels orders segment or category buckets. Calendar order does not apply
// to labels and falls back to first seen.
func (o Order) Labels(bs *Buckets[string]) []*Bucket[string] {
	if o == OrderLexical {
		return bs.Ordered(func(a, b string) bool { return a < b })
	}
	return bs.Ordered(nil)
}
