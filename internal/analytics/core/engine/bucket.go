package engine

import (
	"sort"
	"time"
)

// Bucket accumulates a record count and named running sums for one key.
type Bucket[K comparable] struct {
	Key   K
	Count int
	sums  map[string]float64
}

func (b *Bucket[K]) Add(metric string, v float64) {
	if b.sums == nil {
		b.sums = make(map[string]float64)
	}
	b.sums[metric] += v
}

func (b *Bucket[K]) Sum(metric string) float64 {
	return b.sums[metric]
}

// Buckets is a keyed set of buckets that remembers first-seen key order.
type Buckets[K comparable] struct {
	order []K
	byKey map[K]*Bucket[K]
}

func NewBuckets[K comparable]() *Buckets[K] {
	return &Buckets[K]{byKey: make(map[K]*Bucket[K])}
}

// At returns the bucket for key, creating it when first seen.
func (bs *Buckets[K]) At(key K) *Bucket[K] {
	if b, ok := bs.byKey[key]; ok {
		return b
	}
	b := &Bucket[K]{Key: key}
	bs.byKey[key] = b
	bs.order = append(bs.order, key)
	return b
}

func (bs *Buckets[K]) Get(key K) (*Bucket[K], bool) {
	b, ok := bs.byKey[key]
	return b, ok
}

func (bs *Buckets[K]) Len() int {
	return len(bs.order)
}

// Keys returns the keys in first-seen order.
func (bs *Buckets[K]) Keys() []K {
	out := make([]K, len(bs.order))
	copy(out, bs.order)
	return out
}

// Ordered returns the buckets in first-seen order, or sorted by less when
// less is not nil.
func (bs *Buckets[K]) Ordered(less func(a, b K) bool) []*Bucket[K] {
	out := make([]*Bucket[K], 0, len(bs.order))
	for _, k := range bs.order {
		out = append(out, bs.byKey[k])
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i].Key, out[j].Key) })
	}
	return out
}

// Total sums metric over every bucket.
func (bs *Buckets[K]) Total(metric string) float64 {
	var total float64
	for _, k := range bs.order {
		total += bs.byKey[k].Sum(metric)
	}
	return total
}

// KeyFunc derives the bucket key of a record. ok=false leaves the record
// out of this grouping only.
type KeyFunc[K comparable] func(SessionRecord) (key K, ok bool)

// Accumulator adds a record to its bucket. Count is maintained by the engine.
type Accumulator[K comparable] func(*Bucket[K], SessionRecord)

// Sink receives every record of a scan.
type Sink interface {
	Observe(SessionRecord)
}

// Scan feeds each record once to every sink, so several groupings and
// totals are built from a single pass over the input.
func Scan(records []SessionRecord, sinks ...Sink) {
	for _, rec := range records {
		for _, s := range sinks {
			s.Observe(rec)
		}
	}
}

// Grouping is a Sink that buckets records by key.
type Grouping[K comparable] struct {
	key     KeyFunc[K]
	acc     Accumulator[K]
	buckets *Buckets[K]
}

func NewGrouping[K comparable](key KeyFunc[K], acc Accumulator[K]) *Grouping[K] {
	return &Grouping[K]{key: key, acc: acc, buckets: NewBuckets[K]()}
}

func (g *Grouping[K]) Observe(rec SessionRecord) {
	k, ok := g.key(rec)
	if !ok {
		return
	}
	b := g.buckets.At(k)
	b.Count++
	if g.acc != nil {
		g.acc(b, rec)
	}
}

func (g *Grouping[K]) Buckets() *Buckets[K] {
	return g.buckets
}

// Group buckets records by key in one pass.
func Group[K comparable](records []SessionRecord, key KeyFunc[K], acc Accumulator[K]) *Buckets[K] {
	g := NewGrouping(key, acc)
	Scan(records, g)
	return g.Buckets()
}

// SumMetrics accumulates each named metric into its running sum.
func SumMetrics[K comparable](metrics ...string) Accumulator[K] {
	return func(b *Bucket[K], rec SessionRecord) {
		for _, m := range metrics {
			b.Add(m, rec.Metric(m))
		}
	}
}

// ByMonth keys records by calendar month of their timestamp in loc. The
// year is ignored. Records without a timestamp are skipped.
func ByMonth(loc *time.Location) KeyFunc[time.Month] {
	if loc == nil {
		loc = time.UTC
	}
	return func(rec SessionRecord) (time.Month, bool) {
		base := rec.Base()
		if !base.HasTimestamp {
			return 0, false
		}
		return base.Timestamp.In(loc).Month(), true
	}
}

// ByGroup keys records by their raw segment or category label.
func ByGroup() KeyFunc[string] {
	return func(rec SessionRecord) (string, bool) {
		return rec.Base().GroupKey, true
	}
}

// Totals is a Sink accumulating whole-stream sums, the session count and
// the participant set.
type Totals struct {
	Sessions     int
	Participants IDSet
	metrics      []string
	sums         map[string]float64
}

func NewTotals(metrics ...string) *Totals {
	return &Totals{
		Participants: NewIDSet(),
		metrics:      metrics,
		sums:         make(map[string]float64, len(metrics)),
	}
}

func (t *Totals) Observe(rec SessionRecord) {
	t.Sessions++
	t.Participants.Add(rec.Base().UserID)
	for _, m := range t.metrics {
		t.sums[m] += rec.Metric(m)
	}
}

func (t *Totals) Sum(metric string) float64 {
	return t.sums[metric]
}
