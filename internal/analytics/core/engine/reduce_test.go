package engine_test

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"session-analytics-service/internal/analytics/core/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean_EmptyBucketIsUnavailable(t *testing.T) {
	var empty engine.Bucket[string]
	v := engine.Mean(&empty, engine.MetricScore)
	assert.False(t, v.IsAvailable())
	assert.Equal(t, "N/A", v.String())

	assert.False(t, engine.Mean[string](nil, engine.MetricScore).IsAvailable())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestMean_ZeroIsAvailable(t *testing.T) {
	bs := engine.Group([]engine.SessionRecord{avatar("1", "a", "X", 0, 0, time.Time{})},
		engine.ByGroup(), engine.SumMetrics[string](engine.MetricSessionValue))
	b, _ := bs.Get("X")

	v := engine.Mean(b, engine.MetricSessionValue)
	f, ok := v.Float()
	assert.True(t, ok)
	assert.Equal(t, 0.0, f)
}

func TestRatio_ZeroDenominator(t *testing.T) {
	assert.False(t, engine.Ratio(10, 0).IsAvailable())
	assert.False(t, engine.Available(math.NaN()).IsAvailable())
	assert.False(t, engine.Available(math.Inf(1)).IsAvailable())
}

func TestGrandMean_Divisors(t *testing.T) {
	records := []engine.SessionRecord{
		avatar("1", "a", "X", 0, 90, time.Time{}),
		avatar("2", "a", "X", 0, 60, time.Time{}),
		avatar("3", "b", "X", 0, 30, time.Time{}),
		avatar("4", "", "X", 0, 0, time.Time{}),
	}
	totals := engine.NewTotals(engine.MetricSessionValue)
	engine.Scan(records, totals)

	perSession, _ := engine.GrandMean(totals, engine.MetricSessionValue, engine.PerSession).Float()
	assert.Equal(t, 45.0, perSession)

	perParticipant, _ := engine.GrandMean(totals, engine.MetricSessionValue, engine.PerParticipant).Float()
	assert.Equal(t, 90.0, perParticipant)

	empty := engine.NewTotals(engine.MetricSessionValue)
	assert.False(t, engine.GrandMean(empty, engine.MetricSessionValue, engine.PerSession).IsAvailable())
}

func TestPercent_Conventions(t *testing.T) {
	assert.Equal(t, "85.32%", engine.FormatPercent(engine.Available(0.8532), engine.ScaleRatio))
	assert.Equal(t, "85.32%", engine.FormatPercent(engine.Available(85.321), engine.ScalePercent))
	assert.Equal(t, "0.85%", engine.FormatPercent(engine.Available(0.8532), engine.ScalePercent))
	assert.Equal(t, "N/A", engine.FormatPercent(engine.Unavailable(), engine.ScaleRatio))
	assert.False(t, engine.Percent(engine.Available(1), engine.Scale("")).IsAvailable())
}

func TestHoursMinutes_NeverRoundsUp(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inputs := []float64{0, 59, 59.999, 60, 3599.9, 3600, 210, 86399}
	for i := 0; i < 1000; i++ {
		inputs = append(inputs, rng.Float64()*1e6)
	}

	for _, secs := range inputs {
		d := engine.HoursMinutes(secs)
		whole := float64(d.Hours*3600 + d.Minutes*60)
		assert.LessOrEqual(t, whole, secs)
		assert.Less(t, secs, whole+60)
		assert.Less(t, d.Minutes, int64(60))
	}

	assert.Equal(t, "0h 3m", engine.HoursMinutes(210).String())
	assert.Equal(t, "1h 0m", engine.HoursMinutes(3659).String())
	assert.Equal(t, engine.Duration{}, engine.HoursMinutes(-5))
}

func TestIDSet_Union(t *testing.T) {
	a := engine.NewIDSet("u1", "u2", "")
	b := engine.NewIDSet("u2", "u3")

	u := a.Union(b)
	assert.Equal(t, 3, u.Len())
	assert.True(t, u.Has("u3"))
	assert.Equal(t, 2, a.Len(), "union does not mutate its receiver")
}

func TestSeriesOf_SharesMonthKeys(t *testing.T) {
	records := []engine.SessionRecord{
		engine.AvatarSession{Common: engine.Common{HasTimestamp: true, Timestamp: month(time.May)}, SessionValue: 50, AvatarValue: 0},
		engine.AvatarSession{Common: engine.Common{HasTimestamp: true, Timestamp: month(time.January)}, SessionValue: 80, AvatarValue: 20},
	}
	bs := engine.Group(records, engine.ByMonth(time.UTC),
		engine.SumMetrics[time.Month](engine.MetricSessionValue, engine.MetricAvatarValue))
	ordered := engine.OrderFirstSeen.Months(bs, engine.EnglishMonths)

	sessions := engine.SeriesOf(ordered, engine.EnglishMonths.Label, engine.MeanOf[time.Month](engine.MetricSessionValue))
	avatars := engine.SeriesOf(ordered, engine.EnglishMonths.Label, engine.MeanOf[time.Month](engine.MetricAvatarValue))

	assert.Equal(t, []string{"May", "January"}, sessions.Labels())
	assert.Equal(t, sessions.Labels(), avatars.Labels())
	zero, ok := avatars[0].Value.Float()
	assert.True(t, ok)
	assert.Equal(t, 0.0, zero)
}

func TestSignalSeries(t *testing.T) {
	rec := engine.MeditationSession{Common: engine.Common{RawSeries: []float64{0.5, 0.75}}}
	s := engine.SignalSeries(rec)
	require.Len(t, s, 2)
	assert.Equal(t, "1", s[1].Label)
	f, _ := s[1].Value.Float()
	assert.Equal(t, 0.75, f)
}

func TestParseOrder(t *testing.T) {
	o, err := engine.ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, engine.OrderFirstSeen, o)

	_, err = engine.ParseOrder("random")
	assert.Error(t, err)
}
