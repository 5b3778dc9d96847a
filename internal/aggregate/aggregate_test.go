package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/coachflow/internal/entity"
)

func leadsWithStatus(statuses ...string) []entity.Lead {
	out := make([]entity.Lead, len(statuses))
	for i, s := range statuses {
		out[i] = entity.Lead{Status: s}
	}
	return out
}

func TestRateEmptyCollectionIsZero(t *testing.T) {
	got := Rate([]entity.Lead{}, func(entity.Lead) bool { return true })
	assert.Equal(t, 0.0, got)

	got = Rate[entity.Lead](nil, func(entity.Lead) bool { return true })
	assert.Equal(t, 0.0, got)
}

func TestRateStaysWithinBounds(t *testing.T) {
	leads := leadsWithStatus("new", "converted", "converted", "qualified")

	cases := []struct {
		name string
		pred func(entity.Lead) bool
		want float64
	}{
		{"none", func(entity.Lead) bool { return false }, 0},
		{"all", func(entity.Lead) bool { return true }, 100},
		{"half", func(l entity.Lead) bool { return l.Status == "converted" }, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Rate(leads, tc.pred)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestCountBySumsToLength(t *testing.T) {
	leads := []entity.Lead{
		{Source: "website"}, {Source: "referral"}, {Source: "website"}, {Source: ""}, {Source: "other"},
	}
	counts := CountBy(leads, func(l entity.Lead) string { return l.Source })

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(leads), total)
	assert.Equal(t, 2, counts["website"])
	assert.Equal(t, 1, counts[""])
}

func TestFunnelKeepsDeclaredOrderAndZeros(t *testing.T) {
	leads := leadsWithStatus("new", "new", "converted")

	got := Funnel(leads, func(l entity.Lead) string { return l.Status }, entity.LeadFunnel)

	require.Len(t, got, 4)
	values := []int{got[0].Value, got[1].Value, got[2].Value, got[3].Value}
	assert.Equal(t, []int{2, 0, 0, 1}, values)
	assert.Equal(t, []string{"new", "contacted", "qualified", "converted"},
		[]string{got[0].Stage, got[1].Stage, got[2].Stage, got[3].Stage})
}

func TestFunnelOnEmptyInput(t *testing.T) {
	got := ConversionFunnel(nil)
	require.Len(t, got, len(entity.LeadFunnel))
	for _, s := range got {
		assert.Zero(t, s.Value)
	}
}

func TestAverageEmptyIsZeroNotNaN(t *testing.T) {
	got := Average([]entity.VoiceCall{}, func(c entity.VoiceCall) float64 { return float64(c.DurationSeconds) })
	assert.False(t, math.IsNaN(got))
	assert.Equal(t, 0.0, got)

	summary := SummarizeCalls(nil)
	assert.Equal(t, 0.0, summary.AvgDurationSeconds)
	assert.Equal(t, 0.0, summary.SuccessRate)
}

func TestAverageWhereIgnoresNonMatching(t *testing.T) {
	msgs := []entity.Message{{ResponseTimeSeconds: 0}, {ResponseTimeSeconds: 60}, {ResponseTimeSeconds: 180}}
	got := AverageWhere(msgs,
		func(m entity.Message) bool { return m.ResponseTimeSeconds > 0 },
		func(m entity.Message) float64 { return float64(m.ResponseTimeSeconds) },
	)
	assert.Equal(t, 120.0, got)
}

func TestDistributionOrdering(t *testing.T) {
	got := Distribution(map[string]int{"b": 2, "a": 2, "c": 5})
	assert.Equal(t, []Slice{{"c", 5}, {"a", 2}, {"b", 2}}, got)
}

func TestDailyZeroFillsWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	leads := []entity.Lead{
		{CreatedAt: now.Add(-time.Hour)},
		{CreatedAt: now.AddDate(0, 0, -2)},
		{CreatedAt: now.AddDate(0, 0, -2)},
		{CreatedAt: now.AddDate(0, 0, -30)}, // outside window
		{CreatedAt: now.AddDate(0, 0, 1)},   // future
	}

	got := Daily(leads, func(l entity.Lead) time.Time { return l.CreatedAt }, now, 7)

	require.Len(t, got, 7)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got[6].Date)
	assert.Equal(t, 1, got[6].Count)
	assert.Equal(t, 2, got[4].Count)
	assert.Equal(t, 0, got[0].Count)
}

func TestDailyNonPositiveWindow(t *testing.T) {
	got := Daily([]entity.Lead{{}}, func(l entity.Lead) time.Time { return l.CreatedAt }, time.Now(), 0)
	assert.Empty(t, got)
}
