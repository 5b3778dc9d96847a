// Package aggregate reduces record collections into dashboard figures.
//
// Every function here is total: empty or partially populated input yields
// zero values, never NaN and never an error.
package aggregate

import (
	"sort"
	"time"
)

// Stage is one step of a funnel.
type Stage struct {
	Stage string `json:"stage"`
	Value int    `json:"value"`
}

// Slice is one category of a distribution chart.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Point is one day of a time series.
type Point struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// CountBy maps each distinct key to its number of occurrences. The counts
// always sum to len(records).
func CountBy[T any](records []T, key func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// Count returns how many records match pred.
func Count[T any](records []T, pred func(T) bool) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

// Rate is the percentage of records matching pred, in [0,100]. An empty
// collection has a rate of 0.
func Rate[T any](records []T, pred func(T) bool) float64 {
	return Percent(Count(records, pred), len(records))
}

// Percent guards the division so a zero total reads as 0%.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Average is the arithmetic mean of sel over records, 0 when empty.
func Average[T any](records []T, sel func(T) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += sel(r)
	}
	return sum / float64(len(records))
}

// AverageWhere averages sel over the records matching pred only.
func AverageWhere[T any](records []T, pred func(T) bool, sel func(T) float64) float64 {
	var (
		sum float64
		n   int
	)
	for _, r := range records {
		if !pred(r) {
			continue
		}
		sum += sel(r)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Sum adds sel over records.
func Sum[T any](records []T, sel func(T) float64) float64 {
	var sum float64
	for _, r := range records {
		sum += sel(r)
	}
	return sum
}

// Funnel counts records per declared stage. The output has exactly one entry
// per stage, in declared order; keys outside the stages are ignored.
func Funnel[T any](records []T, key func(T) string, stages []string) []Stage {
	counts := CountBy(records, key)
	out := make([]Stage, len(stages))
	for i, s := range stages {
		out[i] = Stage{Stage: s, Value: counts[s]}
	}
	return out
}

// Distribution turns counts into a chart series ordered by value, largest
// first, ties broken by name.
func Distribution(counts map[string]int) []Slice {
	out := make([]Slice, 0, len(counts))
	for name, v := range counts {
		out = append(out, Slice{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Daily buckets records into the last `days` UTC calendar days ending on the
// day of now. Days without records are present with a zero count.
func Daily[T any](records []T, at func(T) time.Time, now time.Time, days int) []Point {
	if days <= 0 {
		return []Point{}
	}
	today := truncateDay(now)
	first := today.AddDate(0, 0, -(days - 1))

	out := make([]Point, days)
	for i := range out {
		out[i].Date = first.AddDate(0, 0, i)
	}
	for _, r := range records {
		d := truncateDay(at(r))
		if d.Before(first) || d.After(today) {
			continue
		}
		idx := int(d.Sub(first).Hours() / 24)
		out[idx].Count++
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Distinct counts distinct keys.
func Distinct[T any](records []T, key func(T) string) int {
	return len(CountBy(records, key))
}
