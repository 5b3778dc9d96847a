package aggregate

import (
	"time"

	"github.com/xavierca1/coachflow/internal/entity"
)

// PerformanceDays is the window of the performance chart.
const PerformanceDays = 7

// DayActivity is one row of the performance chart.
type DayActivity struct {
	Date     time.Time `json:"date"`
	Leads    int       `json:"leads"`
	Calls    int       `json:"calls"`
	Messages int       `json:"messages"`
	Bookings int       `json:"bookings"`
}

// Performance merges the per-kind daily series. A nil collection (kind not
// loaded) contributes zeros.
func Performance(leads []entity.Lead, calls []entity.VoiceCall, messages []entity.Message, bookings []entity.Booking, now time.Time) []DayActivity {
	l := Daily(leads, func(r entity.Lead) time.Time { return r.CreatedAt }, now, PerformanceDays)
	c := Daily(calls, func(r entity.VoiceCall) time.Time { return r.CreatedAt }, now, PerformanceDays)
	m := Daily(messages, func(r entity.Message) time.Time { return r.CreatedAt }, now, PerformanceDays)
	b := Daily(bookings, func(r entity.Booking) time.Time { return r.CreatedAt }, now, PerformanceDays)

	out := make([]DayActivity, PerformanceDays)
	for i := range out {
		out[i] = DayActivity{
			Date:     l[i].Date,
			Leads:    l[i].Count,
			Calls:    c[i].Count,
			Messages: m[i].Count,
			Bookings: b[i].Count,
		}
	}
	return out
}

func LeadSources(leads []entity.Lead) []Slice {
	return Distribution(CountBy(leads, func(l entity.Lead) string { return l.Source }))
}

func CallStatuses(calls []entity.VoiceCall) []Slice {
	return Distribution(CountBy(calls, func(c entity.VoiceCall) string { return c.Status }))
}

func ConversionFunnel(leads []entity.Lead) []Stage {
	return Funnel(leads, func(l entity.Lead) string { return l.Status }, entity.LeadFunnel)
}
