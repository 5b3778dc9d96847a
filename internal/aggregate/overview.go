package aggregate

import (
	"time"

	"github.com/xavierca1/coachflow/internal/entity"
)

// Records holds the collections the overview is built from. A nil slice
// means the kind failed to load; an empty one means it loaded with no rows.
type Records struct {
	Leads     []entity.Lead
	Bookings  []entity.Booking
	Calls     []entity.VoiceCall
	Messages  []entity.Message
	Workflows []entity.Workflow
}

type Overview struct {
	Leads     LeadSummary     `json:"leads"`
	Bookings  BookingSummary  `json:"bookings"`
	Calls     CallSummary     `json:"calls"`
	Messages  MessageSummary  `json:"messages"`
	Workflows WorkflowSummary `json:"workflows"`
}

func Summarize(r Records, now time.Time) Overview {
	return Overview{
		Leads:     SummarizeLeads(r.Leads),
		Bookings:  SummarizeBookings(r.Bookings, now),
		Calls:     SummarizeCalls(r.Calls),
		Messages:  SummarizeMessages(r.Messages),
		Workflows: SummarizeWorkflows(r.Workflows),
	}
}

// Charts is the chart data for the overview page.
type Charts struct {
	Performance []DayActivity `json:"performance"`
	LeadSources []Slice       `json:"lead_sources"`
	CallStatus  []Slice       `json:"call_status"`
	Funnel      []Stage       `json:"funnel"`
}

func BuildCharts(r Records, now time.Time) Charts {
	return Charts{
		Performance: Performance(r.Leads, r.Calls, r.Messages, r.Bookings, now),
		LeadSources: LeadSources(r.Leads),
		CallStatus:  CallStatuses(r.Calls),
		Funnel:      ConversionFunnel(r.Leads),
	}
}
