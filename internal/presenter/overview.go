package presenter

import (
	"time"

	"github.com/xavierca1/coachflow/internal/aggregate"
	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/usecase"
)

type State string

const (
	StateReady State = "ready"
	StateEmpty State = "empty"
	StateError State = "error"
)

// Section is one independently loaded block of the dashboard.
type Section struct {
	State   State      `json:"state"`
	Message string     `json:"message,omitempty"`
	Cards   []StatCard `json:"cards,omitempty"`
	Summary any        `json:"summary,omitempty"`
}

type Overview struct {
	Leads     Section   `json:"leads"`
	Bookings  Section   `json:"bookings"`
	Calls     Section   `json:"calls"`
	Messages  Section   `json:"messages"`
	Workflows Section   `json:"workflows"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// BuildOverview renders each kind on its own; a failed kind becomes an
// error section and the rest are unaffected.
func BuildOverview(snap usecase.Snapshot) Overview {
	sum := aggregate.Summarize(snap.Records, snap.At)
	r := snap.Records

	return Overview{
		Leads:     section(snap, entity.KindLeads, len(r.Leads), sum.Leads, LeadCards(sum.Leads)),
		Bookings:  section(snap, entity.KindBookings, len(r.Bookings), sum.Bookings, BookingCards(sum.Bookings)),
		Calls:     section(snap, entity.KindVoiceCalls, len(r.Calls), sum.Calls, CallCards(sum.Calls)),
		Messages:  section(snap, entity.KindMessages, len(r.Messages), sum.Messages, MessageCards(sum.Messages)),
		Workflows: section(snap, entity.KindWorkflows, len(r.Workflows), sum.Workflows, WorkflowCards(sum.Workflows)),
		LoadedAt:  snap.At,
	}
}

// List builds the section for a single-kind page.
func List(kind entity.Kind, n int, summary any, cards []StatCard) Section {
	if n == 0 {
		return Section{State: StateEmpty, Message: emptyMessage(kind), Cards: cards, Summary: summary}
	}
	return Section{State: StateReady, Cards: cards, Summary: summary}
}

func section(snap usecase.Snapshot, kind entity.Kind, n int, summary any, cards []StatCard) Section {
	if snap.Err(kind) != nil {
		return Section{State: StateError, Message: "Could not load " + Label(string(kind)) + ". Try again shortly."}
	}
	return List(kind, n, summary, cards)
}

func emptyMessage(kind entity.Kind) string {
	switch kind {
	case entity.KindLeads:
		return "No leads yet. Add your first lead to start the pipeline."
	case entity.KindBookings:
		return "No bookings scheduled."
	case entity.KindVoiceCalls:
		return "No calls recorded yet."
	case entity.KindMessages:
		return "No messages yet."
	case entity.KindWorkflows:
		return "No workflows configured."
	}
	return "Nothing here yet."
}
