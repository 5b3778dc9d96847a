package presenter

import (
	"github.com/xavierca1/coachflow/internal/aggregate"
	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/usecase"
)

type Chart[T any] struct {
	State State `json:"state"`
	Data  []T   `json:"data"`
}

type DayPoint struct {
	Day      string `json:"day"`
	Date     string `json:"date"`
	Leads    int    `json:"leads"`
	Calls    int    `json:"calls"`
	Messages int    `json:"messages"`
	Bookings int    `json:"bookings"`
}

type Slice struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Value   int    `json:"value"`
	Percent string `json:"percent"`
}

// FunnelStage carries each stage's share of the first stage.
type FunnelStage struct {
	Stage   string `json:"stage"`
	Value   int    `json:"value"`
	Percent string `json:"percent"`
}

type Charts struct {
	Performance Chart[DayPoint]    `json:"performance"`
	LeadSources Chart[Slice]       `json:"lead_sources"`
	CallStatus  Chart[Slice]       `json:"call_status"`
	Funnel      Chart[FunnelStage] `json:"funnel"`
}

func BuildCharts(snap usecase.Snapshot) Charts {
	c := aggregate.BuildCharts(snap.Records, snap.At)

	perf := make([]DayPoint, len(c.Performance))
	busy := false
	for i, d := range c.Performance {
		perf[i] = DayPoint{
			Day:      d.Date.Format("Mon"),
			Date:     d.Date.Format("2006-01-02"),
			Leads:    d.Leads,
			Calls:    d.Calls,
			Messages: d.Messages,
			Bookings: d.Bookings,
		}
		busy = busy || d.Leads+d.Calls+d.Messages+d.Bookings > 0
	}
	perfState := stateOf(busy)
	if len(snap.Failed) == len(entity.DashboardKinds) {
		perfState = StateError
	}

	return Charts{
		Performance: Chart[DayPoint]{State: perfState, Data: perf},
		LeadSources: sliceChart(snap, entity.KindLeads, c.LeadSources),
		CallStatus:  sliceChart(snap, entity.KindVoiceCalls, c.CallStatus),
		Funnel:      funnelChart(snap, c.Funnel),
	}
}

func Slices(in []aggregate.Slice) []Slice {
	total := 0
	for _, s := range in {
		total += s.Value
	}
	out := make([]Slice, len(in))
	for i, s := range in {
		out[i] = Slice{Key: s.Name, Name: Label(s.Name), Value: s.Value, Percent: Percent(aggregate.Percent(s.Value, total))}
	}
	return out
}

func sliceChart(snap usecase.Snapshot, kind entity.Kind, in []aggregate.Slice) Chart[Slice] {
	if snap.Err(kind) != nil {
		return Chart[Slice]{State: StateError, Data: []Slice{}}
	}
	return Chart[Slice]{State: stateOf(len(in) > 0), Data: Slices(in)}
}

func funnelChart(snap usecase.Snapshot, in []aggregate.Stage) Chart[FunnelStage] {
	if snap.Err(entity.KindLeads) != nil {
		return Chart[FunnelStage]{State: StateError, Data: []FunnelStage{}}
	}
	top := 0
	if len(in) > 0 {
		top = in[0].Value
	}
	out := make([]FunnelStage, len(in))
	nonzero := false
	for i, s := range in {
		out[i] = FunnelStage{Stage: Label(s.Stage), Value: s.Value, Percent: Percent(aggregate.Percent(s.Value, top))}
		nonzero = nonzero || s.Value > 0
	}
	return Chart[FunnelStage]{State: stateOf(nonzero), Data: out}
}

func stateOf(hasData bool) State {
	if hasData {
		return StateReady
	}
	return StateEmpty
}
