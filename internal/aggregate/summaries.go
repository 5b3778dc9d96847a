package aggregate

import (
	"time"

	"github.com/xavierca1/coachflow/internal/entity"
)

type LeadSummary struct {
	Total          int            `json:"total"`
	Hot            int            `json:"hot"`
	Warm           int            `json:"warm"`
	Cold           int            `json:"cold"`
	Converted      int            `json:"converted"`
	ConversionRate float64        `json:"conversion_rate"`
	BySource       map[string]int `json:"by_source"`
	Funnel         []Stage        `json:"funnel"`
}

func SummarizeLeads(leads []entity.Lead) LeadSummary {
	temp := CountBy(leads, func(l entity.Lead) string { return l.Temperature })
	isConverted := func(l entity.Lead) bool { return l.Status == entity.LeadStatusConverted }

	return LeadSummary{
		Total:          len(leads),
		Hot:            temp[entity.TemperatureHot],
		Warm:           temp[entity.TemperatureWarm],
		Cold:           temp[entity.TemperatureCold],
		Converted:      Count(leads, isConverted),
		ConversionRate: Rate(leads, isConverted),
		BySource:       CountBy(leads, func(l entity.Lead) string { return l.Source }),
		Funnel:         Funnel(leads, func(l entity.Lead) string { return l.Status }, entity.LeadFunnel),
	}
}

type BookingSummary struct {
	Total          int     `json:"total"`
	Scheduled      int     `json:"scheduled"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	Upcoming       int     `json:"upcoming"`
	Today          int     `json:"today"`
	CompletionRate float64 `json:"completion_rate"`
	TotalMinutes   int     `json:"total_minutes"`
}

// SummarizeBookings needs the current time for the upcoming and today
// figures; "today" is the UTC calendar day of now.
func SummarizeBookings(bookings []entity.Booking, now time.Time) BookingSummary {
	status := CountBy(bookings, func(b entity.Booking) string { return b.Status })
	today := truncateDay(now)

	return BookingSummary{
		Total:     len(bookings),
		Scheduled: status[entity.BookingStatusScheduled],
		Completed: status[entity.BookingStatusCompleted],
		Cancelled: status[entity.BookingStatusCancelled],
		Upcoming: Count(bookings, func(b entity.Booking) bool {
			return b.Status == entity.BookingStatusScheduled && b.ScheduledAt.After(now)
		}),
		Today: Count(bookings, func(b entity.Booking) bool {
			return truncateDay(b.ScheduledAt).Equal(today)
		}),
		CompletionRate: Percent(status[entity.BookingStatusCompleted], len(bookings)),
		TotalMinutes:   int(Sum(bookings, func(b entity.Booking) float64 { return float64(b.DurationMinutes) })),
	}
}

type CallSummary struct {
	Total              int            `json:"total"`
	Completed          int            `json:"completed"`
	Failed             int            `json:"failed"`
	InProgress         int            `json:"in_progress"`
	SuccessRate        float64        `json:"success_rate"`
	AvgDurationSeconds float64        `json:"avg_duration_seconds"`
	ByStatus           map[string]int `json:"by_status"`
	ByResolution       map[string]int `json:"by_resolution"`
}

func SummarizeCalls(calls []entity.VoiceCall) CallSummary {
	status := CountBy(calls, func(c entity.VoiceCall) string { return c.Status })
	withResolution := make([]entity.VoiceCall, 0, len(calls))
	for _, c := range calls {
		if c.ResolutionStatus != "" {
			withResolution = append(withResolution, c)
		}
	}

	return CallSummary{
		Total:              len(calls),
		Completed:          status[entity.CallStatusCompleted],
		Failed:             status[entity.CallStatusFailed],
		InProgress:         status[entity.CallStatusInProgress],
		SuccessRate:        Percent(status[entity.CallStatusCompleted], len(calls)),
		AvgDurationSeconds: Average(calls, func(c entity.VoiceCall) float64 { return float64(c.DurationSeconds) }),
		ByStatus:           status,
		ByResolution:       CountBy(withResolution, func(c entity.VoiceCall) string { return c.ResolutionStatus }),
	}
}

type MessageSummary struct {
	Total                  int                `json:"total"`
	Incoming               int                `json:"incoming"`
	Outgoing               int                `json:"outgoing"`
	Automated              int                `json:"automated"`
	AutomationRate         float64            `json:"automation_rate"`
	ResponseRate           float64            `json:"response_rate"`
	AvgResponseTimeSeconds float64            `json:"avg_response_time_seconds"`
	ByPlatform             map[string]int     `json:"by_platform"`
	PlatformShare          map[string]float64 `json:"platform_share"`
	ActivePlatforms        int                `json:"active_platforms"`
}

// SummarizeMessages reports per-platform shares for every known platform,
// including the ones with no messages.
func SummarizeMessages(messages []entity.Message) MessageSummary {
	kind := CountBy(messages, func(m entity.Message) string { return m.MessageType })
	platform := CountBy(messages, func(m entity.Message) string { return m.Platform })
	automated := Count(messages, func(m entity.Message) bool { return m.IsAutomated })

	share := make(map[string]float64, len(entity.Platforms))
	for _, p := range entity.Platforms {
		share[p] = Percent(platform[p], len(messages))
	}

	return MessageSummary{
		Total:          len(messages),
		Incoming:       kind[entity.MessageIncoming],
		Outgoing:       kind[entity.MessageOutgoing],
		Automated:      automated,
		AutomationRate: Percent(automated, len(messages)),
		ResponseRate:   Percent(kind[entity.MessageOutgoing], len(messages)),
		AvgResponseTimeSeconds: AverageWhere(messages,
			func(m entity.Message) bool { return m.ResponseTimeSeconds > 0 },
			func(m entity.Message) float64 { return float64(m.ResponseTimeSeconds) },
		),
		ByPlatform:      platform,
		PlatformShare:   share,
		ActivePlatforms: len(platform),
	}
}

type WorkflowSummary struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	Paused         int     `json:"paused"`
	Failed         int     `json:"failed"`
	TotalActions   int     `json:"total_actions"`
	AvgSuccessRate float64 `json:"avg_success_rate"`
}

func SummarizeWorkflows(workflows []entity.Workflow) WorkflowSummary {
	status := CountBy(workflows, func(w entity.Workflow) string { return w.Status })

	return WorkflowSummary{
		Total:          len(workflows),
		Active:         status[entity.WorkflowActive],
		Paused:         status[entity.WorkflowPaused],
		Failed:         status[entity.WorkflowFailed],
		TotalActions:   int(Sum(workflows, func(w entity.Workflow) float64 { return float64(w.ActionsCount) })),
		AvgSuccessRate: Average(workflows, func(w entity.Workflow) float64 { return w.SuccessRate }),
	}
}

type EmailSummary struct {
	Templates       int     `json:"templates"`
	ActiveTemplates int     `json:"active_templates"`
	Campaigns       int     `json:"campaigns"`
	LiveCampaigns   int     `json:"live_campaigns"`
	Rules           int     `json:"rules"`
	ActiveRules     int     `json:"active_rules"`
	Queued          int     `json:"queued"`
	QueueTotal      int     `json:"queue_total"`
	Sent            int     `json:"sent"`
	Failed          int     `json:"failed"`
	EngagementRate  float64 `json:"engagement_rate"`
}

type EmailData struct {
	Templates []entity.EmailTemplate
	Campaigns []entity.EmailCampaign
	Rules     []entity.EmailRule
	Queue     []entity.QueuedEmail
}

func SummarizeEmail(d EmailData) EmailSummary {
	queue := CountBy(d.Queue, func(e entity.QueuedEmail) string { return e.Status })
	sent := Sum(d.Campaigns, func(c entity.EmailCampaign) float64 { return float64(c.SentCount) })
	opened := Sum(d.Campaigns, func(c entity.EmailCampaign) float64 { return float64(c.OpenedCount) })

	return EmailSummary{
		Templates:       len(d.Templates),
		ActiveTemplates: Count(d.Templates, func(t entity.EmailTemplate) bool { return t.Active }),
		Campaigns:       len(d.Campaigns),
		LiveCampaigns:   Count(d.Campaigns, func(c entity.EmailCampaign) bool { return c.IsLive() }),
		Rules:           len(d.Rules),
		ActiveRules:     Count(d.Rules, func(r entity.EmailRule) bool { return r.Active }),
		Queued:          queue[entity.EmailQueued],
		QueueTotal:      len(d.Queue),
		Sent:            queue[entity.EmailSent],
		Failed:          queue[entity.EmailFailed],
		EngagementRate:  Percent(int(opened), int(sent)),
	}
}

// CampaignEngagement is opened/sent for a single campaign.
func CampaignEngagement(c entity.EmailCampaign) float64 {
	return Percent(c.OpenedCount, c.SentCount)
}
