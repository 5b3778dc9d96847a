package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/coachflow/internal/entity"
)

func TestSummarizeLeads(t *testing.T) {
	leads := []entity.Lead{
		{Status: "new", Temperature: "hot", Source: "website"},
		{Status: "converted", Temperature: "warm", Source: "referral"},
		{Status: "contacted", Temperature: "cold", Source: "website"},
		{Status: "converted", Temperature: "hot", Source: "social_media"},
	}

	s := SummarizeLeads(leads)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Hot)
	assert.Equal(t, 1, s.Warm)
	assert.Equal(t, 1, s.Cold)
	assert.Equal(t, 2, s.Converted)
	assert.Equal(t, 50.0, s.ConversionRate)
	assert.Equal(t, 2, s.BySource["website"])
	assert.Equal(t, 2, s.Funnel[3].Value)
}

func TestSummarizeLeadsEmpty(t *testing.T) {
	s := SummarizeLeads(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.ConversionRate)
	assert.Len(t, s.Funnel, 4)
}

func TestSummarizeBookings(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	bookings := []entity.Booking{
		{Status: "scheduled", ScheduledAt: now.Add(2 * time.Hour), DurationMinutes: 30},
		{Status: "scheduled", ScheduledAt: now.Add(-48 * time.Hour), DurationMinutes: 60},
		{Status: "completed", ScheduledAt: now.Add(-time.Hour), DurationMinutes: 45},
		{Status: "cancelled", ScheduledAt: now.Add(72 * time.Hour), DurationMinutes: 60},
	}

	s := SummarizeBookings(bookings, now)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Scheduled)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, 1, s.Upcoming)
	assert.Equal(t, 2, s.Today)
	assert.Equal(t, 25.0, s.CompletionRate)
	assert.Equal(t, 195, s.TotalMinutes)
}

func TestSummarizeCalls(t *testing.T) {
	calls := []entity.VoiceCall{
		{Status: "completed", DurationSeconds: 120, ResolutionStatus: "resolved"},
		{Status: "failed", DurationSeconds: 0},
		{Status: "completed", DurationSeconds: 240, ResolutionStatus: "escalated"},
		{Status: "in_progress", DurationSeconds: 60},
	}

	s := SummarizeCalls(calls)

	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 50.0, s.SuccessRate)
	assert.Equal(t, 105.0, s.AvgDurationSeconds)
	assert.Equal(t, map[string]int{"resolved": 1, "escalated": 1}, s.ByResolution)
}

func TestSummarizeMessages(t *testing.T) {
	msgs := []entity.Message{
		{Platform: "whatsapp", MessageType: "incoming"},
		{Platform: "whatsapp", MessageType: "outgoing", IsAutomated: true, ResponseTimeSeconds: 30},
		{Platform: "email", MessageType: "outgoing", ResponseTimeSeconds: 90},
		{Platform: "website", MessageType: "incoming"},
	}

	s := SummarizeMessages(msgs)

	assert.Equal(t, 2, s.Incoming)
	assert.Equal(t, 2, s.Outgoing)
	assert.Equal(t, 1, s.Automated)
	assert.Equal(t, 25.0, s.AutomationRate)
	assert.Equal(t, 50.0, s.ResponseRate)
	assert.Equal(t, 60.0, s.AvgResponseTimeSeconds)
	assert.Equal(t, 50.0, s.PlatformShare["whatsapp"])
	assert.Equal(t, 0.0, s.PlatformShare["sms"])
	assert.Equal(t, 3, s.ActivePlatforms)
}

func TestSummarizeWorkflows(t *testing.T) {
	wfs := []entity.Workflow{
		{Status: "active", ActionsCount: 3, SuccessRate: 90},
		{Status: "paused", ActionsCount: 2, SuccessRate: 70},
		{Status: "failed", ActionsCount: 1, SuccessRate: 20},
	}

	s := SummarizeWorkflows(wfs)

	assert.Equal(t, 1, s.Active)
	assert.Equal(t, 1, s.Paused)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 6, s.TotalActions)
	assert.Equal(t, 60.0, s.AvgSuccessRate)
	assert.Equal(t, 0.0, SummarizeWorkflows(nil).AvgSuccessRate)
}

func TestSummarizeEmail(t *testing.T) {
	s := SummarizeEmail(EmailData{
		Templates: []entity.EmailTemplate{{Active: true}, {Active: false}},
		Campaigns: []entity.EmailCampaign{
			{Status: "sending", TotalRecipients: 200, SentCount: 80, OpenedCount: 40},
			{Status: "draft", TotalRecipients: 200, SentCount: 20, OpenedCount: 10},
			{Status: "scheduled"},
		},
		Rules: []entity.EmailRule{{Active: true}},
		Queue: []entity.QueuedEmail{{Status: "queued"}, {Status: "sent"}, {Status: "failed"}, {Status: "queued"}},
	})

	assert.Equal(t, 1, s.ActiveTemplates)
	assert.Equal(t, 2, s.LiveCampaigns)
	assert.Equal(t, 2, s.Queued)
	assert.Equal(t, 4, s.QueueTotal)
	assert.Equal(t, 50.0, s.EngagementRate, "opened over sent, not over recipients")

	assert.Equal(t, 0.0, SummarizeEmail(EmailData{}).EngagementRate)
}

func TestPerformanceWithMissingKinds(t *testing.T) {
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	rows := Performance([]entity.Lead{{CreatedAt: now}}, nil, nil, nil, now)

	assert.Len(t, rows, PerformanceDays)
	assert.Equal(t, 1, rows[PerformanceDays-1].Leads)
	assert.Zero(t, rows[PerformanceDays-1].Calls)
}
