package presenter

import (
	"time"

	"github.com/xavierca1/coachflow/internal/aggregate"
	"github.com/xavierca1/coachflow/internal/entity"
)

type LeadView struct {
	entity.Lead
	SourceLabel string `json:"source_label"`
	CreatedAgo  string `json:"created_ago,omitempty"`
}

type MessageView struct {
	entity.Message
	ResponseTime string `json:"response_time,omitempty"`
	CreatedAgo   string `json:"created_ago,omitempty"`
}

type CallView struct {
	entity.VoiceCall
	Duration   string `json:"duration"`
	CreatedAgo string `json:"created_ago,omitempty"`
}

func LeadViews(leads []entity.Lead, now time.Time) []LeadView {
	out := make([]LeadView, len(leads))
	for i, l := range leads {
		out[i] = LeadView{Lead: l, SourceLabel: Label(l.Source), CreatedAgo: Ago(l.CreatedAt, now)}
	}
	return out
}

func MessageViews(messages []entity.Message, now time.Time) []MessageView {
	out := make([]MessageView, len(messages))
	for i, m := range messages {
		v := MessageView{Message: m, CreatedAgo: Ago(m.CreatedAt, now)}
		if m.ResponseTimeSeconds > 0 {
			v.ResponseTime = Duration(float64(m.ResponseTimeSeconds))
		}
		out[i] = v
	}
	return out
}

func CallViews(calls []entity.VoiceCall, now time.Time) []CallView {
	out := make([]CallView, len(calls))
	for i, c := range calls {
		out[i] = CallView{VoiceCall: c, Duration: Duration(float64(c.DurationSeconds)), CreatedAgo: Ago(c.CreatedAt, now)}
	}
	return out
}

type CampaignView struct {
	entity.EmailCampaign
	Engagement string `json:"engagement"`
}

// CampaignViews adds each campaign's open rate over emails sent.
func CampaignViews(campaigns []entity.EmailCampaign) []CampaignView {
	out := make([]CampaignView, len(campaigns))
	for i, c := range campaigns {
		out[i] = CampaignView{EmailCampaign: c, Engagement: Percent(aggregate.CampaignEngagement(c))}
	}
	return out
}
