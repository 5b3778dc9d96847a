package presenter

import "github.com/xavierca1/coachflow/internal/aggregate"

type StatCard struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Detail string `json:"detail,omitempty"`
}

func LeadCards(s aggregate.LeadSummary) []StatCard {
	return []StatCard{
		{Label: "Total Leads", Value: Number(s.Total)},
		{Label: "Hot Leads", Value: Number(s.Hot), Detail: Number(s.Warm) + " warm"},
		{Label: "Converted", Value: Number(s.Converted)},
		{Label: "Conversion Rate", Value: Percent(s.ConversionRate)},
	}
}

func BookingCards(s aggregate.BookingSummary) []StatCard {
	return []StatCard{
		{Label: "Total Bookings", Value: Number(s.Total)},
		{Label: "Upcoming", Value: Number(s.Upcoming)},
		{Label: "Today", Value: Number(s.Today)},
		{Label: "Completion Rate", Value: Percent(s.CompletionRate)},
	}
}

func CallCards(s aggregate.CallSummary) []StatCard {
	return []StatCard{
		{Label: "Total Calls", Value: Number(s.Total)},
		{Label: "Success Rate", Value: Percent(s.SuccessRate)},
		{Label: "Avg Duration", Value: Duration(s.AvgDurationSeconds)},
		{Label: "In Progress", Value: Number(s.InProgress)},
	}
}

func MessageCards(s aggregate.MessageSummary) []StatCard {
	return []StatCard{
		{Label: "Total Messages", Value: Number(s.Total), Detail: Number(s.ActivePlatforms) + " platforms"},
		{Label: "Automation Rate", Value: Percent(s.AutomationRate)},
		{Label: "Response Rate", Value: Percent(s.ResponseRate)},
		{Label: "Avg Response Time", Value: Duration(s.AvgResponseTimeSeconds)},
	}
}

func WorkflowCards(s aggregate.WorkflowSummary) []StatCard {
	return []StatCard{
		{Label: "Workflows", Value: Number(s.Total)},
		{Label: "Active", Value: Number(s.Active), Detail: Number(s.Paused) + " paused"},
		{Label: "Total Actions", Value: Number(s.TotalActions)},
		{Label: "Avg Success Rate", Value: Percent(s.AvgSuccessRate)},
	}
}

func EmailCards(s aggregate.EmailSummary) []StatCard {
	return []StatCard{
		{Label: "Templates", Value: Number(s.Templates), Detail: Number(s.ActiveTemplates) + " active"},
		{Label: "Campaigns", Value: Number(s.Campaigns), Detail: Number(s.LiveCampaigns) + " live"},
		{Label: "Automation Rules", Value: Number(s.Rules), Detail: Number(s.ActiveRules) + " active"},
		{Label: "Queued", Value: Number(s.Queued), Detail: Number(s.Sent) + " sent"},
		{Label: "Engagement", Value: Percent(s.EngagementRate)},
	}
}
