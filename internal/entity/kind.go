package entity

import "fmt"

// Kind identifies a record collection owned by the backend.
type Kind string

const (
	KindLeads           Kind = "leads"
	KindBookings        Kind = "bookings"
	KindVoiceCalls      Kind = "voice_calls"
	KindMessages        Kind = "messages"
	KindWorkflows       Kind = "workflows"
	KindEmailTemplates  Kind = "email_templates"
	KindEmailCampaigns  Kind = "email_campaigns"
	KindEmailRules      Kind = "email_automation_rules"
	KindEmailQueue      Kind = "email_queue"
	KindBusinessProfile Kind = "business_profiles"
	KindProfiles        Kind = "profiles"
)

// DashboardKinds are the five collections rendered on the overview.
var DashboardKinds = []Kind{KindLeads, KindBookings, KindVoiceCalls, KindMessages, KindWorkflows}

// Table returns the backend table backing the kind.
func (k Kind) Table() string {
	return string(k)
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind accepts a table name or the short aliases used by the API.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "leads":
		return KindLeads, nil
	case "bookings":
		return KindBookings, nil
	case "calls", "voice_calls":
		return KindVoiceCalls, nil
	case "messages":
		return KindMessages, nil
	case "workflows":
		return KindWorkflows, nil
	case "email_templates":
		return KindEmailTemplates, nil
	case "email_campaigns":
		return KindEmailCampaigns, nil
	case "email_rules", "email_automation_rules":
		return KindEmailRules, nil
	case "email_queue":
		return KindEmailQueue, nil
	case "business_profiles":
		return KindBusinessProfile, nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}
