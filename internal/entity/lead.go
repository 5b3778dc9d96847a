package entity

import (
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"
)

const (
	LeadSourceWebsite       = "website"
	LeadSourceSocialMedia   = "social_media"
	LeadSourceReferral      = "referral"
	LeadSourceEmailCampaign = "email_campaign"
	LeadSourceColdOutreach  = "cold_outreach"
	LeadSourceOther         = "other"
)

// Pipeline stages, in funnel order.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
)

const (
	TemperatureHot  = "hot"
	TemperatureWarm = "warm"
	TemperatureCold = "cold"
)

// LeadFunnel is the declared stage order of the conversion funnel.
var LeadFunnel = []string{LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted}

var (
	leadSources      = []string{LeadSourceWebsite, LeadSourceSocialMedia, LeadSourceReferral, LeadSourceEmailCampaign, LeadSourceColdOutreach, LeadSourceOther}
	leadTemperatures = []string{TemperatureHot, TemperatureWarm, TemperatureCold}
)

type Lead struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	Temperature string    `json:"temperature"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// NewLead applies the dashboard defaults and validates the payload.
func NewLead(name, email, phone, source, temperature string) (*Lead, error) {
	lead := &Lead{
		Name:        strings.TrimSpace(name),
		Email:       strings.TrimSpace(email),
		Phone:       strings.TrimSpace(phone),
		Source:      source,
		Status:      LeadStatusNew,
		Temperature: temperature,
	}
	if lead.Source == "" {
		lead.Source = LeadSourceWebsite
	}
	if lead.Temperature == "" {
		lead.Temperature = TemperatureCold
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(l.Email); err != nil {
		return errors.New("email is invalid")
	}
	if !oneOf(l.Source, leadSources) {
		return errors.New("source is invalid")
	}
	if !oneOf(l.Temperature, leadTemperatures) {
		return errors.New("temperature must be hot, warm or cold")
	}
	return nil
}

// ValidLeadStatus reports whether s is a known pipeline stage. Progression
// order is enforced by the backend, not here.
func ValidLeadStatus(s string) bool {
	return oneOf(s, LeadFunnel)
}

func ValidTemperature(s string) bool {
	return oneOf(s, leadTemperatures)
}

func oneOf(v string, set []string) bool {
	return slices.Contains(set, v)
}
