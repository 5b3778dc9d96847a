package entity

import (
	"errors"
	"strings"
	"time"
)

const (
	CampaignDraft     = "draft"
	CampaignScheduled = "scheduled"
	CampaignSending   = "sending"
	CampaignSent      = "sent"
	CampaignPaused    = "paused"
)

// TemplateCustom is the template_type used when none is given.
const TemplateCustom = "custom"

const (
	EmailQueued = "queued"
	EmailSent   = "sent"
	EmailFailed = "failed"
)

type EmailTemplate struct {
	ID           string    `json:"id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	TemplateType string    `json:"template_type"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

type EmailCampaign struct {
	ID              string     `json:"id,omitempty"`
	UserID          string     `json:"user_id,omitempty"`
	Name            string     `json:"name"`
	TemplateID      string     `json:"template_id,omitempty"`
	Status          string     `json:"status"`
	TotalRecipients int        `json:"total_recipients"`
	SentCount       int        `json:"sent_count"`
	OpenedCount     int        `json:"opened_count"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitzero"`
}

type EmailRule struct {
	ID           string    `json:"id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	Name         string    `json:"name"`
	TriggerType  string    `json:"trigger_type"`
	TemplateID   string    `json:"template_id,omitempty"`
	DelayMinutes int       `json:"delay_minutes"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// QueuedEmail is one outbound email waiting for the queue worker.
type QueuedEmail struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id,omitempty"`
	ToEmail   string     `json:"to_email"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Status    string     `json:"status"`
	Error     string     `json:"error,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewEmailTemplate(name, subject, body, templateType string) (*EmailTemplate, error) {
	t := &EmailTemplate{
		Name:         strings.TrimSpace(name),
		Subject:      subject,
		Body:         body,
		TemplateType: strings.TrimSpace(templateType),
		Active:       true,
	}
	if t.TemplateType == "" {
		t.TemplateType = TemplateCustom
	}
	if t.Name == "" {
		return nil, errors.New("name is required")
	}
	if strings.TrimSpace(t.Subject) == "" {
		return nil, errors.New("subject is required")
	}
	return t, nil
}

func NewEmailCampaign(name, templateID string, scheduledAt *time.Time) (*EmailCampaign, error) {
	c := &EmailCampaign{Name: strings.TrimSpace(name), TemplateID: templateID, Status: CampaignDraft, ScheduledAt: scheduledAt}
	if c.Name == "" {
		return nil, errors.New("name is required")
	}
	if scheduledAt != nil {
		c.Status = CampaignScheduled
	}
	return c, nil
}

func NewEmailRule(name, triggerType, templateID string, delayMinutes int) (*EmailRule, error) {
	r := &EmailRule{
		Name:         strings.TrimSpace(name),
		TriggerType:  strings.TrimSpace(triggerType),
		TemplateID:   templateID,
		DelayMinutes: delayMinutes,
		Active:       true,
	}
	if r.Name == "" {
		return nil, errors.New("name is required")
	}
	if r.TriggerType == "" {
		return nil, errors.New("trigger_type is required")
	}
	if r.DelayMinutes < 0 {
		return nil, errors.New("delay_minutes cannot be negative")
	}
	return r, nil
}

// IsLive reports whether the campaign is currently going out or about to.
func (c *EmailCampaign) IsLive() bool {
	return c.Status == CampaignSending || c.Status == CampaignScheduled
}
