package entity

import (
	"errors"
	"strings"
	"time"
)

const (
	PlatformWhatsApp = "whatsapp"
	PlatformEmail    = "email"
	PlatformWebsite  = "website"
	PlatformSMS      = "sms"
)

const (
	MessageIncoming = "incoming"
	MessageOutgoing = "outgoing"
)

var Platforms = []string{PlatformWhatsApp, PlatformEmail, PlatformWebsite, PlatformSMS}

type Message struct {
	ID                  string    `json:"id,omitempty"`
	UserID              string    `json:"user_id,omitempty"`
	LeadID              string    `json:"lead_id,omitempty"`
	Platform            string    `json:"platform"`
	MessageType         string    `json:"message_type"`
	SenderName          string    `json:"sender_name,omitempty"`
	Content             string    `json:"content"`
	IsAutomated         bool      `json:"is_automated"`
	ResponseTimeSeconds int       `json:"response_time_seconds"`
	CreatedAt           time.Time `json:"created_at,omitzero"`
}

func NewMessage(platform, messageType, content string, automated bool) (*Message, error) {
	m := &Message{
		Platform:    platform,
		MessageType: messageType,
		Content:     strings.TrimSpace(content),
		IsAutomated: automated,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Message) Validate() error {
	if !oneOf(m.Platform, Platforms) {
		return errors.New("platform must be whatsapp, email, website or sms")
	}
	if m.MessageType != MessageIncoming && m.MessageType != MessageOutgoing {
		return errors.New("message_type must be incoming or outgoing")
	}
	if m.Content == "" {
		return errors.New("content is required")
	}
	if m.ResponseTimeSeconds < 0 {
		return errors.New("response_time_seconds cannot be negative")
	}
	return nil
}
