package entity

import (
	"errors"
	"strings"
	"time"
)

var ErrProfileNotFound = errors.New("business profile not found")

// BusinessProfile is the one-time onboarding record. Its ID is the owner's
// user id.
type BusinessProfile struct {
	ID                  string    `json:"id"`
	BusinessName        string    `json:"business_name"`
	BusinessEmail       string    `json:"business_email"`
	PhoneNumber         string    `json:"phone_number,omitempty"`
	WhatsAppNumber      string    `json:"whatsapp_number,omitempty"`
	BusinessNiche       string    `json:"business_niche"`
	MonthlyClients      int       `json:"monthly_clients,omitempty"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at,omitzero"`
}

func NewBusinessProfile(userID, name, email, phone, whatsapp, niche string, monthlyClients int) (*BusinessProfile, error) {
	p := &BusinessProfile{
		ID:                  userID,
		BusinessName:        strings.TrimSpace(name),
		BusinessEmail:       strings.TrimSpace(email),
		PhoneNumber:         strings.TrimSpace(phone),
		WhatsAppNumber:      strings.TrimSpace(whatsapp),
		BusinessNiche:       niche,
		MonthlyClients:      monthlyClients,
		OnboardingCompleted: true,
	}
	if p.ID == "" {
		return nil, errors.New("user id is required")
	}
	if p.BusinessName == "" {
		return nil, errors.New("business_name is required")
	}
	if p.BusinessEmail == "" {
		return nil, errors.New("business_email is required")
	}
	if p.BusinessNiche == "" {
		return nil, errors.New("business_niche is required")
	}
	if p.MonthlyClients < 0 {
		return nil, errors.New("monthly_clients cannot be negative")
	}
	return p, nil
}
