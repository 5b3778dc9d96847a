package entity

import (
	"errors"
	"strings"
	"time"
)

const (
	BookingStatusScheduled = "scheduled"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

const (
	BookingTypeDiscovery = "discovery_call"
	BookingTypeCoaching  = "coaching_session"
	BookingTypeFollowUp  = "follow_up"
	BookingTypeGroup     = "group_session"
	BookingTypeOther     = "other"
)

const DefaultBookingMinutes = 60

var bookingTypes = []string{BookingTypeDiscovery, BookingTypeCoaching, BookingTypeFollowUp, BookingTypeGroup, BookingTypeOther}

type Booking struct {
	ID              string    `json:"id,omitempty"`
	UserID          string    `json:"user_id,omitempty"`
	LeadID          string    `json:"lead_id,omitempty"`
	ClientName      string    `json:"client_name"`
	ClientEmail     string    `json:"client_email,omitempty"`
	BookingType     string    `json:"booking_type"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitzero"`
}

func NewBooking(clientName, clientEmail, bookingType string, scheduledAt time.Time, durationMinutes int) (*Booking, error) {
	b := &Booking{
		ClientName:      strings.TrimSpace(clientName),
		ClientEmail:     strings.TrimSpace(clientEmail),
		BookingType:     bookingType,
		ScheduledAt:     scheduledAt.UTC(),
		DurationMinutes: durationMinutes,
		Status:          BookingStatusScheduled,
	}
	if b.DurationMinutes == 0 {
		b.DurationMinutes = DefaultBookingMinutes
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Booking) Validate() error {
	if b.ClientName == "" {
		return errors.New("client_name is required")
	}
	if !oneOf(b.BookingType, bookingTypes) {
		return errors.New("booking_type is invalid")
	}
	if b.ScheduledAt.IsZero() {
		return errors.New("scheduled_at is required")
	}
	if b.DurationMinutes <= 0 {
		return errors.New("duration_minutes must be positive")
	}
	return nil
}

// EndsAt is the start plus the booked duration.
func (b *Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsTerminal reports whether the booking can no longer change status.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

func ValidBookingStatus(s string) bool {
	return oneOf(s, []string{BookingStatusScheduled, BookingStatusCompleted, BookingStatusCancelled})
}
