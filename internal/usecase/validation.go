package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/xavierca1/coachflow/internal/entity"
)

// ValidationError is a write refused either by local checks or by the
// backend. Field is empty when the refusal is not tied to one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var nonDigits = regexp.MustCompile(`\D`)

// invalid folds field errors into a single ValidationError.
func invalid(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return &errs[0]
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return &ValidationError{Field: errs[0].Field, Message: strings.Join(parts, "; ")}
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if input.Temperature != "" && !entity.ValidTemperature(input.Temperature) {
		errors = append(errors, ValidationError{"temperature", "must be hot, warm or cold"})
	}

	return errors
}

func ValidateCreateBookingInput(input CreateBookingInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.ClientName) == "" {
		errors = append(errors, ValidationError{"client_name", "is required"})
	}
	if input.ClientEmail != "" {
		if _, err := mail.ParseAddress(input.ClientEmail); err != nil {
			errors = append(errors, ValidationError{"client_email", "is invalid"})
		}
	}
	if strings.TrimSpace(input.BookingType) == "" {
		errors = append(errors, ValidationError{"booking_type", "is required"})
	}
	if strings.TrimSpace(input.ScheduledAt) == "" {
		errors = append(errors, ValidationError{"scheduled_at", "is required"})
	} else if _, err := parseTimestamp(input.ScheduledAt); err != nil {
		errors = append(errors, ValidationError{"scheduled_at", "must be a valid ISO8601 datetime"})
	}
	if input.DurationMinutes < 0 {
		errors = append(errors, ValidationError{"duration_minutes", "must be positive"})
	}

	return errors
}

func ValidateCreateMessageInput(input CreateMessageInput) []ValidationError {
	var errors []ValidationError

	if input.Platform == "" {
		errors = append(errors, ValidationError{"platform", "is required"})
	}
	if input.MessageType == "" {
		errors = append(errors, ValidationError{"message_type", "is required"})
	}
	if strings.TrimSpace(input.Content) == "" {
		errors = append(errors, ValidationError{"content", "is required"})
	}

	return errors
}

func ValidateOnboardingInput(input OnboardingInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.BusinessName) == "" {
		errors = append(errors, ValidationError{"business_name", "is required"})
	}
	if strings.TrimSpace(input.BusinessEmail) == "" {
		errors = append(errors, ValidationError{"business_email", "is required"})
	} else if _, err := mail.ParseAddress(input.BusinessEmail); err != nil {
		errors = append(errors, ValidationError{"business_email", "is invalid"})
	}
	if input.PhoneNumber != "" && !isValidPhoneNumber(input.PhoneNumber) {
		errors = append(errors, ValidationError{"phone_number", "must be a valid phone number"})
	}
	if input.WhatsAppNumber != "" && !isValidPhoneNumber(input.WhatsAppNumber) {
		errors = append(errors, ValidationError{"whatsapp_number", "must be a valid phone number"})
	}
	if strings.TrimSpace(input.BusinessNiche) == "" {
		errors = append(errors, ValidationError{"business_niche", "is required"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 8 && len(cleaned) <= 15
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", s)
}
