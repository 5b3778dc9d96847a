package entity

import "time"

const (
	CallStatusCompleted  = "completed"
	CallStatusFailed     = "failed"
	CallStatusInProgress = "in_progress"
)

// VoiceCall is a call handled by the voice agent. Calls are only read here.
type VoiceCall struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id,omitempty"`
	CallerPhone      string    `json:"caller_phone"`
	DurationSeconds  int       `json:"duration_seconds"`
	Status           string    `json:"status"`
	ResolutionStatus string    `json:"resolution_status,omitempty"`
	Summary          string    `json:"summary,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
