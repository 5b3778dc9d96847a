package entity

import (
	"errors"
	"strings"
	"time"
)

const (
	WorkflowActive = "active"
	WorkflowPaused = "paused"
	WorkflowFailed = "failed"
)

// Workflow is an automated action sequence. SuccessRate is computed by the
// automation engine and only displayed here.
type Workflow struct {
	ID           string     `json:"id,omitempty"`
	UserID       string     `json:"user_id,omitempty"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	TriggerType  string     `json:"trigger_type"`
	ActionsCount int        `json:"actions_count"`
	SuccessRate  float64    `json:"success_rate"`
	LastRunAt    *time.Time `json:"last_run_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at,omitzero"`
}

func NewWorkflow(name, description, triggerType string, actions int) (*Workflow, error) {
	w := &Workflow{
		Name:         strings.TrimSpace(name),
		Description:  description,
		TriggerType:  strings.TrimSpace(triggerType),
		ActionsCount: actions,
		Status:       WorkflowActive,
	}
	if w.Name == "" {
		return nil, errors.New("name is required")
	}
	if w.TriggerType == "" {
		return nil, errors.New("trigger_type is required")
	}
	if w.ActionsCount < 0 {
		return nil, errors.New("actions_count cannot be negative")
	}
	return w, nil
}

// ValidWorkflowTransition allows pausing and resuming from the dashboard.
// Failed is set by the engine only.
func ValidWorkflowTransition(status string) bool {
	return status == WorkflowActive || status == WorkflowPaused
}
