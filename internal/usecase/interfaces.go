package usecase

import (
	"context"

	"github.com/xavierca1/coachflow/internal/entity"
)

// EventPublisher announces stored records to the automation side.
type EventPublisher interface {
	PublishRecordCreated(ctx context.Context, kind entity.Kind, owner string, record any) error
}

// Mailer delivers one email over SMTP.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// CRM mirrors new leads into the external pipeline.
type CRM interface {
	SyncLead(ctx context.Context, lead entity.Lead) (int, error)
}

// WelcomeMessenger sends the first WhatsApp contact to a new lead.
type WelcomeMessenger interface {
	SendWelcome(ctx context.Context, phone, name string) error
}
