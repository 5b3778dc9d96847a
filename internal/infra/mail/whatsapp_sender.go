package mail

import (
	"context"
	"strings"

	"github.com/xavierca1/coachflow/internal/infra/integration/whatsapp"
)

type templateSender interface {
	SendTemplate(ctx context.Context, input whatsapp.SendTemplateInput) (string, error)
}

// WhatsAppSender greets new leads with the approved welcome template.
type WhatsAppSender struct {
	client   templateSender
	template string
}

func NewWhatsAppSender(client templateSender, template string) *WhatsAppSender {
	return &WhatsAppSender{client: client, template: template}
}

func (s *WhatsAppSender) SendWelcome(ctx context.Context, phone, name string) error {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return nil
	}

	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	_, err := s.client.SendTemplate(ctx, whatsapp.SendTemplateInput{
		PhoneNumber:  digits,
		TemplateName: s.template,
		Parameters:   []string{first},
	})
	return err
}
