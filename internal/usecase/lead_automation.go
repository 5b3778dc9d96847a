package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/infra/metrics"
)

// LeadAutomation runs the side effects of a new lead. Either integration
// may be nil when it is not configured.
type LeadAutomation struct {
	CRM       CRM
	Messenger WelcomeMessenger
	log       zerolog.Logger
}

func NewLeadAutomation(crm CRM, messenger WelcomeMessenger, log zerolog.Logger) *LeadAutomation {
	return &LeadAutomation{CRM: crm, Messenger: messenger, log: log}
}

// HandleLeadCreated syncs the lead to the CRM and greets it on WhatsApp
// when it has a phone. Both are attempted; the returned error joins the
// failures.
func (a *LeadAutomation) HandleLeadCreated(ctx context.Context, lead entity.Lead) error {
	log := a.log.With().Str("lead_id", lead.ID).Logger()
	var errs []error

	if a.CRM != nil {
		crmID, err := a.CRM.SyncLead(ctx, lead)
		if err != nil {
			metrics.RecordIntegrationError("kommo")
			errs = append(errs, fmt.Errorf("crm sync: %w", err))
		} else {
			log.Info().Int("crm_id", crmID).Msg("lead synced to crm")
		}
	}

	if a.Messenger != nil && lead.Phone != "" {
		if err := a.Messenger.SendWelcome(ctx, lead.Phone, lead.Name); err != nil {
			metrics.RecordIntegrationError("whatsapp")
			errs = append(errs, fmt.Errorf("whatsapp welcome: %w", err))
		} else {
			log.Info().Msg("whatsapp welcome sent")
		}
	}

	return errors.Join(errs...)
}
