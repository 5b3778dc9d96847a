package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/coachflow/internal/aggregate"
	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/infra/cache"
	"github.com/xavierca1/coachflow/internal/infra/database"
)

// EmailQueueLimit is how many queue rows the email dashboard shows.
const EmailQueueLimit = 100

// Records is the per-kind record service behind the dashboard.
type Records struct {
	Leads          *Collection[entity.Lead]
	Bookings       *Collection[entity.Booking]
	Calls          *Collection[entity.VoiceCall]
	Messages       *Collection[entity.Message]
	Workflows      *Collection[entity.Workflow]
	EmailTemplates *Collection[entity.EmailTemplate]
	EmailCampaigns *Collection[entity.EmailCampaign]
	EmailRules     *Collection[entity.EmailRule]
	EmailQueue     *Collection[entity.QueuedEmail]

	invalidators map[entity.Kind]func(context.Context, string)
}

func NewRecords(store database.Store, qc cache.QueryCache, events EventPublisher, log zerolog.Logger) *Records {
	r := &Records{
		Leads:          NewCollection[entity.Lead](store, entity.KindLeads, qc, events, log),
		Bookings:       NewCollection[entity.Booking](store, entity.KindBookings, qc, events, log),
		Calls:          NewCollection[entity.VoiceCall](store, entity.KindVoiceCalls, qc, events, log),
		Messages:       NewCollection[entity.Message](store, entity.KindMessages, qc, events, log),
		Workflows:      NewCollection[entity.Workflow](store, entity.KindWorkflows, qc, events, log),
		EmailTemplates: NewCollection[entity.EmailTemplate](store, entity.KindEmailTemplates, qc, events, log),
		EmailCampaigns: NewCollection[entity.EmailCampaign](store, entity.KindEmailCampaigns, qc, events, log),
		EmailRules:     NewCollection[entity.EmailRule](store, entity.KindEmailRules, qc, events, log),
		EmailQueue:     NewCollection[entity.QueuedEmail](store, entity.KindEmailQueue, qc, events, log).WithLimit(EmailQueueLimit),
	}
	r.invalidators = map[entity.Kind]func(context.Context, string){
		entity.KindLeads:          r.Leads.Invalidate,
		entity.KindBookings:       r.Bookings.Invalidate,
		entity.KindVoiceCalls:     r.Calls.Invalidate,
		entity.KindMessages:       r.Messages.Invalidate,
		entity.KindWorkflows:      r.Workflows.Invalidate,
		entity.KindEmailTemplates: r.EmailTemplates.Invalidate,
		entity.KindEmailCampaigns: r.EmailCampaigns.Invalidate,
		entity.KindEmailRules:     r.EmailRules.Invalidate,
		entity.KindEmailQueue:     r.EmailQueue.Invalidate,
	}
	return r
}

// Invalidate drops the owner's cached collection of kind. Unknown kinds are
// ignored.
func (r *Records) Invalidate(ctx context.Context, owner string, kind entity.Kind) {
	if fn, ok := r.invalidators[kind]; ok {
		fn(ctx, owner)
	}
}

func (r *Records) CreateLead(ctx context.Context, p Principal, input CreateLeadInput) (*entity.Lead, error) {
	if err := invalid(ValidateCreateLeadInput(input)); err != nil {
		return nil, err
	}
	lead, err := entity.NewLead(input.Name, input.Email, input.Phone, input.Source, input.Temperature)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	lead.Notes = input.Notes
	lead.UserID = p.UserID
	return r.Leads.Create(ctx, p, lead)
}

// UpdateLead changes status and/or temperature. Stage order is not
// enforced; any known stage may follow any other.
func (r *Records) UpdateLead(ctx context.Context, p Principal, id string, input UpdateLeadInput) (*entity.Lead, error) {
	patch := map[string]any{}
	if input.Status != nil {
		if !entity.ValidLeadStatus(*input.Status) {
			return nil, &ValidationError{Field: "status", Message: "must be new, contacted, qualified or converted"}
		}
		patch["status"] = *input.Status
	}
	if input.Temperature != nil {
		if !entity.ValidTemperature(*input.Temperature) {
			return nil, &ValidationError{Field: "temperature", Message: "must be hot, warm or cold"}
		}
		patch["temperature"] = *input.Temperature
	}
	if len(patch) == 0 {
		return nil, &ValidationError{Message: "nothing to update"}
	}
	return r.Leads.Update(ctx, p, id, patch)
}

func (r *Records) CreateBooking(ctx context.Context, p Principal, input CreateBookingInput) (*entity.Booking, error) {
	if err := invalid(ValidateCreateBookingInput(input)); err != nil {
		return nil, err
	}
	at, _ := parseTimestamp(input.ScheduledAt)
	booking, err := entity.NewBooking(input.ClientName, input.ClientEmail, input.BookingType, at, input.DurationMinutes)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	booking.LeadID = input.LeadID
	booking.Notes = input.Notes
	booking.UserID = p.UserID
	return r.Bookings.Create(ctx, p, booking)
}

// UpdateBooking moves a scheduled booking to a new status. Completed and
// cancelled bookings are final.
func (r *Records) UpdateBooking(ctx context.Context, p Principal, id string, input UpdateBookingInput) (*entity.Booking, error) {
	if !entity.ValidBookingStatus(input.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be scheduled, completed or cancelled"}
	}
	current, err := r.Bookings.Find(ctx, p, id, func(b entity.Booking) string { return b.ID })
	if err != nil {
		return nil, err
	}
	if current.IsTerminal() && current.Status != input.Status {
		return nil, &DomainError{Code: CodeInvalidTransition, Message: "booking is already " + current.Status}
	}
	return r.Bookings.Update(ctx, p, id, map[string]any{"status": input.Status})
}

func (r *Records) CreateMessage(ctx context.Context, p Principal, input CreateMessageInput) (*entity.Message, error) {
	if err := invalid(ValidateCreateMessageInput(input)); err != nil {
		return nil, err
	}
	msg, err := entity.NewMessage(input.Platform, input.MessageType, input.Content, input.IsAutomated)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	msg.LeadID = input.LeadID
	msg.SenderName = input.SenderName
	msg.UserID = p.UserID
	return r.Messages.Create(ctx, p, msg)
}

func (r *Records) CreateWorkflow(ctx context.Context, p Principal, input CreateWorkflowInput) (*entity.Workflow, error) {
	wf, err := entity.NewWorkflow(input.Name, input.Description, input.TriggerType, input.ActionsCount)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	wf.UserID = p.UserID
	return r.Workflows.Create(ctx, p, wf)
}

// UpdateWorkflow pauses or resumes a workflow.
func (r *Records) UpdateWorkflow(ctx context.Context, p Principal, id string, input UpdateWorkflowInput) (*entity.Workflow, error) {
	if !entity.ValidWorkflowTransition(input.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be active or paused"}
	}
	return r.Workflows.Update(ctx, p, id, map[string]any{"status": input.Status})
}

func (r *Records) CreateEmailTemplate(ctx context.Context, p Principal, input CreateEmailTemplateInput) (*entity.EmailTemplate, error) {
	t, err := entity.NewEmailTemplate(input.Name, input.Subject, input.Body, input.TemplateType)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	t.UserID = p.UserID
	return r.EmailTemplates.Create(ctx, p, t)
}

func (r *Records) CreateEmailCampaign(ctx context.Context, p Principal, input CreateEmailCampaignInput) (*entity.EmailCampaign, error) {
	var at *time.Time
	if input.ScheduledAt != nil && *input.ScheduledAt != "" {
		t, err := parseTimestamp(*input.ScheduledAt)
		if err != nil {
			return nil, &ValidationError{Field: "scheduled_at", Message: "must be a valid ISO8601 datetime"}
		}
		at = &t
	}
	c, err := entity.NewEmailCampaign(input.Name, input.TemplateID, at)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	c.UserID = p.UserID
	return r.EmailCampaigns.Create(ctx, p, c)
}

func (r *Records) CreateEmailRule(ctx context.Context, p Principal, input CreateEmailRuleInput) (*entity.EmailRule, error) {
	rule, err := entity.NewEmailRule(input.Name, input.TriggerType, input.TemplateID, input.DelayMinutes)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	rule.UserID = p.UserID
	return r.EmailRules.Create(ctx, p, rule)
}

func (r *Records) ToggleEmailRule(ctx context.Context, p Principal, id string, input ToggleInput) (*entity.EmailRule, error) {
	return r.EmailRules.Update(ctx, p, id, map[string]any{"active": input.Active})
}

func (r *Records) ToggleEmailTemplate(ctx context.Context, p Principal, id string, input ToggleInput) (*entity.EmailTemplate, error) {
	return r.EmailTemplates.Update(ctx, p, id, map[string]any{"active": input.Active})
}

// Email loads the four email collections concurrently. The first failure
// fails the whole load since the email page renders them together.
func (r *Records) Email(ctx context.Context, p Principal) (aggregate.EmailData, error) {
	var d aggregate.EmailData
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { d.Templates, err = r.EmailTemplates.List(ctx, p); return })
	g.Go(func() (err error) { d.Campaigns, err = r.EmailCampaigns.List(ctx, p); return })
	g.Go(func() (err error) { d.Rules, err = r.EmailRules.List(ctx, p); return })
	g.Go(func() (err error) { d.Queue, err = r.EmailQueue.List(ctx, p); return })

	if err := g.Wait(); err != nil {
		return aggregate.EmailData{}, err
	}
	return d, nil
}
