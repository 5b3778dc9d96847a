package usecase

// Principal is the authenticated caller a request acts for.
type Principal struct {
	UserID      string
	Email       string
	AccessToken string
}

type CreateLeadInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Source      string `json:"source"`
	Temperature string `json:"temperature"`
	Notes       string `json:"notes"`
}

type UpdateLeadInput struct {
	Status      *string `json:"status"`
	Temperature *string `json:"temperature"`
}

type CreateBookingInput struct {
	LeadID          string `json:"lead_id"`
	ClientName      string `json:"client_name"`
	ClientEmail     string `json:"client_email"`
	BookingType     string `json:"booking_type"`
	ScheduledAt     string `json:"scheduled_at"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

type UpdateBookingInput struct {
	Status string `json:"status"`
}

type CreateMessageInput struct {
	LeadID      string `json:"lead_id"`
	Platform    string `json:"platform"`
	MessageType string `json:"message_type"`
	SenderName  string `json:"sender_name"`
	Content     string `json:"content"`
	IsAutomated bool   `json:"is_automated"`
}

type CreateWorkflowInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TriggerType  string `json:"trigger_type"`
	ActionsCount int    `json:"actions_count"`
}

type UpdateWorkflowInput struct {
	Status string `json:"status"`
}

type CreateEmailTemplateInput struct {
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	TemplateType string `json:"template_type"`
}

type CreateEmailCampaignInput struct {
	Name        string  `json:"name"`
	TemplateID  string  `json:"template_id"`
	ScheduledAt *string `json:"scheduled_at"`
}

type CreateEmailRuleInput struct {
	Name         string `json:"name"`
	TriggerType  string `json:"trigger_type"`
	TemplateID   string `json:"template_id"`
	DelayMinutes int    `json:"delay_minutes"`
}

type ToggleInput struct {
	Active bool `json:"active"`
}

type OnboardingInput struct {
	BusinessName   string `json:"business_name"`
	BusinessEmail  string `json:"business_email"`
	PhoneNumber    string `json:"phone_number"`
	WhatsAppNumber string `json:"whatsapp_number"`
	BusinessNiche  string `json:"business_niche"`
	MonthlyClients int    `json:"monthly_clients"`
}
