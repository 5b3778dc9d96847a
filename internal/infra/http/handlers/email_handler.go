package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/aggregate"
	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/presenter"
	"github.com/xavierca1/coachflow/internal/session"
	"github.com/xavierca1/coachflow/internal/usecase"
)

type EmailHandler struct {
	Records *usecase.Records
	Log     zerolog.Logger
}

func NewEmailHandler(records *usecase.Records, log zerolog.Logger) *EmailHandler {
	return &EmailHandler{Records: records, Log: log}
}

type EmailResponse struct {
	Templates []entity.EmailTemplate `json:"templates"`
	Campaigns []presenter.CampaignView `json:"campaigns"`
	Rules     []entity.EmailRule     `json:"rules"`
	Queue     []entity.QueuedEmail   `json:"queue"`
	Summary   aggregate.EmailSummary `json:"summary"`
	Cards     []presenter.StatCard   `json:"cards"`
}

func (h *EmailHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.Records.Email(r.Context(), session.FromContext(r.Context()).Principal())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	sum := aggregate.SummarizeEmail(data)
	writeJSON(w, http.StatusOK, EmailResponse{
		Templates: data.Templates,
		Campaigns: presenter.CampaignViews(data.Campaigns),
		Rules:     data.Rules,
		Queue:     data.Queue,
		Summary:   sum,
		Cards:     presenter.EmailCards(sum),
	})
}

func (h *EmailHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateEmailTemplateInput
	if !decodeJSON(w, r, &input) {
		return
	}
	t, err := h.Records.CreateEmailTemplate(r.Context(), session.FromContext(r.Context()).Principal(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *EmailHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateEmailCampaignInput
	if !decodeJSON(w, r, &input) {
		return
	}
	c, err := h.Records.CreateEmailCampaign(r.Context(), session.FromContext(r.Context()).Principal(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *EmailHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateEmailRuleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	rule, err := h.Records.CreateEmailRule(r.Context(), session.FromContext(r.Context()).Principal(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

func (h *EmailHandler) ToggleTemplate(w http.ResponseWriter, r *http.Request) {
	var input usecase.ToggleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	t, err := h.Records.ToggleEmailTemplate(r.Context(), session.FromContext(r.Context()).Principal(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *EmailHandler) ToggleRule(w http.ResponseWriter, r *http.Request) {
	var input usecase.ToggleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	rule, err := h.Records.ToggleEmailRule(r.Context(), session.FromContext(r.Context()).Principal(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}
