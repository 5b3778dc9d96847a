package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/aggregate"
	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/export"
	"github.com/xavierca1/coachflow/internal/presenter"
	"github.com/xavierca1/coachflow/internal/session"
	"github.com/xavierca1/coachflow/internal/usecase"
)

type listResponse struct {
	Records any               `json:"records"`
	Section presenter.Section `json:"section"`
}

type LeadHandler struct {
	Records *usecase.Records
	Log     zerolog.Logger
	now     func() time.Time
}

func NewLeadHandler(records *usecase.Records, log zerolog.Logger) *LeadHandler {
	return &LeadHandler{Records: records, Log: log, now: time.Now}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Records.Leads.List(r.Context(), session.FromContext(r.Context()).Principal())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	sum := aggregate.SummarizeLeads(leads)
	writeJSON(w, http.StatusOK, listResponse{
		Records: presenter.LeadViews(leads, h.now()),
		Section: presenter.List(entity.KindLeads, len(leads), sum, presenter.LeadCards(sum)),
	})
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.Records.CreateLead(r.Context(), session.FromContext(r.Context()).Principal(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.Records.UpdateLead(r.Context(), session.FromContext(r.Context()).Principal(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Records.Leads.List(r.Context(), session.FromContext(r.Context()).Principal())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteLeadsCSV(&buf, leads); err != nil {
		writeError(w, h.Log, err)
		return
	}
	attachment(w, export.CSVContentType, export.LeadsFilename(h.now()))
	w.Write(buf.Bytes())
}

// PublicLeadHandler takes leads from the marketing site on behalf of the
// account owner. Rate limiting is applied by middleware.
type PublicLeadHandler struct {
	Records *usecase.Records
	OwnerID string
	Log     zerolog.Logger
}

func NewPublicLeadHandler(records *usecase.Records, ownerID string, log zerolog.Logger) *PublicLeadHandler {
	return &PublicLeadHandler{Records: records, OwnerID: ownerID, Log: log}
}

type CaptureLeadRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (h *PublicLeadHandler) Capture(w http.ResponseWriter, r *http.Request) {
	if h.OwnerID == "" {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "Lead capture is not enabled")
		return
	}

	var req CaptureLeadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name, _, _ = strings.Cut(req.Email, "@")
	}

	owner := usecase.Principal{UserID: h.OwnerID}
	_, err := h.Records.CreateLead(r.Context(), owner, usecase.CreateLeadInput{
		Name:        name,
		Email:       req.Email,
		Phone:       req.Phone,
		Source:      entity.LeadSourceWebsite,
		Temperature: entity.TemperatureWarm,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, CaptureLeadResponse{Success: true})
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
}
