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

type WorkflowHandler struct {
	Records *usecase.Records
	Log     zerolog.Logger
}

func NewWorkflowHandler(records *usecase.Records, log zerolog.Logger) *WorkflowHandler {
	return &WorkflowHandler{Records: records, Log: log}
}

func (h *WorkflowHandler) List(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.Records.Workflows.List(r.Context(), session.FromContext(r.Context()).Principal())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	sum := aggregate.SummarizeWorkflows(workflows)
	writeJSON(w, http.StatusOK, listResponse{
		Records: workflows,
		Section: presenter.List(entity.KindWorkflows, len(workflows), sum, presenter.WorkflowCards(sum)),
	})
}

func (h *WorkflowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateWorkflowInput
	if !decodeJSON(w, r, &input) {
		return
	}

	wf, err := h.Records.CreateWorkflow(r.Context(), session.FromContext(r.Context()).Principal(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, wf)
}

// Update pauses or resumes a workflow.
func (h *WorkflowHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateWorkflowInput
	if !decodeJSON(w, r, &input) {
		return
	}

	wf, err := h.Records.UpdateWorkflow(r.Context(), session.FromContext(r.Context()).Principal(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, wf)
}
