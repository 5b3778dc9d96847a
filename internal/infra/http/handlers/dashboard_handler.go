package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/presenter"
	"github.com/xavierca1/coachflow/internal/session"
	"github.com/xavierca1/coachflow/internal/usecase"
)

type DashboardHandler struct {
	Dashboard *usecase.Dashboard
	Log       zerolog.Logger
}

func NewDashboardHandler(d *usecase.Dashboard, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{Dashboard: d, Log: log}
}

// Overview always answers 200; failed kinds show up as error sections.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	snap := h.Dashboard.Load(r.Context(), s.Principal())
	writeJSON(w, http.StatusOK, presenter.BuildOverview(snap))
}

func (h *DashboardHandler) Charts(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	snap := h.Dashboard.Load(r.Context(), s.Principal())
	writeJSON(w, http.StatusOK, presenter.BuildCharts(snap))
}
