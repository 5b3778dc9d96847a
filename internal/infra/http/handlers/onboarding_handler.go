package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/session"
	"github.com/xavierca1/coachflow/internal/usecase"
)

type readyMarker interface {
	MarkReady(userID string)
}

type OnboardingHandler struct {
	Onboarding *usecase.Onboarding
	Guard      readyMarker
	Log        zerolog.Logger
}

func NewOnboardingHandler(o *usecase.Onboarding, guard readyMarker, log zerolog.Logger) *OnboardingHandler {
	return &OnboardingHandler{Onboarding: o, Guard: guard, Log: log}
}

func (h *OnboardingHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.OnboardingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	s := session.FromContext(r.Context())
	profile, err := h.Onboarding.Complete(r.Context(), s.Principal(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.Guard.MarkReady(s.UserID)

	writeJSON(w, http.StatusCreated, map[string]any{
		"profile":  profile,
		"state":    session.Ready,
		"redirect": "/dashboard",
	})
}
