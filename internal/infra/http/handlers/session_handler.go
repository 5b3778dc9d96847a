package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/session"
)

type SessionHandler struct {
	Verifier *session.Verifier
	Guard    *session.Guard
	Log      zerolog.Logger
}

func NewSessionHandler(v *session.Verifier, g *session.Guard, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{Verifier: v, Guard: g, Log: log}
}

type SessionResponse struct {
	session.Session
	Redirect string `json:"redirect,omitempty"`
}

// Handle reports where the caller is in the session lifecycle. It never
// fails: a missing or bad token reads as unauthenticated.
func (h *SessionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	s, err := h.Verifier.FromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusOK, SessionResponse{Session: session.Anonymous(), Redirect: "/auth"})
		return
	}

	s, err = h.Guard.Resolve(r.Context(), s)
	if err != nil {
		h.Log.Warn().Err(err).Str("user_id", s.UserID).Msg("could not resolve onboarding state")
	}

	resp := SessionResponse{Session: s}
	if s.State == session.OnboardingIncomplete {
		resp.Redirect = session.OnboardingPath
	}
	writeJSON(w, http.StatusOK, resp)
}
