package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/session"
)

type errorBody struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSONError(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Authenticate verifies the bearer token, applies the onboarding guard and
// stores the resolved session on the request context. Guard decisions are
// turned into responses here and nowhere else.
func Authenticate(v *session.Verifier, g *session.Guard, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := v.FromRequest(r)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected request without valid token")
				s = session.Anonymous()
			}

			s, decision := g.Decide(r.Context(), r.URL.Path, s)
			guardDecisions.WithLabelValues(decision.String()).Inc()

			switch decision {
			case session.RequireAuth:
				writeJSONError(w, http.StatusUnauthorized, errorBody{
					Error:    "UNAUTHENTICATED",
					Message:  "Sign in to continue",
					Redirect: "/auth",
				})
				return
			case session.RequireOnboarding:
				writeJSONError(w, http.StatusConflict, errorBody{
					Error:    "ONBOARDING_REQUIRED",
					Redirect: session.OnboardingPath,
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}
