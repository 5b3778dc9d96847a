package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/coachflow/internal/infra/cache"
	"github.com/xavierca1/coachflow/internal/infra/database"
	"github.com/xavierca1/coachflow/internal/infra/http/handlers"
	"github.com/xavierca1/coachflow/internal/infra/http/middleware"
	"github.com/xavierca1/coachflow/internal/session"
	"github.com/xavierca1/coachflow/internal/usecase"
)

const (
	jwtSecret = "test-secret-with-enough-length-for-hs256"
	userID    = "user-1"
	ownerID   = "owner-1"
)

type env struct {
	store  *database.MemoryStore
	router http.Handler
	token  string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := zerolog.Nop()
	store := database.NewMemoryStore()
	records := usecase.NewRecords(store, cache.NewMemory(time.Minute), nil, log)
	onboarding := usecase.NewOnboarding(store, log)
	verifier := session.NewVerifier(jwtSecret)
	guard := session.NewGuard(onboarding, time.Minute, log, "/api/session", "/api/onboarding")

	router := handlers.NewRouter(handlers.RouterDeps{
		Log:            log,
		AllowedOrigins: []string{"http://localhost:5173"},
		Verifier:       verifier,
		Guard:          guard,
		PublicLimiter:  middleware.NewRateLimiter(0.001, 2, log),
		Health:         handlers.NewHealthHandler(store, nil, nil, "test"),
		Session:        handlers.NewSessionHandler(verifier, guard, log),
		Onboarding:     handlers.NewOnboardingHandler(onboarding, guard, log),
		Dashboard:      handlers.NewDashboardHandler(usecase.NewDashboard(records, log), log),
		Leads:          handlers.NewLeadHandler(records, log),
		PublicLeads:    handlers.NewPublicLeadHandler(records, ownerID, log),
		Bookings:       handlers.NewBookingHandler(records, log),
		Calls:          handlers.NewCallHandler(records, log),
		Messages:       handlers.NewMessageHandler(records, log),
		Workflows:      handlers.NewWorkflowHandler(records, log),
		Email:          handlers.NewEmailHandler(records, log),
	})

	claims := session.Claims{
		Email: "coach@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{session.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	seed(t, store, "profiles", map[string]any{"id": userID, "onboarding_completed": false})
	return &env{store: store, router: router, token: token}
}

func seed(t *testing.T, store *database.MemoryStore, table string, row map[string]any) {
	t.Helper()
	_, err := store.Insert(context.Background(), table, row, database.Query{})
	require.NoError(t, err)
}

func (e *env) onboard(t *testing.T) {
	seed(t, e.store, "business_profiles", map[string]any{"id": userID, "business_name": "Peak"})
}

func (e *env) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	e := newEnv(t)

	rec := e.do("GET", "/api/dashboard", "", false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decode(t, rec)["error"])
}

func TestOnboardingRedirect(t *testing.T) {
	e := newEnv(t)

	rec := e.do("GET", "/api/leads", "", true)
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ONBOARDING_REQUIRED", body["error"])
	assert.Equal(t, "/business-onboarding", body["redirect"])

	rec = e.do("GET", "/api/session", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "onboarding_incomplete", body["state"])
	assert.Equal(t, "/business-onboarding", body["redirect"])
}

func TestSessionWithoutTokenIsAnonymous(t *testing.T) {
	e := newEnv(t)

	rec := e.do("GET", "/api/session", "", false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unauthenticated", decode(t, rec)["state"])
}

func TestCompleteOnboardingUnlocksDashboard(t *testing.T) {
	e := newEnv(t)

	rec := e.do("POST", "/api/onboarding", `{"business_name":"Peak","business_email":"hi@peak.example","business_niche":"fitness","monthly_clients":10}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "ready", decode(t, rec)["state"])

	rec = e.do("GET", "/api/dashboard", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	leads := decode(t, rec)["leads"].(map[string]any)
	assert.Equal(t, "empty", leads["state"])

	rec = e.do("POST", "/api/onboarding", `{"business_name":"Peak"}`, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateAndListLeads(t *testing.T) {
	e := newEnv(t)
	e.onboard(t)

	rec := e.do("POST", "/api/leads", `{"name":"Ana","email":"ana@example.com","temperature":"hot"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do("GET", "/api/leads", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	records := body["records"].([]any)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana", records[0].(map[string]any)["name"])
	assert.Equal(t, "Website", records[0].(map[string]any)["source_label"])
	assert.Equal(t, "ready", body["section"].(map[string]any)["state"])

	rec = e.do("POST", "/api/leads", `{"name":"","email":"ana@example.com"}`, true)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Equal(t, "name", body["field"])

	rec = e.do("POST", "/api/leads", `{"name":`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackendAccessDenialIsForbidden(t *testing.T) {
	e := newEnv(t)
	e.onboard(t)
	e.store.InsertErr["leads"] = fmt.Errorf("%w: row level security", database.ErrAccessDenied)

	rec := e.do("POST", "/api/leads", `{"name":"Ana","email":"ana@example.com"}`, true)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ACCESS_DENIED", decode(t, rec)["error"])
}

func TestFailedKindDoesNotBlockDashboard(t *testing.T) {
	e := newEnv(t)
	e.onboard(t)
	e.store.ListErr["voice_calls"] = errors.New("connection reset")

	rec := e.do("GET", "/api/dashboard", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "error", body["calls"].(map[string]any)["state"])
	assert.Equal(t, "empty", body["leads"].(map[string]any)["state"])

	rec = e.do("GET", "/api/calls", "", true)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "FETCH_ERROR", decode(t, rec)["error"])
}

func TestBookingStatusTransitions(t *testing.T) {
	e := newEnv(t)
	e.onboard(t)
	seed(t, e.store, "bookings", map[string]any{
		"id": "b-done", "user_id": userID, "client_name": "Jane", "booking_type": "follow_up",
		"scheduled_at": "2026-01-01T10:00:00Z", "duration_minutes": 60, "status": "completed",
	})

	rec := e.do("PATCH", "/api/bookings/b-done", `{"status":"scheduled"}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_TRANSITION", decode(t, rec)["error"])

	rec = e.do("PATCH", "/api/bookings/missing", `{"status":"cancelled"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExports(t *testing.T) {
	e := newEnv(t)
	e.onboard(t)

	rec := e.do("GET", "/api/leads/export.csv", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leads_export_")
	assert.Equal(t, "Name,Email,Phone,Source,Status,Temperature,Created At\n", rec.Body.String())

	rec = e.do("GET", "/api/bookings/export.ics", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "bookings_calendar_")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
}

func TestPublicLeadCaptureIsRateLimited(t *testing.T) {
	e := newEnv(t)
	body := `{"email":"visitor@example.com"}`

	assert.Equal(t, http.StatusOK, e.do("POST", "/public/leads", body, false).Code)
	assert.Equal(t, http.StatusOK, e.do("POST", "/public/leads", body, false).Code)
	assert.Equal(t, http.StatusTooManyRequests, e.do("POST", "/public/leads", body, false).Code)

	assert.Equal(t, 2, e.store.Rows("leads"))
}

func TestHealth(t *testing.T) {
	e := newEnv(t)

	rec := e.do("GET", "/healthz", "", false)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "healthy", deps["database"])
	assert.Equal(t, "not configured", deps["rabbitmq"])
}
