package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/infra/http/middleware"
	"github.com/xavierca1/coachflow/internal/session"
)

type RouterDeps struct {
	Log            zerolog.Logger
	AllowedOrigins []string
	Verifier       *session.Verifier
	Guard          *session.Guard
	PublicLimiter  *middleware.RateLimiter

	Health      *HealthHandler
	Session     *SessionHandler
	Onboarding  *OnboardingHandler
	Dashboard   *DashboardHandler
	Leads       *LeadHandler
	PublicLeads *PublicLeadHandler
	Bookings    *BookingHandler
	Calls       *CallHandler
	Messages    *MessageHandler
	Workflows   *WorkflowHandler
	Email       *EmailHandler
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", d.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.With(d.PublicLimiter.Handler).Post("/public/leads", d.PublicLeads.Capture)

	r.Get("/api/session", d.Session.Handle)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Verifier, d.Guard, d.Log))

		r.Post("/onboarding", d.Onboarding.Handle)

		r.Get("/dashboard", d.Dashboard.Overview)
		r.Get("/dashboard/charts", d.Dashboard.Charts)

		r.Get("/leads", d.Leads.List)
		r.Post("/leads", d.Leads.Create)
		r.Get("/leads/export.csv", d.Leads.ExportCSV)
		r.Patch("/leads/{id}", d.Leads.Update)

		r.Get("/bookings", d.Bookings.List)
		r.Post("/bookings", d.Bookings.Create)
		r.Get("/bookings/export.ics", d.Bookings.ExportICS)
		r.Patch("/bookings/{id}", d.Bookings.Update)

		r.Get("/calls", d.Calls.List)

		r.Get("/messages", d.Messages.List)
		r.Post("/messages", d.Messages.Create)

		r.Get("/workflows", d.Workflows.List)
		r.Post("/workflows", d.Workflows.Create)
		r.Patch("/workflows/{id}", d.Workflows.Update)

		r.Get("/email", d.Email.Get)
		r.Post("/email/templates", d.Email.CreateTemplate)
		r.Patch("/email/templates/{id}", d.Email.ToggleTemplate)
		r.Post("/email/campaigns", d.Email.CreateCampaign)
		r.Post("/email/rules", d.Email.CreateRule)
		r.Patch("/email/rules/{id}", d.Email.ToggleRule)
	})

	return r
}
