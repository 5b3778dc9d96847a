package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/config"
	"github.com/xavierca1/coachflow/internal/infra/cache"
	"github.com/xavierca1/coachflow/internal/infra/database"
	"github.com/xavierca1/coachflow/internal/infra/http/handlers"
	"github.com/xavierca1/coachflow/internal/infra/http/middleware"
	"github.com/xavierca1/coachflow/internal/infra/integration/kommo"
	"github.com/xavierca1/coachflow/internal/infra/integration/whatsapp"
	"github.com/xavierca1/coachflow/internal/infra/mail"
	"github.com/xavierca1/coachflow/internal/infra/queue"
	"github.com/xavierca1/coachflow/internal/infra/supabase"
	"github.com/xavierca1/coachflow/internal/infra/worker"
	"github.com/xavierca1/coachflow/internal/logger"
	"github.com/xavierca1/coachflow/internal/obs"
	"github.com/xavierca1/coachflow/internal/session"
	"github.com/xavierca1/coachflow/internal/usecase"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, cfg.ServiceName, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("tracer init failed")
	}

	// 1. Store
	var store database.Store
	if cfg.SupabaseURL != "" {
		store = supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
		log.Info().Str("backend", "supabase").Msg("store ready")
	} else {
		db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		defer db.Close()
		store = database.NewSQLStore(db)
		log.Info().Str("backend", "postgres").Msg("store ready")
	}

	// 2. Cache
	var (
		queryCache  cache.QueryCache
		memoryCache *cache.Memory
		rdb         *redis.Client
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		queryCache = cache.NewRedis(rdb, cfg.CacheTTL, log)
	} else {
		memoryCache = cache.NewMemory(cfg.CacheTTL)
		queryCache = memoryCache
	}

	// 3. Messaging
	var (
		mq     *queue.RabbitMQ
		events usecase.EventPublisher
	)
	if cfg.RabbitMQURL != "" {
		mq, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq connection failed")
		}
		defer mq.Close()
		events = queue.NewProducer(mq.Ch)
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, record events disabled")
	}

	// 4. Use cases
	records := usecase.NewRecords(store, queryCache, events, log)
	dashboard := usecase.NewDashboard(records, log)
	onboarding := usecase.NewOnboarding(store, log)

	verifier := session.NewVerifier(cfg.SupabaseJWTSecret)
	guard := session.NewGuard(onboarding, cfg.ProfileCacheTTL, log, "/api/session", "/api/onboarding")
	limiter := middleware.NewRateLimiter(cfg.PublicRateLimit, cfg.PublicRateBurst, log)

	// 5. Workers
	if mq != nil {
		w := queue.NewWorker(mq.Ch, log)

		invalidationQueue, err := mq.DeclareInvalidationQueue()
		if err != nil {
			log.Fatal().Err(err).Msg("invalidation queue setup failed")
		}
		go func() {
			if err := w.RunInvalidation(ctx, invalidationQueue, records); err != nil {
				log.Error().Err(err).Msg("invalidation worker stopped")
			}
		}()

		var (
			crm       usecase.CRM
			messenger usecase.WelcomeMessenger
		)
		if cfg.KommoEnabled() {
			crm = kommo.NewClient(cfg.KommoDomain, cfg.KommoToken, cfg.KommoPipeline, cfg.KommoStatus)
		}
		if cfg.WhatsAppEnabled() {
			messenger = mail.NewWhatsAppSender(whatsapp.NewClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneID), cfg.WhatsAppTemplate)
		}
		if crm != nil || messenger != nil {
			automation := usecase.NewLeadAutomation(crm, messenger, log)
			go func() {
				if err := w.RunLeadAutomation(ctx, automation); err != nil {
					log.Error().Err(err).Msg("lead automation worker stopped")
				}
			}()
		}
	}

	if cfg.MailEnabled() {
		sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
		delivery := usecase.NewEmailDelivery(store, sender, cfg.EmailQueueBatch, records.Invalidate, log)
		go worker.NewEmailQueueWorker(delivery, cfg.EmailQueueInterval, log).Start(ctx)
	}

	tasks := []worker.Task{
		{Name: "rate_limit_buckets", Run: func() int { return limiter.Cleanup(10 * time.Minute) }},
		{Name: "onboarding_ready_cache", Run: guard.Sweep},
	}
	if memoryCache != nil {
		tasks = append(tasks, worker.Task{Name: "query_cache", Run: memoryCache.Sweep})
	}
	go worker.NewMaintenanceWorker(time.Minute, log, tasks...).Start(ctx)

	// 6. Router
	health := handlers.NewHealthHandler(store, nil, rdb, version)
	if mq != nil {
		health.RabbitMQ = mq.Conn
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
		Verifier:       verifier,
		Guard:          guard,
		PublicLimiter:  limiter,
		Health:         health,
		Session:        handlers.NewSessionHandler(verifier, guard, log),
		Onboarding:     handlers.NewOnboardingHandler(onboarding, guard, log),
		Dashboard:      handlers.NewDashboardHandler(dashboard, log),
		Leads:          handlers.NewLeadHandler(records, log),
		PublicLeads:    handlers.NewPublicLeadHandler(records, cfg.PublicOwnerID, log),
		Bookings:       handlers.NewBookingHandler(records, log),
		Calls:          handlers.NewCallHandler(records, log),
		Messages:       handlers.NewMessageHandler(records, log),
		Workflows:      handlers.NewWorkflowHandler(records, log),
		Email:          handlers.NewEmailHandler(records, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("coachflow api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown")
	}
}
