package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env         string `envconfig:"ENV" default:"production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"coachflow-api"`
	Port        string `envconfig:"PORT" default:"8080"`

	// Backend. One of SupabaseURL or DatabaseURL must be set; the REST
	// backend wins when both are.
	SupabaseURL       string `envconfig:"SUPABASE_URL"`
	SupabaseKey       string `envconfig:"SUPABASE_ANON_KEY"`
	SupabaseJWTSecret string `envconfig:"SUPABASE_JWT_SECRET" required:"true"`
	DatabaseURL       string `envconfig:"DATABASE_URL"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`

	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"30s"`
	ProfileCacheTTL time.Duration `envconfig:"PROFILE_CACHE_TTL" default:"15s"`
	RedisURL        string        `envconfig:"REDIS_URL"`

	PublicRateLimit float64 `envconfig:"PUBLIC_RATE_LIMIT" default:"0.2"`
	PublicRateBurst int     `envconfig:"PUBLIC_RATE_BURST" default:"5"`
	// PublicOwnerID owns leads captured from the marketing site.
	PublicOwnerID string `envconfig:"PUBLIC_OWNER_ID"`

	RabbitMQURL string `envconfig:"RABBITMQ_URL"`

	MailHost string `envconfig:"MAIL_HOST"`
	MailPort int    `envconfig:"MAIL_PORT" default:"587"`
	MailUser string `envconfig:"MAIL_USER"`
	MailPass string `envconfig:"MAIL_PASS"`
	MailFrom string `envconfig:"MAIL_FROM" default:"no-reply@coachflow.app"`

	EmailQueueInterval time.Duration `envconfig:"EMAIL_QUEUE_INTERVAL" default:"1m"`
	EmailQueueBatch    int           `envconfig:"EMAIL_QUEUE_BATCH" default:"100"`

	WhatsAppToken    string `envconfig:"WHATSAPP_TOKEN"`
	WhatsAppPhoneID  string `envconfig:"WHATSAPP_PHONE_ID"`
	WhatsAppTemplate string `envconfig:"WHATSAPP_WELCOME_TEMPLATE" default:"coachflow_welcome"`

	KommoDomain   string `envconfig:"KOMMO_DOMAIN"`
	KommoToken    string `envconfig:"KOMMO_TOKEN"`
	KommoPipeline int    `envconfig:"KOMMO_PIPELINE_ID"`
	KommoStatus   int    `envconfig:"KOMMO_STATUS_ID"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.SupabaseURL == "" && c.DatabaseURL == "" {
		return errors.New("config: SUPABASE_URL or DATABASE_URL is required")
	}
	if c.SupabaseURL != "" && c.SupabaseKey == "" {
		return errors.New("config: SUPABASE_ANON_KEY is required with SUPABASE_URL")
	}
	if c.EmailQueueBatch <= 0 {
		return errors.New("config: EMAIL_QUEUE_BATCH must be positive")
	}
	return nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) MailEnabled() bool     { return c.MailHost != "" }
func (c Config) WhatsAppEnabled() bool { return c.WhatsAppToken != "" && c.WhatsAppPhoneID != "" }
func (c Config) KommoEnabled() bool    { return c.KommoDomain != "" && c.KommoToken != "" }
