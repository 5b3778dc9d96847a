package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger tagged with the service name. Development gets a
// colored console writer; every other env logs JSON to stderr.
func New(serviceName, env, logLevel string) zerolog.Logger {
	var logger zerolog.Logger

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		level = zerolog.InfoLevel
		log.Warn().Msgf("invalid LOG_LEVEL %q, falling back to info", logLevel)
	}

	zerolog.TimeFieldFormat = time.RFC3339

	if env == "development" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		logger = zerolog.New(output).With().Timestamp().Str("service", serviceName).Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", serviceName).Logger()
	}

	return logger.Level(level)
}
