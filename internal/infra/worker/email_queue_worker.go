package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Deliverer interface {
	DeliverPending(ctx context.Context) (sent, failed int, err error)
}

// EmailQueueWorker drains the email queue on a fixed interval.
type EmailQueueWorker struct {
	delivery     Deliverer
	tickInterval time.Duration
	log          zerolog.Logger
}

func NewEmailQueueWorker(d Deliverer, interval time.Duration, log zerolog.Logger) *EmailQueueWorker {
	return &EmailQueueWorker{
		delivery:     d,
		tickInterval: interval,
		log:          log.With().Str("worker", "email_queue").Logger(),
	}
}

// Start runs one pass immediately and then one per tick until ctx ends.
func (w *EmailQueueWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.tickInterval).Msg("email queue worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("email queue worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w *EmailQueueWorker) RunOnce(ctx context.Context) {
	sent, failed, err := w.delivery.DeliverPending(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("could not read email queue")
		return
	}
	if sent+failed > 0 {
		w.log.Info().Int("sent", sent).Int("failed", failed).Msg("email queue drained")
	}
}
