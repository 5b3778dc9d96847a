package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/infra/database"
	"github.com/xavierca1/coachflow/internal/infra/metrics"
)

// EmailDelivery drains the email queue across all owners.
type EmailDelivery struct {
	queue      *database.Repository[entity.QueuedEmail]
	mailer     Mailer
	batch      int
	invalidate func(ctx context.Context, owner string, kind entity.Kind)
	log        zerolog.Logger
	now        func() time.Time
}

func NewEmailDelivery(store database.Store, mailer Mailer, batch int, invalidate func(context.Context, string, entity.Kind), log zerolog.Logger) *EmailDelivery {
	return &EmailDelivery{
		queue:      database.NewRepository[entity.QueuedEmail](store, entity.KindEmailQueue),
		mailer:     mailer,
		batch:      batch,
		invalidate: invalidate,
		log:        log,
		now:        time.Now,
	}
}

// DeliverPending sends up to one batch of queued emails, oldest first, and
// marks each sent or failed. The error is only for failing to read the
// queue; per-email failures are recorded on the row.
func (d *EmailDelivery) DeliverPending(ctx context.Context) (sent, failed int, err error) {
	pending, err := d.queue.List(ctx, database.Query{
		AllOwners: true,
		Filters:   map[string]string{"status": entity.EmailQueued},
		OrderBy:   "created_at",
		Ascending: true,
		Limit:     d.batch,
	})
	if err != nil {
		return 0, 0, &FetchError{Kind: entity.KindEmailQueue, Op: "list", Err: err}
	}

	owners := map[string]struct{}{}
	for _, e := range pending {
		patch := map[string]any{}
		if sendErr := d.mailer.Send(ctx, e.ToEmail, e.Subject, e.Body); sendErr != nil {
			patch["status"] = entity.EmailFailed
			patch["error"] = sendErr.Error()
			failed++
			metrics.RecordEmail(entity.EmailFailed)
			d.log.Warn().Err(sendErr).Str("email_id", e.ID).Msg("queued email failed")
		} else {
			patch["status"] = entity.EmailSent
			patch["sent_at"] = d.now().UTC().Format(time.RFC3339)
			sent++
			metrics.RecordEmail(entity.EmailSent)
		}

		if _, err := d.queue.Update(ctx, e.ID, patch, database.Query{AllOwners: true}); err != nil {
			d.log.Error().Err(err).Str("email_id", e.ID).Msg("could not record email outcome")
		}
		owners[e.UserID] = struct{}{}
	}

	if d.invalidate != nil {
		for owner := range owners {
			d.invalidate(ctx, owner, entity.KindEmailQueue)
		}
	}
	return sent, failed, nil
}
