package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/entity"
)

type Invalidator interface {
	Invalidate(ctx context.Context, owner string, kind entity.Kind)
}

type LeadAutomation interface {
	HandleLeadCreated(ctx context.Context, lead entity.Lead) error
}

type Worker struct {
	Channel *amqp.Channel
	log     zerolog.Logger
}

func NewWorker(ch *amqp.Channel, log zerolog.Logger) *Worker {
	return &Worker{Channel: ch, log: log}
}

// RunInvalidation drops cached collections named by record events until
// ctx is cancelled.
func (w *Worker) RunInvalidation(ctx context.Context, queueName string, inv Invalidator) error {
	return w.consume(ctx, queueName, "invalidation", func(ctx context.Context, body []byte) error {
		return HandleInvalidation(ctx, body, inv)
	})
}

// RunLeadAutomation runs CRM sync and welcome messages for new leads.
// Failed deliveries go to the dead letter queue.
func (w *Worker) RunLeadAutomation(ctx context.Context, automation LeadAutomation) error {
	return w.consume(ctx, LeadAutomationQueue, "lead-automation", func(ctx context.Context, body []byte) error {
		return HandleLeadCreated(ctx, body, automation)
	})
}

func (w *Worker) consume(ctx context.Context, queueName, consumer string, handle func(context.Context, []byte) error) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx, queueName, consumer, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queueName, err)
	}

	log := w.log.With().Str("queue", queueName).Logger()
	log.Info().Msg("worker waiting for messages")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := handle(ctx, d.Body); err != nil {
				log.Error().Err(err).Str("routing_key", d.RoutingKey).Str("message_id", d.MessageId).Msg("message rejected")
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

func HandleInvalidation(ctx context.Context, body []byte, inv Invalidator) error {
	var ev RecordEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode record event: %w", err)
	}
	if ev.Owner == "" || ev.Kind == "" {
		return fmt.Errorf("record event %s without owner or kind", ev.ID)
	}
	inv.Invalidate(ctx, ev.Owner, ev.Kind)
	return nil
}

func HandleLeadCreated(ctx context.Context, body []byte, automation LeadAutomation) error {
	var ev RecordEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode record event: %w", err)
	}
	if ev.Kind != entity.KindLeads {
		return nil
	}

	var lead entity.Lead
	if err := json.Unmarshal(ev.Record, &lead); err != nil {
		return fmt.Errorf("decode lead: %w", err)
	}
	return automation.HandleLeadCreated(ctx, lead)
}
