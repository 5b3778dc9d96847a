package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/coachflow/internal/entity"
)

// RecordEvent announces that a record was stored.
type RecordEvent struct {
	ID         string          `json:"id"`
	Kind       entity.Kind     `json:"kind"`
	Owner      string          `json:"owner"`
	Record     json.RawMessage `json:"record"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Producer struct {
	ch  channel
	now func() time.Time
}

func NewProducer(ch channel) *Producer {
	return &Producer{ch: ch, now: time.Now}
}

func (p *Producer) PublishRecordCreated(ctx context.Context, kind entity.Kind, owner string, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	ev := RecordEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		Owner:      owner,
		Record:     raw,
		OccurredAt: p.now().UTC(),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey(kind),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    ev.ID,
			Timestamp:    ev.OccurredAt,
			Type:         "record.created",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s event: %w", kind, err)
	}
	return nil
}
