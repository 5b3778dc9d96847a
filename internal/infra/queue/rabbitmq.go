package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/coachflow/internal/entity"
)

const (
	ExchangeName = "ex.records"
	DLXName      = "ex.records.dlx"
	DLQName      = "q.records.dlq"

	// LeadAutomationQueue is shared by all replicas; each lead is handled once.
	LeadAutomationQueue = "q.lead-automation"

	RoutingKeyPrefix = "record."
	AllRecordsKey    = RoutingKeyPrefix + "#"
)

func RoutingKey(kind entity.Kind) string {
	return RoutingKeyPrefix + kind.String()
}

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare topology: %w", err)
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(DLQName, "#", DLXName, false, nil); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	args := amqp.Table{"x-dead-letter-exchange": DLXName}
	if _, err := ch.QueueDeclare(LeadAutomationQueue, true, false, false, false, args); err != nil {
		return err
	}
	if err := ch.QueueBind(LeadAutomationQueue, RoutingKey(entity.KindLeads), ExchangeName, false, nil); err != nil {
		return err
	}

	return ch.Qos(8, 0, false)
}

// DeclareInvalidationQueue creates this replica's private queue for record
// events. The broker deletes it when the connection goes away.
func (r *RabbitMQ) DeclareInvalidationQueue() (string, error) {
	q, err := r.Ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return "", fmt.Errorf("declare invalidation queue: %w", err)
	}
	if err := r.Ch.QueueBind(q.Name, AllRecordsKey, ExchangeName, false, nil); err != nil {
		return "", fmt.Errorf("bind invalidation queue: %w", err)
	}
	return q.Name, nil
}

func (r *RabbitMQ) Close() {
	if r.Ch != nil {
		r.Ch.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}
