package storage

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/events"
)

// AMQPChannel is the subset of *amqp.Channel used for publishing.
type AMQPChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher sends notifications to a fanout exchange consumed by kitchen display screens.
type AMQPPublisher struct {
	Channel  AMQPChannel
	Exchange string
}

func NewAMQPPublisher(ch AMQPChannel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{Channel: ch, Exchange: exchange}
}

func (p *AMQPPublisher) Name() string { return "amqp" }

func (p *AMQPPublisher) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return p.Channel.PublishWithContext(ctx,
		p.Exchange, // exchange
		n.Type,     // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: n.CorrelationID,
			Type:          n.Type,
			Timestamp:     n.OccurredAt,
			Body:          payload,
		})
}

var _ events.Sink = (*AMQPPublisher)(nil)
