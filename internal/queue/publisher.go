package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher emits notification events to the notifications queue.
// Publishing is best-effort: errors are logged and returned so callers can
// ignore them without interrupting the request that triggered the event.
type Publisher struct {
	url    string
	queue  string
	logger zerolog.Logger
}

func NewPublisher(url, queue string, logger zerolog.Logger) *Publisher {
	return &Publisher{url: url, queue: queue, logger: logger}
}

// Publish wraps the payload in an Envelope and sends it to the
// notifications queue. Each call dials a fresh connection. Messages are
// persistent and the queue is declared durable on every call (idempotent).
func (p *Publisher) Publish(ctx context.Context, pattern string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error().Err(err).Str("pattern", pattern).Msg("queue: marshal payload failed")
		return err
	}
	body, err := json.Marshal(Envelope{Pattern: pattern, Data: data})
	if err != nil {
		p.logger.Error().Err(err).Str("pattern", pattern).Msg("queue: marshal envelope failed")
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Error().Err(err).Msg("queue: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Error().Err(err).Msg("queue: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.logger.Error().Err(err).Msg("queue: declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.logger.Error().Err(err).Str("pattern", pattern).Msg("queue: publish failed")
		return err
	}

	p.logger.Debug().Str("pattern", pattern).Msg("queue: event published")
	return nil
}
