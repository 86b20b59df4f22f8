package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Handler processes one decoded notification event. Implementations must
// swallow their own failures: acknowledgement is never conditioned on
// delivery success.
type Handler interface {
	Handle(pattern string, data []byte)
}

// Consume connects to RabbitMQ, declares the notifications queue (durable)
// and feeds each message to the handler. It runs a reconnect loop with
// exponential backoff and never returns under normal operation; messages
// that cannot even be decoded are rejected without requeue so the loop
// keeps moving.
func Consume(url, queue string, h Handler, logger zerolog.Logger) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn().Err(err).Dur("retry_in", backoff).Msg("notifier: failed to dial broker")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, queue, h, logger); err != nil {
			logger.Warn().Err(err).Msg("notifier: consume loop ended, reconnecting")
			_ = conn.Close()
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, queue string, h Handler, logger zerolog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logger.Warn().Err(err).Msg("notifier: set QoS failed")
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		var env Envelope
		if err := json.Unmarshal(d.Body, &env); err != nil {
			logger.Error().Err(err).Msg("notifier: malformed envelope")
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		h.Handle(env.Pattern, env.Data)
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}
