package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"talent-pipeline/domain"
)

const publishTimeout = 5 * time.Second

// RabbitMQ publishes pipeline events to a durable queue and consumes them in the worker.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	log     *zap.Logger
}

// NewRabbitMQ dials url and declares the durable event queue.
func NewRabbitMQ(url, queue string, log *zap.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring queue %s: %w", queue, err)
	}

	log.Info("connected to rabbitmq", zap.String("queue", q.Name))
	return &RabbitMQ{conn: conn, channel: ch, queue: q, log: log}, nil
}

// Publish sends e as a persistent JSON message.
func (r *RabbitMQ) Publish(ctx context.Context, e domain.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return r.channel.PublishWithContext(
		ctx,
		"",           // exchange
		r.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(e.Type),
			Timestamp:    e.OccurredAt,
			Body:         body,
		},
	)
}

// Consume delivers events to handler until ctx is cancelled or the channel
// closes. Messages are acked after handler returns nil; undecodable messages
// are dropped, failed ones are requeued once.
func (r *RabbitMQ) Consume(ctx context.Context, handler func(context.Context, domain.Event) error) error {
	msgs, err := r.channel.ConsumeWithContext(
		ctx,
		r.queue.Name,
		"",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("registering consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			var e domain.Event
			if err := json.Unmarshal(d.Body, &e); err != nil {
				r.log.Warn("dropping invalid event", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			if err := handler(ctx, e); err != nil {
				r.log.Warn("event handler failed", zap.String("type", string(e.Type)), zap.Error(err))
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Close shuts the channel and connection.
func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}

// NoopPublisher drops events. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.Event) error { return nil }
