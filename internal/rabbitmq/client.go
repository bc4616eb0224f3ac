package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/TextForge/internal/config"
	"github.com/GoArmGo/TextForge/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client is the RabbitMQ connection used by the archive pipeline. It
// implements both ports.ArchivePublisher and ports.ArchiveConsumer.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient dials RabbitMQ and declares the archive queue.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening RabbitMQ channel: %w", err)
	}

	q, err := channel.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring queue %q: %w", cfg.RabbitMQ.RabbitMQQueueName, err)
	}

	logger.Info("RabbitMQ queue declared", "queue", q.Name, "messages", q.Messages)

	return &Client{conn: conn, channel: channel, queue: q, logger: logger}, nil
}

// Close shuts down the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ connection", "error", err)
			return err
		}
	}
	return nil
}

// PublishGenerationArchive publishes one transcript to the archive queue.
func (c *Client) PublishGenerationArchive(ctx context.Context, payload payloads.GenerationArchivePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling archive payload: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing archive message: %w", err)
	}

	c.logger.Debug("archive message published", "queue", c.queue.Name, "event_id", payload.EventID)
	return nil
}

// StartConsumingGenerationArchives registers a consumer on the archive queue
// and dispatches every message to handler. Messages are acked only after the
// handler succeeds; failures are requeued, malformed bodies are dropped.
func (c *Client) StartConsumingGenerationArchives(ctx context.Context, handler func(context.Context, payloads.GenerationArchivePayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("registering consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ channel closed, stopping consumer")
					return
				}

				var payload payloads.GenerationArchivePayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					c.logger.Error("failed to unmarshal archive message", "error", err)
					// Bad format will not get better on redelivery; drop it.
					if err := msg.Nack(false, false); err != nil {
						c.logger.Error("failed to nack malformed message", "error", err)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					c.logger.Error("failed to process archive message", "event_id", payload.EventID, "error", err)
					if err := msg.Nack(false, true); err != nil {
						c.logger.Error("failed to nack message", "error", err)
					}
				} else {
					if err := msg.Ack(false); err != nil {
						c.logger.Error("failed to ack message", "error", err)
					}
				}
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}
