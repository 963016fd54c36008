// Package events publishes scan notifications to an AMQP exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hireup/internal/config"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// RoutingKeyScanCompleted is the routing key of ScanCompleted messages.
const RoutingKeyScanCompleted = "scan.completed"

// ScanCompleted is emitted after a resume analysis has been stored.
type ScanCompleted struct {
	UserID       uuid.UUID `json:"userId"`
	ScanID       uuid.UUID `json:"scanId"`
	FileName     string    `json:"fileName"`
	Score        int       `json:"score"`
	MatchScore   int       `json:"matchScore"`
	PassedChecks int       `json:"passedChecks"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Publisher delivers scan events.
type Publisher interface {
	PublishScanCompleted(ctx context.Context, event ScanCompleted) error
	Close() error
}

// New returns an AMQP publisher, or a no-op publisher when events are
// disabled.
func New(cfg config.EventsConfig) (Publisher, error) {
	if !cfg.Enabled {
		return NopPublisher{}, nil
	}
	return NewAMQPPublisher(cfg.URL, cfg.Exchange)
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) PublishScanCompleted(context.Context, ScanCompleted) error { return nil }
func (NopPublisher) Close() error                                              { return nil }

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON messages to a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex // amqp channels are not safe for concurrent publishing
	ch channel
}

// NewAMQPPublisher dials url and declares exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{conn: conn, exchange: exchange, ch: ch}, nil
}

// PublishScanCompleted sends event with the scan.completed routing key.
func (p *AMQPPublisher) PublishScanCompleted(ctx context.Context, event ScanCompleted) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := scanCompletedMessage(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Publish(p.exchange, RoutingKeyScanCompleted, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish scan event: %w", err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	chErr := p.ch.Close()
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}
	return chErr
}

func scanCompletedMessage(event ScanCompleted) (amqp.Publishing, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode scan event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ScanID.String(),
		Timestamp:    event.OccurredAt,
		Type:         RoutingKeyScanCompleted,
		Body:         body,
	}, nil
}
