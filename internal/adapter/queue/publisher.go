// Package queue publishes domain events to RabbitMQ. Each event type has
// its own durable queue on the default exchange.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"paylite-backend/internal/domain/event"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var _ event.Publisher = (*Publisher)(nil)

// Publisher holds one broker connection and opens a short-lived channel
// per message. It redials once if the connection has dropped.
type Publisher struct {
	url  string
	log  *zap.Logger
	mu   sync.Mutex
	conn *amqp.Connection
}

func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	p := &Publisher{url: url, log: log}
	if _, err := p.connection(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connection() (*amqp.Connection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn, nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	p.conn = conn
	return conn, nil
}

func (p *Publisher) Publish(ctx context.Context, e event.Envelope) error {
	msg, err := encode(e)
	if err != nil {
		return err
	}
	conn, err := p.connection()
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(e.Type, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq declare %s: %w", e.Type, err)
	}
	if err := ch.PublishWithContext(ctx, "", e.Type, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", e.Type, err)
	}
	p.log.Debug("event published", zap.String("queue", e.Type))
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

// encode builds a persistent JSON message for e.
func encode(e event.Envelope) (amqp.Publishing, error) {
	if e.Type == "" {
		return amqp.Publishing{}, fmt.Errorf("event type is empty")
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode %s: %w", e.Type, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.OccurredAt,
		Type:         e.Type,
		Body:         body,
	}, nil
}
