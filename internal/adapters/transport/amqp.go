package transport

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

// AMQP mirrors deliveries to a topic exchange, routed by campaign, so
// downstream consumers can bind per campaign type.
type AMQP struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

var _ domain.Transport = (*AMQP)(nil)

// NewAMQP dials the broker and declares the exchange.
func NewAMQP(url, exchange string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQP{conn: conn, ch: ch, exchange: exchange}, nil
}

// Deliver publishes a JSON envelope with the campaign as routing key.
func (t *AMQP) Deliver(ctx context.Context, sub domain.Subscription, payload domain.NotificationPayload) error {
	env := newEnvelope(sub, payload)
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	pub := amqp.Publishing{
		ContentType: "application/json",
		MessageId:   env.ID,
		Timestamp:   env.SentAt,
		Body:        raw,
	}
	if err := t.ch.PublishWithContext(ctx, t.exchange, string(payload.Campaign), false, false, pub); err != nil {
		return fmt.Errorf("publish envelope: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (t *AMQP) Close() error {
	if err := t.ch.Close(); err != nil {
		t.conn.Close()
		return err
	}
	return t.conn.Close()
}
