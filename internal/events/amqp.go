// Package events delivers deal and wallet notifications over RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dealdeskhq/dealdesk/pkg/deal"
	"github.com/dealdeskhq/dealdesk/pkg/wallet"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// AMQPPublisher implements deal.EventPublisher over a topic exchange. The
// event kind doubles as the routing key.
type AMQPPublisher struct {
	channel  *amqp.Channel
	conn     *amqp.Connection
	exchange string
	logger   *zap.Logger
}

// NewAMQPPublisher dials the broker and declares the exchange. Close releases
// the connection.
func NewAMQPPublisher(url string, exchange string, logger *zap.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	return &AMQPPublisher{channel: channel, conn: conn, exchange: exchange, logger: logger}, nil
}

// Publish sends one event. Failures are logged and returned; callers treat
// delivery as best-effort.
func (publisher *AMQPPublisher) Publish(ctx context.Context, event deal.Event) error {
	return publisher.publish(event.Kind, event, zap.String("application_id", event.ApplicationID))
}

// WalletEvents returns the wallet-typed view over the same channel and
// exchange, for wiring into wallet.WithEventPublisher.
func (publisher *AMQPPublisher) WalletEvents() *WalletPublisher {
	return (*WalletPublisher)(publisher)
}

// WalletPublisher implements wallet.EventPublisher over the shared connection.
type WalletPublisher AMQPPublisher

// Publish sends one wallet event, best-effort like the deal path.
func (publisher *WalletPublisher) Publish(ctx context.Context, event wallet.Event) error {
	return (*AMQPPublisher)(publisher).publish(event.Kind, event, zap.String("transaction_id", event.TransactionID))
}

func (publisher *AMQPPublisher) publish(kind string, event any, subject zap.Field) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	err = publisher.channel.Publish(
		publisher.exchange,
		kind,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		publisher.logger.Warn("event publish failed",
			zap.String("kind", kind),
			subject,
			zap.Error(err),
		)
		return fmt.Errorf("publish event %q: %w", kind, err)
	}
	return nil
}

// Close shuts the channel and the connection.
func (publisher *AMQPPublisher) Close() error {
	if publisher.channel != nil {
		publisher.channel.Close()
	}
	if publisher.conn != nil {
		return publisher.conn.Close()
	}
	return nil
}
