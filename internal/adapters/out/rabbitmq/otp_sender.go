// Package rabbitmq hands OTP codes to the notification service over a topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "laundry_notifications"

	publishTimeout = 5 * time.Second
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// OtpMessage is the body consumed by the notification service.
type OtpMessage struct {
	OrderID       string    `json:"order_id"`
	Kind          string    `json:"kind"`
	Code          string    `json:"code"`
	RecipientID   string    `json:"recipient_id"`
	RecipientRole string    `json:"recipient_role"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// OtpSender publishes one persistent message per issued code with the routing
// key otp.<recipient role>.<kind>, for example otp.customer.pickup.
type OtpSender struct {
	channel  publisher
	exchange string
}

var _ ports.OtpSender = (*OtpSender)(nil)

// NewOtpSender opens a channel on conn and declares the durable topic exchange.
func NewOtpSender(conn *amqp.Connection, exchange string) (*OtpSender, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &OtpSender{channel: ch, exchange: exchange}, nil
}

func (s *OtpSender) Send(ctx context.Context, n ports.OtpNotification) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	body, err := json.Marshal(OtpMessage{
		OrderID:       n.OrderID.String(),
		Kind:          n.Kind,
		Code:          n.Code,
		RecipientID:   n.RecipientID.String(),
		RecipientRole: n.RecipientRole.String(),
		ExpiresAt:     n.ExpiresAt,
	})
	if err != nil {
		return err
	}

	err = s.channel.PublishWithContext(
		ctx,
		s.exchange,
		RoutingKey(n),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Expiration:   expiration(n.ExpiresAt),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s otp for order %s: %w", n.Kind, n.OrderID, err)
	}
	return nil
}

// RoutingKey returns otp.<role>.<kind> in lower case.
func RoutingKey(n ports.OtpNotification) string {
	return strings.ToLower("otp." + n.RecipientRole.String() + "." + n.Kind)
}

// expiration drops the message from queues once the code is useless.
func expiration(expiresAt time.Time) string {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return "0"
	}
	return fmt.Sprint(ttl.Milliseconds())
}

// Close releases the channel. The connection stays open.
func (s *OtpSender) Close() error {
	return s.channel.Close()
}
