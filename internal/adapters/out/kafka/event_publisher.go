// Package kafka publishes stored domain events to Kafka.
package kafka

import (
	"context"
	"fmt"
	"time"

	"laundry/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	// DefaultOrderEventsTopic receives order status events.
	DefaultOrderEventsTopic = "laundry.order-events"

	headerEventType = "event-type"
	headerEventID   = "event-id"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventPublisher writes outbox messages to one topic keyed by aggregate ID,
// so all events of an order land in the same partition in order.
type EventPublisher struct {
	writer messageWriter
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher creates a publisher writing to topic on brokers.
// Writes are synchronous and wait for all in-sync replicas.
func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return newEventPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	})
}

func newEventPublisher(writer messageWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish writes messages in one batch. Either the whole batch is acknowledged
// or an error is returned and the caller retries it.
func (p *EventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: headerEventType, Value: []byte(m.Type)},
				{Key: headerEventID, Value: []byte(m.ID.String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("failed to write %d events to kafka: %w", len(batch), err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
