package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event stored in the same transaction as the
// change that raised it, waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	Type        string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges pending outbox messages.
type OutboxRepository interface {
	// ListUnpublished returns up to limit messages in occurrence order,
	// locked so that concurrent publishers skip them.
	ListUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps messages as published at the given instant.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
