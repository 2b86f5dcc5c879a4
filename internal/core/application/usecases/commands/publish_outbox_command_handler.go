package commands

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
)

// DefaultOutboxBatchSize bounds the messages published per run.
const DefaultOutboxBatchSize = 100

// PublishOutboxCommandHandler forwards stored domain events to the broker.
// Messages are marked published only after the broker accepted them, so
// delivery is at least once.
type PublishOutboxCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
	batchSize  int
}

func NewPublishOutboxCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
	batchSize int,
) PublishOutboxCommandHandler {
	if batchSize <= 0 {
		batchSize = DefaultOutboxBatchSize
	}
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		batchSize:  batchSize,
	}
}

// Handle publishes one batch and returns how many messages went out.
func (h *PublishOutboxCommandHandler) Handle(ctx context.Context) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.ListUnpublished(ctx, h.batchSize)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err = outbox.MarkPublished(ctx, ids, h.clock.Now()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(messages), nil
}
