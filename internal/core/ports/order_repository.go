package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations store the status history and line items with the order.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes of an order loaded in the same transaction.
	// Returns VersionIsInvalidError when the stored version moved since it was read.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	// Every status change goes through it, which serializes operations per order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCreationKey finds the order a customer created with idempotencyKey.
	// Returns ObjectNotFoundError when there is none.
	GetByCreationKey(ctx context.Context, customerID kernel.UUID, idempotencyKey string) (*order.Order, error)

	// GetAgentDeliveries returns the agent's orders in the given statuses.
	GetAgentDeliveries(ctx context.Context, agentID kernel.UUID, statuses ...order.Status) ([]*order.Order, error)

	// CountByCustomer counts orders of a customer that were not rejected or cancelled,
	// excluding exceptID.
	CountByCustomer(ctx context.Context, customerID kernel.UUID, exceptID kernel.UUID) (int64, error)

	// AddDecline records that agentID turned the delivery of orderID down.
	// Recording the same decline again changes nothing.
	AddDecline(ctx context.Context, orderID, agentID kernel.UUID, at time.Time) error
}
