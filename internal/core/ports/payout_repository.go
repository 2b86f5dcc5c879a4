package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/payout"
)

// PayoutRepository stores the payout ledger. Entries are unique per order.
type PayoutRepository interface {
	// Add inserts an entry. A second entry for the same order is a ConflictError.
	Add(ctx context.Context, entry *payout.Entry) error

	// MarkPaid persists the paid flag and paidAt of the entry.
	MarkPaid(ctx context.Context, entry *payout.Entry) error

	// Get returns the entry or ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*payout.Entry, error)

	// GetByOrder returns the entry of an order or ObjectNotFoundError.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*payout.Entry, error)
}
