package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/kernel"
)

// AvailabilityRepository stores delivery agent availability windows.
type AvailabilityRepository interface {
	// LockAgentDays serializes writers of the agent's days until the transaction ends.
	LockAgentDays(ctx context.Context, agentID kernel.UUID, dates ...time.Time) error

	Add(ctx context.Context, window *availability.Window) error
	Update(ctx context.Context, window *availability.Window) error
	Delete(ctx context.Context, id kernel.UUID) error

	// Get returns the window or ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*availability.Window, error)

	// ListByAgent returns the agent's windows with from <= date <= to, ordered by date and start.
	ListByAgent(ctx context.Context, agentID kernel.UUID, from, to time.Time) ([]*availability.Window, error)
}
