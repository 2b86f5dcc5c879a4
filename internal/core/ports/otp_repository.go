package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/otp"
)

// OtpRepository stores the single challenge of each order.
type OtpRepository interface {
	// Save inserts the challenge or replaces the one stored for its order.
	Save(ctx context.Context, challenge *otp.Challenge) error

	// Get returns the order's challenge or ObjectNotFoundError.
	Get(ctx context.Context, orderID kernel.UUID) (*otp.Challenge, error)

	// DeleteStale removes challenges consumed or expired before the given instant.
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
