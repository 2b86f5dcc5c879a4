package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// OtpNotification carries a plain OTP code to the participant who holds it.
type OtpNotification struct {
	OrderID       kernel.UUID
	Kind          string
	Code          string
	RecipientID   kernel.UUID
	RecipientRole kernel.Role
	ExpiresAt     time.Time
}

// OtpSender delivers OTP codes out of band (push, SMS). Codes are never returned
// to HTTP callers.
type OtpSender interface {
	Send(ctx context.Context, n OtpNotification) error
}

// OtpCodeGenerator produces fresh OTP codes.
type OtpCodeGenerator interface {
	Generate() (string, error)
}

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}
