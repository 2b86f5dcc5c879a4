// Package otprepo persists the one-time password challenge of each order.
// Only the bcrypt hash of a code is stored.
package otprepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/otp"

	"github.com/google/uuid"
)

// ChallengeDTO is keyed by order: issuing a new code replaces the previous challenge.
type ChallengeDTO struct {
	OrderID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind       string     `gorm:"type:varchar(16);not null"`
	CodeHash   []byte     `gorm:"type:bytea;not null"`
	IssuedAt   time.Time  `gorm:"not null"`
	ExpiresAt  time.Time  `gorm:"not null;index"`
	ConsumedAt *time.Time `gorm:"index"`
}

func (ChallengeDTO) TableName() string {
	return "otp_challenges"
}

func fromDomain(c *otp.Challenge) ChallengeDTO {
	return ChallengeDTO{
		OrderID:    c.OrderID().Bytes(),
		Kind:       c.Kind().String(),
		CodeHash:   c.CodeHash(),
		IssuedAt:   c.IssuedAt(),
		ExpiresAt:  c.ExpiresAt(),
		ConsumedAt: c.ConsumedAt(),
	}
}

func toDomain(dto ChallengeDTO) (*otp.Challenge, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	kind, err := otp.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}
	return otp.RestoreChallenge(orderID, kind, dto.CodeHash, dto.IssuedAt, dto.ExpiresAt, dto.ConsumedAt)
}
