// Package payoutrepo persists the delivery agent payout ledger.
package payoutrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/payout"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryDTO is one ledger row. The unique order index keeps a single entry per delivered order.
type EntryDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AgentID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	DeliveryEarning decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Charge          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	FinalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsPaid          bool            `gorm:"not null;default:false"`
	PaidAt          *time.Time
	CreatedAt       time.Time `gorm:"not null;index"`
}

func (EntryDTO) TableName() string {
	return "payout_entries"
}

func fromDomain(e *payout.Entry) EntryDTO {
	return EntryDTO{
		ID:              e.ID().Bytes(),
		AgentID:         e.AgentID().Bytes(),
		OrderID:         e.OrderID().Bytes(),
		DeliveryEarning: e.DeliveryEarning(),
		Charge:          e.Charge(),
		FinalAmount:     e.FinalAmount(),
		IsPaid:          e.IsPaid(),
		PaidAt:          e.PaidAt(),
		CreatedAt:       e.CreatedAt(),
	}
}

func toDomain(dto EntryDTO) (*payout.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	return payout.RestoreEntry(id, agentID, orderID, dto.DeliveryEarning, dto.Charge, dto.FinalAmount,
		dto.PaidAt, dto.CreatedAt)
}
