// Package outboxrepo stores domain events written in the same transaction as
// the aggregate that raised them and hands them to the publisher.
package outboxrepo

import (
	"encoding/json"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageDTO is an outbox row. PublishedAt stays NULL until the publisher acknowledges it.
type MessageDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type        string         `gorm:"type:varchar(64);not null"`
	Payload     datatypes.JSON `gorm:"not null"`
	OccurredAt  time.Time      `gorm:"not null;index"`
	PublishedAt *time.Time     `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// FromEvent serializes a domain event into an outbox row.
func FromEvent(event kernel.DomainEvent) (MessageDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return MessageDTO{}, err
	}
	return MessageDTO{
		ID:          event.EventID().Bytes(),
		AggregateID: event.AggregateID().Bytes(),
		Type:        event.EventName(),
		Payload:     datatypes.JSON(payload),
		OccurredAt:  event.OccurredAt(),
	}, nil
}

func toPort(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		Type:        dto.Type,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt,
	}, nil
}
