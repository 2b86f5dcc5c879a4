// Package availabilityrepo persists delivery agent availability windows.
package availabilityrepo

import (
	"time"

	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WindowDTO stores the calendar date and the wall-clock bounds of a window separately.
// A holiday row keeps zero bounds.
type WindowDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AgentID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_availability_agent_date"`
	Date      datatypes.Date `gorm:"not null;index:idx_availability_agent_date"`
	IsHoliday bool           `gorm:"not null"`
	StartTime datatypes.Time `gorm:"not null"`
	EndTime   datatypes.Time `gorm:"not null"`
}

func (WindowDTO) TableName() string {
	return "availability_windows"
}

func fromDomain(w *availability.Window) WindowDTO {
	return WindowDTO{
		ID:        w.ID().Bytes(),
		AgentID:   w.AgentID().Bytes(),
		Date:      datatypes.Date(w.Date()),
		IsHoliday: w.IsHoliday(),
		StartTime: datatypes.Time(w.Start()),
		EndTime:   datatypes.Time(w.End()),
	}
}

func toDomain(dto WindowDTO) (*availability.Window, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}
	return availability.NewWindow(id, agentID, availability.DateOf(time.Time(dto.Date)), dto.IsHoliday,
		time.Duration(dto.StartTime), time.Duration(dto.EndTime))
}
