// Package catalogrepo reads service providers and their priced items.
// The tables are owned by the catalog service and replicated into this database.
package catalogrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProviderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Active bool      `gorm:"not null;default:true"`
}

func (ProviderDTO) TableName() string {
	return "service_providers"
}

type ItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProviderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ItemDTO) TableName() string {
	return "catalog_items"
}
