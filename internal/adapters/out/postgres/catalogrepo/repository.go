package catalogrepo

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// ProviderExists reports whether an active provider with the ID is listed.
func (r *GormCatalogRepository) ProviderExists(ctx context.Context, providerID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ProviderDTO{}).
		Where("id = ? AND active", providerID.Bytes()).
		Count(&count).Error
	return count > 0, err
}

func (r *GormCatalogRepository) GetItems(
	ctx context.Context,
	providerID kernel.UUID,
	ids []kernel.UUID,
) (map[kernel.UUID]ports.CatalogItem, error) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	var dtos []ItemDTO
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND id = ANY(?::uuid[])", providerID.Bytes(), pq.Array(raw)).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make(map[kernel.UUID]ports.CatalogItem, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		items[id] = ports.CatalogItem{ID: id, Name: dto.Name, Price: dto.Price}
	}
	return items, nil
}
