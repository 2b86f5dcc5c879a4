package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CatalogItem is a priced service of a provider, e.g. "Shirt - wash & iron".
type CatalogItem struct {
	ID    kernel.UUID
	Name  string
	Price decimal.Decimal
}

// CatalogRepository reads the provider catalog. The catalog is owned by
// another service; this one never writes it.
type CatalogRepository interface {
	// ProviderExists reports whether the service provider is listed.
	ProviderExists(ctx context.Context, providerID kernel.UUID) (bool, error)

	// GetItems returns the provider's items among ids, keyed by item ID.
	// Unknown IDs are absent from the result.
	GetItems(ctx context.Context, providerID kernel.UUID, ids []kernel.UUID) (map[kernel.UUID]CatalogItem, error)
}
