// Package usecase implements the product catalog operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	catalogDomain "github.com/allisson/crm/internal/catalog/domain"
)

// ProductRepository defines persistence operations for products. Every lookup is scoped
// to an organization.
type ProductRepository interface {
	Create(ctx context.Context, product *catalogDomain.Product) error

	// Get returns ErrProductNotFound if the product does not exist in orgID.
	Get(ctx context.Context, orgID, productID uuid.UUID) (*catalogDomain.Product, error)

	List(
		ctx context.Context,
		orgID uuid.UUID,
		filter catalogDomain.ProductFilter,
		offset, limit int,
	) ([]*catalogDomain.Product, error)

	Count(ctx context.Context, orgID uuid.UUID, filter catalogDomain.ProductFilter) (int, error)
}

// PriceRepository defines persistence operations for prices.
type PriceRepository interface {
	Create(ctx context.Context, price *catalogDomain.Price) error

	// Get returns ErrPriceNotFound if the price does not exist in orgID.
	Get(ctx context.Context, orgID, priceID uuid.UUID) (*catalogDomain.Price, error)

	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*catalogDomain.Price, error)
}

// CatalogUseCase covers the catalog routes.
type CatalogUseCase interface {
	// ListProducts returns a page of products and the total matching the filter.
	ListProducts(
		ctx context.Context,
		orgID uuid.UUID,
		filter catalogDomain.ProductFilter,
		offset, limit int,
	) ([]*catalogDomain.Product, int, error)

	// GetProduct returns the product with its prices.
	GetProduct(ctx context.Context, orgID, productID uuid.UUID) (*catalogDomain.Product, error)

	CreateProduct(ctx context.Context, orgID uuid.UUID, name, description string) (*catalogDomain.Product, error)

	// CreatePrice adds a price to an active product of the organization.
	CreatePrice(
		ctx context.Context,
		orgID, productID uuid.UUID,
		amount int64,
		currency string,
	) (*catalogDomain.Price, error)
}
