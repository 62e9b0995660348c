package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogDomain "github.com/allisson/crm/internal/catalog/domain"
	"github.com/allisson/crm/internal/metrics"
)

// catalogUseCaseWithMetrics decorates CatalogUseCase with metrics instrumentation.
type catalogUseCaseWithMetrics struct {
	next    CatalogUseCase
	metrics metrics.BusinessMetrics
}

// NewCatalogUseCaseWithMetrics wraps a CatalogUseCase with metrics recording.
func NewCatalogUseCaseWithMetrics(next CatalogUseCase, m metrics.BusinessMetrics) CatalogUseCase {
	return &catalogUseCaseWithMetrics{next: next, metrics: m}
}

func (u *catalogUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, u.metrics, "catalog", operation, start, metrics.StatusFromError(err))
}

func (u *catalogUseCaseWithMetrics) ListProducts(
	ctx context.Context,
	orgID uuid.UUID,
	filter catalogDomain.ProductFilter,
	offset, limit int,
) ([]*catalogDomain.Product, int, error) {
	start := time.Now()
	products, total, err := u.next.ListProducts(ctx, orgID, filter, offset, limit)
	u.record(ctx, "product_list", start, err)
	return products, total, err
}

func (u *catalogUseCaseWithMetrics) GetProduct(
	ctx context.Context,
	orgID, productID uuid.UUID,
) (*catalogDomain.Product, error) {
	start := time.Now()
	product, err := u.next.GetProduct(ctx, orgID, productID)
	u.record(ctx, "product_get", start, err)
	return product, err
}

func (u *catalogUseCaseWithMetrics) CreateProduct(
	ctx context.Context,
	orgID uuid.UUID,
	name, description string,
) (*catalogDomain.Product, error) {
	start := time.Now()
	product, err := u.next.CreateProduct(ctx, orgID, name, description)
	u.record(ctx, "product_create", start, err)
	return product, err
}

func (u *catalogUseCaseWithMetrics) CreatePrice(
	ctx context.Context,
	orgID, productID uuid.UUID,
	amount int64,
	currency string,
) (*catalogDomain.Price, error) {
	start := time.Now()
	price, err := u.next.CreatePrice(ctx, orgID, productID, amount, currency)
	u.record(ctx, "price_create", start, err)
	return price, err
}
