package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogDomain "github.com/allisson/crm/internal/catalog/domain"
)

type catalogUseCase struct {
	productRepo ProductRepository
	priceRepo   PriceRepository
	now         func() time.Time
}

func (u *catalogUseCase) ListProducts(
	ctx context.Context,
	orgID uuid.UUID,
	filter catalogDomain.ProductFilter,
	offset, limit int,
) ([]*catalogDomain.Product, int, error) {
	products, err := u.productRepo.List(ctx, orgID, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.productRepo.Count(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (u *catalogUseCase) GetProduct(ctx context.Context, orgID, productID uuid.UUID) (*catalogDomain.Product, error) {
	product, err := u.productRepo.Get(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}

	prices, err := u.priceRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	product.Prices = prices
	return product, nil
}

func (u *catalogUseCase) CreateProduct(
	ctx context.Context,
	orgID uuid.UUID,
	name, description string,
) (*catalogDomain.Product, error) {
	now := u.now().UTC()
	product := &catalogDomain.Product{
		ID:          uuid.Must(uuid.NewV7()),
		OrgID:       orgID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Active:      true,
		Prices:      []*catalogDomain.Price{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (u *catalogUseCase) CreatePrice(
	ctx context.Context,
	orgID, productID uuid.UUID,
	amount int64,
	currency string,
) (*catalogDomain.Price, error) {
	product, err := u.productRepo.Get(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, catalogDomain.ErrInactiveProduct
	}

	price := &catalogDomain.Price{
		ID:        uuid.Must(uuid.NewV7()),
		OrgID:     orgID,
		ProductID: product.ID,
		Amount:    amount,
		Currency:  strings.ToLower(currency),
		Active:    true,
		CreatedAt: u.now().UTC(),
	}
	if err := u.priceRepo.Create(ctx, price); err != nil {
		return nil, err
	}
	return price, nil
}

// NewCatalogUseCase creates a new CatalogUseCase.
func NewCatalogUseCase(productRepo ProductRepository, priceRepo PriceRepository) CatalogUseCase {
	return &catalogUseCase{
		productRepo: productRepo,
		priceRepo:   priceRepo,
		now:         time.Now,
	}
}
