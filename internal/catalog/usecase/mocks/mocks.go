// Package mocks provides testify mocks of the catalog use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	catalogDomain "github.com/allisson/crm/internal/catalog/domain"
)

// MockCatalogUseCase is a mock implementation of usecase.CatalogUseCase.
type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) ListProducts(
	ctx context.Context,
	orgID uuid.UUID,
	filter catalogDomain.ProductFilter,
	offset, limit int,
) ([]*catalogDomain.Product, int, error) {
	args := m.Called(ctx, orgID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*catalogDomain.Product), args.Int(1), args.Error(2)
}

func (m *MockCatalogUseCase) GetProduct(ctx context.Context, orgID, productID uuid.UUID) (*catalogDomain.Product, error) {
	args := m.Called(ctx, orgID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.Product), args.Error(1)
}

func (m *MockCatalogUseCase) CreateProduct(
	ctx context.Context,
	orgID uuid.UUID,
	name, description string,
) (*catalogDomain.Product, error) {
	args := m.Called(ctx, orgID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.Product), args.Error(1)
}

func (m *MockCatalogUseCase) CreatePrice(
	ctx context.Context,
	orgID, productID uuid.UUID,
	amount int64,
	currency string,
) (*catalogDomain.Price, error) {
	args := m.Called(ctx, orgID, productID, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.Price), args.Error(1)
}
