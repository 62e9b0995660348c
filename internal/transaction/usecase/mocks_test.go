package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	catalogDomain "github.com/allisson/crm/internal/catalog/domain"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
)

type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type mockTransactionRepository struct {
	mock.Mock
}

func (m *mockTransactionRepository) Create(ctx context.Context, transaction *transactionDomain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *mockTransactionRepository) Get(
	ctx context.Context,
	orgID, transactionID uuid.UUID,
) (*transactionDomain.Transaction, error) {
	args := m.Called(ctx, orgID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transactionDomain.Transaction), args.Error(1)
}

func (m *mockTransactionRepository) List(
	ctx context.Context,
	orgID uuid.UUID,
	filter transactionDomain.Filter,
	offset, limit int,
) ([]*transactionDomain.Transaction, error) {
	args := m.Called(ctx, orgID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transactionDomain.Transaction), args.Error(1)
}

func (m *mockTransactionRepository) Count(
	ctx context.Context,
	orgID uuid.UUID,
	filter transactionDomain.Filter,
) (int, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockTransactionRepository) HasSucceeded(ctx context.Context, orgID, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, userID, productID)
	return args.Bool(0), args.Error(1)
}

type mockPriceFinder struct {
	mock.Mock
}

func (m *mockPriceFinder) Get(ctx context.Context, orgID, priceID uuid.UUID) (*catalogDomain.Price, error) {
	args := m.Called(ctx, orgID, priceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.Price), args.Error(1)
}

type mockMemberFinder struct {
	mock.Mock
}

func (m *mockMemberFinder) Get(ctx context.Context, orgID, userID uuid.UUID) (*orgDomain.Member, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Member), args.Error(1)
}

type mockOutboxRepository struct {
	mock.Mock
}

func (m *mockOutboxRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
