// Package mocks provides testify mocks of the transaction use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
	"github.com/allisson/crm/internal/transaction/usecase"
)

// MockTransactionUseCase is a mock implementation of usecase.TransactionUseCase.
type MockTransactionUseCase struct {
	mock.Mock
}

func (m *MockTransactionUseCase) List(
	ctx context.Context,
	orgID uuid.UUID,
	filter transactionDomain.Filter,
	offset, limit int,
) ([]*transactionDomain.Transaction, int, error) {
	args := m.Called(ctx, orgID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*transactionDomain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionUseCase) Get(
	ctx context.Context,
	orgID, transactionID uuid.UUID,
) (*transactionDomain.Transaction, error) {
	args := m.Called(ctx, orgID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transactionDomain.Transaction), args.Error(1)
}

func (m *MockTransactionUseCase) Create(
	ctx context.Context,
	orgID uuid.UUID,
	input usecase.CreateInput,
) (*transactionDomain.Transaction, error) {
	args := m.Called(ctx, orgID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transactionDomain.Transaction), args.Error(1)
}

func (m *MockTransactionUseCase) HasPurchased(ctx context.Context, orgID, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, userID, productID)
	return args.Bool(0), args.Error(1)
}
