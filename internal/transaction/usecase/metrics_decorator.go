package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/crm/internal/metrics"
	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
)

// transactionUseCaseWithMetrics decorates TransactionUseCase with metrics instrumentation.
type transactionUseCaseWithMetrics struct {
	next    TransactionUseCase
	metrics metrics.BusinessMetrics
}

// NewTransactionUseCaseWithMetrics wraps a TransactionUseCase with metrics recording.
func NewTransactionUseCaseWithMetrics(next TransactionUseCase, m metrics.BusinessMetrics) TransactionUseCase {
	return &transactionUseCaseWithMetrics{next: next, metrics: m}
}

func (u *transactionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, u.metrics, "transaction", operation, start, metrics.StatusFromError(err))
}

func (u *transactionUseCaseWithMetrics) List(
	ctx context.Context,
	orgID uuid.UUID,
	filter transactionDomain.Filter,
	offset, limit int,
) ([]*transactionDomain.Transaction, int, error) {
	start := time.Now()
	transactions, total, err := u.next.List(ctx, orgID, filter, offset, limit)
	u.record(ctx, "transaction_list", start, err)
	return transactions, total, err
}

func (u *transactionUseCaseWithMetrics) Get(
	ctx context.Context,
	orgID, transactionID uuid.UUID,
) (*transactionDomain.Transaction, error) {
	start := time.Now()
	transaction, err := u.next.Get(ctx, orgID, transactionID)
	u.record(ctx, "transaction_get", start, err)
	return transaction, err
}

func (u *transactionUseCaseWithMetrics) Create(
	ctx context.Context,
	orgID uuid.UUID,
	input CreateInput,
) (*transactionDomain.Transaction, error) {
	start := time.Now()
	transaction, err := u.next.Create(ctx, orgID, input)
	u.record(ctx, "transaction_create", start, err)
	return transaction, err
}

func (u *transactionUseCaseWithMetrics) HasPurchased(
	ctx context.Context,
	orgID, userID, productID uuid.UUID,
) (bool, error) {
	start := time.Now()
	purchased, err := u.next.HasPurchased(ctx, orgID, userID, productID)
	u.record(ctx, "purchase_check", start, err)
	return purchased, err
}
