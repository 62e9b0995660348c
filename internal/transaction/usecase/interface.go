// Package usecase implements purchase recording and transaction queries.
package usecase

import (
	"context"

	"github.com/google/uuid"

	catalogDomain "github.com/allisson/crm/internal/catalog/domain"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
)

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *transactionDomain.Transaction) error

	// Get returns ErrTransactionNotFound if the transaction does not exist in orgID.
	Get(ctx context.Context, orgID, transactionID uuid.UUID) (*transactionDomain.Transaction, error)

	// List returns a page of transactions, newest first.
	List(
		ctx context.Context,
		orgID uuid.UUID,
		filter transactionDomain.Filter,
		offset, limit int,
	) ([]*transactionDomain.Transaction, error)

	Count(ctx context.Context, orgID uuid.UUID, filter transactionDomain.Filter) (int, error)

	// HasSucceeded reports whether userID has a succeeded transaction for productID in orgID.
	HasSucceeded(ctx context.Context, orgID, userID, productID uuid.UUID) (bool, error)
}

// PriceFinder resolves the catalog price a purchase is made against.
type PriceFinder interface {
	Get(ctx context.Context, orgID, priceID uuid.UUID) (*catalogDomain.Price, error)
}

// MemberFinder checks that the buyer belongs to the organization.
type MemberFinder interface {
	Get(ctx context.Context, orgID, userID uuid.UUID) (*orgDomain.Member, error)
}

// OutboxRepository stores events for asynchronous delivery.
type OutboxRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// CreateInput describes a purchase to record. An empty Status records a succeeded purchase.
type CreateInput struct {
	UserID  uuid.UUID
	PriceID uuid.UUID
	Status  transactionDomain.Status
}

// TransactionUseCase covers the transaction and purchase routes.
type TransactionUseCase interface {
	// List returns a page of transactions and the total matching the filter.
	List(
		ctx context.Context,
		orgID uuid.UUID,
		filter transactionDomain.Filter,
		offset, limit int,
	) ([]*transactionDomain.Transaction, int, error)

	Get(ctx context.Context, orgID, transactionID uuid.UUID) (*transactionDomain.Transaction, error)

	// Create records a purchase for a member of the organization and enqueues transaction.created.
	Create(ctx context.Context, orgID uuid.UUID, input CreateInput) (*transactionDomain.Transaction, error)

	// HasPurchased reports whether userID bought productID in orgID.
	HasPurchased(ctx context.Context, orgID, userID, productID uuid.UUID) (bool, error)
}
