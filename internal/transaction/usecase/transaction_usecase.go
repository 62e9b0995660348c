package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/crm/internal/database"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
)

type transactionUseCase struct {
	txManager       database.TxManager
	transactionRepo TransactionRepository
	prices          PriceFinder
	members         MemberFinder
	outboxRepo      OutboxRepository
	now             func() time.Time
}

func (u *transactionUseCase) List(
	ctx context.Context,
	orgID uuid.UUID,
	filter transactionDomain.Filter,
	offset, limit int,
) ([]*transactionDomain.Transaction, int, error) {
	var (
		transactions []*transactionDomain.Transaction
		total        int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = u.transactionRepo.List(gctx, orgID, filter, offset, limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = u.transactionRepo.Count(gctx, orgID, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (u *transactionUseCase) Get(
	ctx context.Context,
	orgID, transactionID uuid.UUID,
) (*transactionDomain.Transaction, error) {
	return u.transactionRepo.Get(ctx, orgID, transactionID)
}

func (u *transactionUseCase) Create(
	ctx context.Context,
	orgID uuid.UUID,
	input CreateInput,
) (*transactionDomain.Transaction, error) {
	if _, err := u.members.Get(ctx, orgID, input.UserID); err != nil {
		if errors.Is(err, orgDomain.ErrMemberNotFound) {
			return nil, transactionDomain.ErrBuyerNotMember
		}
		return nil, err
	}

	price, err := u.prices.Get(ctx, orgID, input.PriceID)
	if err != nil {
		return nil, err
	}
	if !price.Active {
		return nil, transactionDomain.ErrInactivePrice
	}

	status := input.Status
	if status == "" {
		status = transactionDomain.StatusSucceeded
	}

	now := u.now().UTC()
	transaction := &transactionDomain.Transaction{
		ID:        uuid.Must(uuid.NewV7()),
		OrgID:     orgID,
		UserID:    input.UserID,
		ProductID: price.ProductID,
		PriceID:   price.ID,
		Amount:    price.Amount,
		Currency:  price.Currency,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	event, err := outboxDomain.NewEvent(outboxDomain.EventTransactionCreated, outboxDomain.TransactionCreatedPayload{
		TransactionID: transaction.ID,
		OrgID:         orgID,
		UserID:        transaction.UserID,
		ProductID:     transaction.ProductID,
		Amount:        transaction.Amount,
		Currency:      transaction.Currency,
	})
	if err != nil {
		return nil, err
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.transactionRepo.Create(ctx, transaction); err != nil {
			return err
		}
		return u.outboxRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (u *transactionUseCase) HasPurchased(ctx context.Context, orgID, userID, productID uuid.UUID) (bool, error) {
	return u.transactionRepo.HasSucceeded(ctx, orgID, userID, productID)
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager database.TxManager,
	transactionRepo TransactionRepository,
	prices PriceFinder,
	members MemberFinder,
	outboxRepo OutboxRepository,
) TransactionUseCase {
	return &transactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		prices:          prices,
		members:         members,
		outboxRepo:      outboxRepo,
		now:             time.Now,
	}
}
