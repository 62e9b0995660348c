// Package repository implements transaction persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/crm/internal/database"
	apperrors "github.com/allisson/crm/internal/errors"
	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
)

const transactionColumns = `id, org_id, user_id, product_id, price_id, amount, currency, status, created_at, updated_at`

// PostgreSQLTransactionRepository implements Transaction persistence for PostgreSQL.
type PostgreSQLTransactionRepository struct {
	db *sql.DB
}

// Create inserts a new Transaction.
func (p *PostgreSQLTransactionRepository) Create(
	ctx context.Context,
	transaction *transactionDomain.Transaction,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO transactions (` + transactionColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		transaction.ID,
		transaction.OrgID,
		transaction.UserID,
		transaction.ProductID,
		transaction.PriceID,
		transaction.Amount,
		transaction.Currency,
		transaction.Status,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create transaction")
	}
	return nil
}

// Get retrieves a Transaction of an organization.
func (p *PostgreSQLTransactionRepository) Get(
	ctx context.Context,
	orgID, transactionID uuid.UUID,
) (*transactionDomain.Transaction, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND org_id = $2`

	transaction, err := scanPostgreSQLTransaction(querier.QueryRowContext(ctx, query, transactionID, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transactionDomain.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get transaction")
	}
	return transaction, nil
}

// List returns a page of transactions, newest first.
func (p *PostgreSQLTransactionRepository) List(
	ctx context.Context,
	orgID uuid.UUID,
	filter transactionDomain.Filter,
	offset, limit int,
) ([]*transactionDomain.Transaction, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + transactionColumns + `
			  FROM transactions
			  WHERE org_id = $1 AND ($2 = '' OR status = $2)
			  ORDER BY created_at DESC, id DESC
			  LIMIT $3 OFFSET $4`

	rows, err := querier.QueryContext(ctx, query, orgID, string(filter.Status), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list transactions")
	}
	defer rows.Close() //nolint:errcheck

	transactions := make([]*transactionDomain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanPostgreSQLTransaction(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan transaction")
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate transactions")
	}
	return transactions, nil
}

// Count returns the number of transactions matching the filter.
func (p *PostgreSQLTransactionRepository) Count(
	ctx context.Context,
	orgID uuid.UUID,
	filter transactionDomain.Filter,
) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM transactions WHERE org_id = $1 AND ($2 = '' OR status = $2)`

	var count int
	if err := querier.QueryRowContext(ctx, query, orgID, string(filter.Status)).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count transactions")
	}
	return count, nil
}

// HasSucceeded reports whether the user has a succeeded transaction for the product.
func (p *PostgreSQLTransactionRepository) HasSucceeded(
	ctx context.Context,
	orgID, userID, productID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (
				  SELECT 1 FROM transactions
				  WHERE org_id = $1 AND user_id = $2 AND product_id = $3 AND status = $4
			  )`

	var exists bool
	err := querier.QueryRowContext(ctx, query, orgID, userID, productID, transactionDomain.StatusSucceeded).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check purchase")
	}
	return exists, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLTransaction(row scanner) (*transactionDomain.Transaction, error) {
	var transaction transactionDomain.Transaction
	err := row.Scan(
		&transaction.ID,
		&transaction.OrgID,
		&transaction.UserID,
		&transaction.ProductID,
		&transaction.PriceID,
		&transaction.Amount,
		&transaction.Currency,
		&transaction.Status,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// NewPostgreSQLTransactionRepository creates a new PostgreSQL Transaction repository.
func NewPostgreSQLTransactionRepository(db *sql.DB) *PostgreSQLTransactionRepository {
	return &PostgreSQLTransactionRepository{db: db}
}
