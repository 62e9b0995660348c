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

// MySQLTransactionRepository implements Transaction persistence for MySQL.
type MySQLTransactionRepository struct {
	db *sql.DB
}

// Create inserts a new Transaction.
func (m *MySQLTransactionRepository) Create(ctx context.Context, transaction *transactionDomain.Transaction) error {
	querier := database.GetTx(ctx, m.db)

	ids, err := uuidArgs(
		transaction.ID,
		transaction.OrgID,
		transaction.UserID,
		transaction.ProductID,
		transaction.PriceID,
	)
	if err != nil {
		return err
	}

	query := `INSERT INTO transactions (` + transactionColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		ids[0],
		ids[1],
		ids[2],
		ids[3],
		ids[4],
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
func (m *MySQLTransactionRepository) Get(
	ctx context.Context,
	orgID, transactionID uuid.UUID,
) (*transactionDomain.Transaction, error) {
	querier := database.GetTx(ctx, m.db)

	ids, err := uuidArgs(transactionID, orgID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ? AND org_id = ?`

	transaction, err := scanMySQLTransaction(querier.QueryRowContext(ctx, query, ids[0], ids[1]))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transactionDomain.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get transaction")
	}
	return transaction, nil
}

// List returns a page of transactions, newest first.
func (m *MySQLTransactionRepository) List(
	ctx context.Context,
	orgID uuid.UUID,
	filter transactionDomain.Filter,
	offset, limit int,
) ([]*transactionDomain.Transaction, error) {
	querier := database.GetTx(ctx, m.db)

	org, err := database.UUIDBytes(orgID)
	if err != nil {
		return nil, err
	}
	status := string(filter.Status)

	query := `SELECT ` + transactionColumns + `
			  FROM transactions
			  WHERE org_id = ? AND (? = '' OR status = ?)
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, org, status, status, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list transactions")
	}
	defer rows.Close() //nolint:errcheck

	transactions := make([]*transactionDomain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanMySQLTransaction(rows)
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
func (m *MySQLTransactionRepository) Count(
	ctx context.Context,
	orgID uuid.UUID,
	filter transactionDomain.Filter,
) (int, error) {
	querier := database.GetTx(ctx, m.db)

	org, err := database.UUIDBytes(orgID)
	if err != nil {
		return 0, err
	}
	status := string(filter.Status)

	query := `SELECT COUNT(*) FROM transactions WHERE org_id = ? AND (? = '' OR status = ?)`

	var count int
	if err := querier.QueryRowContext(ctx, query, org, status, status).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count transactions")
	}
	return count, nil
}

// HasSucceeded reports whether the user has a succeeded transaction for the product.
func (m *MySQLTransactionRepository) HasSucceeded(
	ctx context.Context,
	orgID, userID, productID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	ids, err := uuidArgs(orgID, userID, productID)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (
				  SELECT 1 FROM transactions
				  WHERE org_id = ? AND user_id = ? AND product_id = ? AND status = ?
			  )`

	var exists bool
	err = querier.QueryRowContext(ctx, query, ids[0], ids[1], ids[2], transactionDomain.StatusSucceeded).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check purchase")
	}
	return exists, nil
}

func uuidArgs(ids ...uuid.UUID) ([][]byte, error) {
	args := make([][]byte, 0, len(ids))
	for _, id := range ids {
		b, err := database.UUIDBytes(id)
		if err != nil {
			return nil, err
		}
		args = append(args, b)
	}
	return args, nil
}

func scanMySQLTransaction(row scanner) (*transactionDomain.Transaction, error) {
	var transaction transactionDomain.Transaction
	var id, orgID, userID, productID, priceID []byte
	err := row.Scan(
		&id,
		&orgID,
		&userID,
		&productID,
		&priceID,
		&transaction.Amount,
		&transaction.Currency,
		&transaction.Status,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	targets := []*uuid.UUID{
		&transaction.ID,
		&transaction.OrgID,
		&transaction.UserID,
		&transaction.ProductID,
		&transaction.PriceID,
	}
	for i, raw := range [][]byte{id, orgID, userID, productID, priceID} {
		if *targets[i], err = database.UUIDFromBytes(raw); err != nil {
			return nil, err
		}
	}
	return &transaction, nil
}

// NewMySQLTransactionRepository creates a new MySQL Transaction repository.
func NewMySQLTransactionRepository(db *sql.DB) *MySQLTransactionRepository {
	return &MySQLTransactionRepository{db: db}
}
