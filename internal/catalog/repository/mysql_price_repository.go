package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	catalogDomain "github.com/allisson/crm/internal/catalog/domain"
	"github.com/allisson/crm/internal/database"
	apperrors "github.com/allisson/crm/internal/errors"
)

// MySQLPriceRepository implements Price persistence for MySQL.
type MySQLPriceRepository struct {
	db *sql.DB
}

// Create inserts a new Price.
func (m *MySQLPriceRepository) Create(ctx context.Context, price *catalogDomain.Price) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(price.ID)
	if err != nil {
		return err
	}
	orgID, err := database.UUIDBytes(price.OrgID)
	if err != nil {
		return err
	}
	productID, err := database.UUIDBytes(price.ProductID)
	if err != nil {
		return err
	}

	query := `INSERT INTO prices (id, org_id, product_id, amount, currency, active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
		productID,
		price.Amount,
		price.Currency,
		price.Active,
		price.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create price")
	}
	return nil
}

// Get retrieves a Price of an organization.
func (m *MySQLPriceRepository) Get(ctx context.Context, orgID, priceID uuid.UUID) (*catalogDomain.Price, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(priceID)
	if err != nil {
		return nil, err
	}
	org, err := database.UUIDBytes(orgID)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, org_id, product_id, amount, currency, active, created_at
			  FROM prices WHERE id = ? AND org_id = ?`

	price, err := scanMySQLPrice(querier.QueryRowContext(ctx, query, id, org))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogDomain.ErrPriceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get price")
	}
	return price, nil
}

// ListByProduct returns the prices of a product, oldest first.
func (m *MySQLPriceRepository) ListByProduct(
	ctx context.Context,
	productID uuid.UUID,
) ([]*catalogDomain.Price, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(productID)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, org_id, product_id, amount, currency, active, created_at
			  FROM prices WHERE product_id = ? ORDER BY created_at, id`

	rows, err := querier.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list prices")
	}
	defer rows.Close() //nolint:errcheck

	prices := make([]*catalogDomain.Price, 0)
	for rows.Next() {
		price, err := scanMySQLPrice(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan price")
		}
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate prices")
	}
	return prices, nil
}

func scanMySQLPrice(row scanner) (*catalogDomain.Price, error) {
	var price catalogDomain.Price
	var id, orgID, productID []byte
	err := row.Scan(&id, &orgID, &productID, &price.Amount, &price.Currency, &price.Active, &price.CreatedAt)
	if err != nil {
		return nil, err
	}
	if price.ID, err = database.UUIDFromBytes(id); err != nil {
		return nil, err
	}
	if price.OrgID, err = database.UUIDFromBytes(orgID); err != nil {
		return nil, err
	}
	if price.ProductID, err = database.UUIDFromBytes(productID); err != nil {
		return nil, err
	}
	return &price, nil
}

// NewMySQLPriceRepository creates a new MySQL Price repository.
func NewMySQLPriceRepository(db *sql.DB) *MySQLPriceRepository {
	return &MySQLPriceRepository{db: db}
}
