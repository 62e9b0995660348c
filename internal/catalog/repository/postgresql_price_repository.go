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

// PostgreSQLPriceRepository implements Price persistence for PostgreSQL.
type PostgreSQLPriceRepository struct {
	db *sql.DB
}

// Create inserts a new Price.
func (p *PostgreSQLPriceRepository) Create(ctx context.Context, price *catalogDomain.Price) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO prices (id, org_id, product_id, amount, currency, active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		price.ID,
		price.OrgID,
		price.ProductID,
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
func (p *PostgreSQLPriceRepository) Get(ctx context.Context, orgID, priceID uuid.UUID) (*catalogDomain.Price, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, org_id, product_id, amount, currency, active, created_at
			  FROM prices WHERE id = $1 AND org_id = $2`

	var price catalogDomain.Price
	err := querier.QueryRowContext(ctx, query, priceID, orgID).Scan(
		&price.ID,
		&price.OrgID,
		&price.ProductID,
		&price.Amount,
		&price.Currency,
		&price.Active,
		&price.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogDomain.ErrPriceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get price")
	}
	return &price, nil
}

// ListByProduct returns the prices of a product, oldest first.
func (p *PostgreSQLPriceRepository) ListByProduct(
	ctx context.Context,
	productID uuid.UUID,
) ([]*catalogDomain.Price, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, org_id, product_id, amount, currency, active, created_at
			  FROM prices WHERE product_id = $1 ORDER BY created_at, id`

	rows, err := querier.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list prices")
	}
	defer rows.Close() //nolint:errcheck

	prices := make([]*catalogDomain.Price, 0)
	for rows.Next() {
		var price catalogDomain.Price
		err := rows.Scan(
			&price.ID,
			&price.OrgID,
			&price.ProductID,
			&price.Amount,
			&price.Currency,
			&price.Active,
			&price.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan price")
		}
		prices = append(prices, &price)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate prices")
	}
	return prices, nil
}

// NewPostgreSQLPriceRepository creates a new PostgreSQL Price repository.
func NewPostgreSQLPriceRepository(db *sql.DB) *PostgreSQLPriceRepository {
	return &PostgreSQLPriceRepository{db: db}
}
