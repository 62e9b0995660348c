// Package repository implements persistence for products and prices.
//
// Every query filters by org_id so records of another organization are never returned.
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

// PostgreSQLProductRepository implements Product persistence for PostgreSQL.
type PostgreSQLProductRepository struct {
	db *sql.DB
}

// Create inserts a new Product.
func (p *PostgreSQLProductRepository) Create(ctx context.Context, product *catalogDomain.Product) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO products (id, org_id, name, description, active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		product.ID,
		product.OrgID,
		product.Name,
		product.Description,
		product.Active,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create product")
	}
	return nil
}

// Get retrieves a Product of an organization.
func (p *PostgreSQLProductRepository) Get(ctx context.Context, orgID, productID uuid.UUID) (*catalogDomain.Product, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, org_id, name, description, active, created_at, updated_at
			  FROM products WHERE id = $1 AND org_id = $2`

	var product catalogDomain.Product
	err := querier.QueryRowContext(ctx, query, productID, orgID).Scan(
		&product.ID,
		&product.OrgID,
		&product.Name,
		&product.Description,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogDomain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get product")
	}
	return &product, nil
}

// List returns a page of products ordered by name.
func (p *PostgreSQLProductRepository) List(
	ctx context.Context,
	orgID uuid.UUID,
	filter catalogDomain.ProductFilter,
	offset, limit int,
) ([]*catalogDomain.Product, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, org_id, name, description, active, created_at, updated_at
			  FROM products
			  WHERE org_id = $1 AND ($2::boolean IS NULL OR active = $2)
			  ORDER BY name, id
			  LIMIT $3 OFFSET $4`

	rows, err := querier.QueryContext(ctx, query, orgID, activeArg(filter), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list products")
	}
	defer rows.Close() //nolint:errcheck

	products := make([]*catalogDomain.Product, 0)
	for rows.Next() {
		var product catalogDomain.Product
		err := rows.Scan(
			&product.ID,
			&product.OrgID,
			&product.Name,
			&product.Description,
			&product.Active,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan product")
		}
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate products")
	}
	return products, nil
}

// Count returns the number of products matching the filter.
func (p *PostgreSQLProductRepository) Count(
	ctx context.Context,
	orgID uuid.UUID,
	filter catalogDomain.ProductFilter,
) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM products WHERE org_id = $1 AND ($2::boolean IS NULL OR active = $2)`

	var count int
	if err := querier.QueryRowContext(ctx, query, orgID, activeArg(filter)).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count products")
	}
	return count, nil
}

// NewPostgreSQLProductRepository creates a new PostgreSQL Product repository.
func NewPostgreSQLProductRepository(db *sql.DB) *PostgreSQLProductRepository {
	return &PostgreSQLProductRepository{db: db}
}

func activeArg(filter catalogDomain.ProductFilter) sql.NullBool {
	if filter.Active == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *filter.Active, Valid: true}
}
