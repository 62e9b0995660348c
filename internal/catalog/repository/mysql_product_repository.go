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

type scanner interface {
	Scan(dest ...any) error
}

// MySQLProductRepository implements Product persistence for MySQL.
type MySQLProductRepository struct {
	db *sql.DB
}

// Create inserts a new Product.
func (m *MySQLProductRepository) Create(ctx context.Context, product *catalogDomain.Product) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(product.ID)
	if err != nil {
		return err
	}
	orgID, err := database.UUIDBytes(product.OrgID)
	if err != nil {
		return err
	}

	query := `INSERT INTO products (id, org_id, name, description, active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
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
func (m *MySQLProductRepository) Get(ctx context.Context, orgID, productID uuid.UUID) (*catalogDomain.Product, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(productID)
	if err != nil {
		return nil, err
	}
	org, err := database.UUIDBytes(orgID)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, org_id, name, description, active, created_at, updated_at
			  FROM products WHERE id = ? AND org_id = ?`

	product, err := scanMySQLProduct(querier.QueryRowContext(ctx, query, id, org))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogDomain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get product")
	}
	return product, nil
}

// List returns a page of products ordered by name.
func (m *MySQLProductRepository) List(
	ctx context.Context,
	orgID uuid.UUID,
	filter catalogDomain.ProductFilter,
	offset, limit int,
) ([]*catalogDomain.Product, error) {
	querier := database.GetTx(ctx, m.db)

	org, err := database.UUIDBytes(orgID)
	if err != nil {
		return nil, err
	}
	active := activeArg(filter)

	query := `SELECT id, org_id, name, description, active, created_at, updated_at
			  FROM products
			  WHERE org_id = ? AND (? IS NULL OR active = ?)
			  ORDER BY name, id
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, org, active, active, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list products")
	}
	defer rows.Close() //nolint:errcheck

	products := make([]*catalogDomain.Product, 0)
	for rows.Next() {
		product, err := scanMySQLProduct(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan product")
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate products")
	}
	return products, nil
}

// Count returns the number of products matching the filter.
func (m *MySQLProductRepository) Count(
	ctx context.Context,
	orgID uuid.UUID,
	filter catalogDomain.ProductFilter,
) (int, error) {
	querier := database.GetTx(ctx, m.db)

	org, err := database.UUIDBytes(orgID)
	if err != nil {
		return 0, err
	}
	active := activeArg(filter)

	query := `SELECT COUNT(*) FROM products WHERE org_id = ? AND (? IS NULL OR active = ?)`

	var count int
	if err := querier.QueryRowContext(ctx, query, org, active, active).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count products")
	}
	return count, nil
}

func scanMySQLProduct(row scanner) (*catalogDomain.Product, error) {
	var product catalogDomain.Product
	var id, orgID []byte
	err := row.Scan(
		&id,
		&orgID,
		&product.Name,
		&product.Description,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if product.ID, err = database.UUIDFromBytes(id); err != nil {
		return nil, err
	}
	if product.OrgID, err = database.UUIDFromBytes(orgID); err != nil {
		return nil, err
	}
	return &product, nil
}

// NewMySQLProductRepository creates a new MySQL Product repository.
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}
