// Package repository implements persistence for organizations and memberships.
//
// PostgreSQL uses native UUID types, MySQL uses BINARY(16) types.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/crm/internal/database"
	apperrors "github.com/allisson/crm/internal/errors"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
)

// PostgreSQLOrganizationRepository implements Organization persistence for PostgreSQL.
type PostgreSQLOrganizationRepository struct {
	db *sql.DB
}

// Create inserts a new Organization.
func (p *PostgreSQLOrganizationRepository) Create(ctx context.Context, org *orgDomain.Organization) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO organizations (id, name, slug, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(ctx, query, org.ID, org.Name, org.Slug, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return orgDomain.ErrOrganizationAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create organization")
	}
	return nil
}

// Get retrieves an Organization by ID.
func (p *PostgreSQLOrganizationRepository) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, slug, created_at, updated_at FROM organizations WHERE id = $1`

	var org orgDomain.Organization
	err := querier.QueryRowContext(ctx, query, orgID).
		Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization")
	}
	return &org, nil
}

// ListByMember lists the organizations a user belongs to.
func (p *PostgreSQLOrganizationRepository) ListByMember(
	ctx context.Context,
	userID uuid.UUID,
) ([]*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT o.id, o.name, o.slug, o.created_at, o.updated_at
			  FROM organizations o
			  JOIN memberships m ON m.org_id = o.id
			  WHERE m.user_id = $1
			  ORDER BY o.name, o.id`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list organizations")
	}
	defer rows.Close() //nolint:errcheck

	orgs := make([]*orgDomain.Organization, 0)
	for rows.Next() {
		var org orgDomain.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan organization")
		}
		orgs = append(orgs, &org)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate organizations")
	}
	return orgs, nil
}

// NewPostgreSQLOrganizationRepository creates a new PostgreSQL Organization repository.
func NewPostgreSQLOrganizationRepository(db *sql.DB) *PostgreSQLOrganizationRepository {
	return &PostgreSQLOrganizationRepository{db: db}
}
