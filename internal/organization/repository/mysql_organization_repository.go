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

// MySQLOrganizationRepository implements Organization persistence for MySQL.
type MySQLOrganizationRepository struct {
	db *sql.DB
}

// Create inserts a new Organization.
func (m *MySQLOrganizationRepository) Create(ctx context.Context, org *orgDomain.Organization) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(org.ID)
	if err != nil {
		return err
	}

	query := `INSERT INTO organizations (id, name, slug, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, org.Name, org.Slug, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return orgDomain.ErrOrganizationAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create organization")
	}
	return nil
}

// Get retrieves an Organization by ID.
func (m *MySQLOrganizationRepository) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(orgID)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, name, slug, created_at, updated_at FROM organizations WHERE id = ?`

	org, err := m.scan(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization")
	}
	return org, nil
}

// ListByMember lists the organizations a user belongs to.
func (m *MySQLOrganizationRepository) ListByMember(
	ctx context.Context,
	userID uuid.UUID,
) ([]*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT o.id, o.name, o.slug, o.created_at, o.updated_at
			  FROM organizations o
			  JOIN memberships m ON m.org_id = o.id
			  WHERE m.user_id = ?
			  ORDER BY o.name, o.id`

	rows, err := querier.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list organizations")
	}
	defer rows.Close() //nolint:errcheck

	orgs := make([]*orgDomain.Organization, 0)
	for rows.Next() {
		org, err := m.scan(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan organization")
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate organizations")
	}
	return orgs, nil
}

func (m *MySQLOrganizationRepository) scan(row interface{ Scan(...any) error }) (*orgDomain.Organization, error) {
	var org orgDomain.Organization
	var idBytes []byte
	if err := row.Scan(&idBytes, &org.Name, &org.Slug, &org.CreatedAt, &org.UpdatedAt); err != nil {
		return nil, err
	}
	id, err := database.UUIDFromBytes(idBytes)
	if err != nil {
		return nil, err
	}
	org.ID = id
	return &org, nil
}

// NewMySQLOrganizationRepository creates a new MySQL Organization repository.
func NewMySQLOrganizationRepository(db *sql.DB) *MySQLOrganizationRepository {
	return &MySQLOrganizationRepository{db: db}
}
