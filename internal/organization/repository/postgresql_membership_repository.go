package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	"github.com/allisson/crm/internal/database"
	apperrors "github.com/allisson/crm/internal/errors"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
)

const postgresMemberColumns = `SELECT m.user_id, u.email, COALESCE(p.full_name, ''), m.role, m.created_at
			  FROM memberships m
			  JOIN users u ON u.id = m.user_id
			  LEFT JOIN profiles p ON p.user_id = m.user_id`

// PostgreSQLMembershipRepository implements Membership persistence for PostgreSQL.
type PostgreSQLMembershipRepository struct {
	db *sql.DB
}

// Create inserts a new Membership.
func (p *PostgreSQLMembershipRepository) Create(ctx context.Context, membership *orgDomain.Membership) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO memberships (org_id, user_id, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		membership.OrgID,
		membership.UserID,
		string(membership.Role),
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return orgDomain.ErrMemberAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create membership")
	}
	return nil
}

// Get retrieves a member of an organization.
func (p *PostgreSQLMembershipRepository) Get(ctx context.Context, orgID, userID uuid.UUID) (*orgDomain.Member, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresMemberColumns + ` WHERE m.org_id = $1 AND m.user_id = $2`

	var member orgDomain.Member
	var role string
	err := querier.QueryRowContext(ctx, query, orgID, userID).
		Scan(&member.UserID, &member.Email, &member.FullName, &role, &member.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get member")
	}
	member.Role = authDomain.Role(role)
	return &member, nil
}

// List returns a page of members ordered by join date.
func (p *PostgreSQLMembershipRepository) List(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*orgDomain.Member, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresMemberColumns + ` WHERE m.org_id = $1 ORDER BY m.created_at, m.user_id LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list members")
	}
	defer rows.Close() //nolint:errcheck

	members := make([]*orgDomain.Member, 0)
	for rows.Next() {
		var member orgDomain.Member
		var role string
		if err := rows.Scan(&member.UserID, &member.Email, &member.FullName, &role, &member.JoinedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan member")
		}
		member.Role = authDomain.Role(role)
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate members")
	}
	return members, nil
}

// Count returns the number of members of an organization.
func (p *PostgreSQLMembershipRepository) Count(ctx context.Context, orgID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, p.db)

	var count int
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM memberships WHERE org_id = $1`, orgID).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count members")
	}
	return count, nil
}

// UpdateRole changes the role of a member.
func (p *PostgreSQLMembershipRepository) UpdateRole(
	ctx context.Context,
	orgID, userID uuid.UUID,
	role authDomain.Role,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE memberships SET role = $1, updated_at = $2 WHERE org_id = $3 AND user_id = $4`

	result, err := querier.ExecContext(ctx, query, string(role), time.Now().UTC(), orgID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update member role")
	}
	return database.RequireRow(result, orgDomain.ErrMemberNotFound)
}

// NewPostgreSQLMembershipRepository creates a new PostgreSQL Membership repository.
func NewPostgreSQLMembershipRepository(db *sql.DB) *PostgreSQLMembershipRepository {
	return &PostgreSQLMembershipRepository{db: db}
}
