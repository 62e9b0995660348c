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

const mysqlMemberColumns = `SELECT m.user_id, u.email, COALESCE(p.full_name, ''), m.role, m.created_at
			  FROM memberships m
			  JOIN users u ON u.id = m.user_id
			  LEFT JOIN profiles p ON p.user_id = m.user_id`

// MySQLMembershipRepository implements Membership persistence for MySQL.
type MySQLMembershipRepository struct {
	db *sql.DB
}

// Create inserts a new Membership.
func (m *MySQLMembershipRepository) Create(ctx context.Context, membership *orgDomain.Membership) error {
	querier := database.GetTx(ctx, m.db)

	orgID, userID, err := memberKey(membership.OrgID, membership.UserID)
	if err != nil {
		return err
	}

	query := `INSERT INTO memberships (org_id, user_id, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		orgID,
		userID,
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
func (m *MySQLMembershipRepository) Get(ctx context.Context, orgID, userID uuid.UUID) (*orgDomain.Member, error) {
	querier := database.GetTx(ctx, m.db)

	orgBytes, userBytes, err := memberKey(orgID, userID)
	if err != nil {
		return nil, err
	}

	query := mysqlMemberColumns + ` WHERE m.org_id = ? AND m.user_id = ?`

	member, err := scanMySQLMember(querier.QueryRowContext(ctx, query, orgBytes, userBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get member")
	}
	return member, nil
}

// List returns a page of members ordered by join date.
func (m *MySQLMembershipRepository) List(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*orgDomain.Member, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(orgID)
	if err != nil {
		return nil, err
	}

	query := mysqlMemberColumns + ` WHERE m.org_id = ? ORDER BY m.created_at, m.user_id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, id, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list members")
	}
	defer rows.Close() //nolint:errcheck

	members := make([]*orgDomain.Member, 0)
	for rows.Next() {
		member, err := scanMySQLMember(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan member")
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate members")
	}
	return members, nil
}

// Count returns the number of members of an organization.
func (m *MySQLMembershipRepository) Count(ctx context.Context, orgID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(orgID)
	if err != nil {
		return 0, err
	}

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM memberships WHERE org_id = ?`, id).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count members")
	}
	return count, nil
}

// UpdateRole changes the role of a member.
func (m *MySQLMembershipRepository) UpdateRole(
	ctx context.Context,
	orgID, userID uuid.UUID,
	role authDomain.Role,
) error {
	querier := database.GetTx(ctx, m.db)

	orgBytes, userBytes, err := memberKey(orgID, userID)
	if err != nil {
		return err
	}

	query := `UPDATE memberships SET role = ?, updated_at = ? WHERE org_id = ? AND user_id = ?`

	result, err := querier.ExecContext(ctx, query, string(role), time.Now().UTC(), orgBytes, userBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update member role")
	}
	return database.RequireRow(result, orgDomain.ErrMemberNotFound)
}

func memberKey(orgID, userID uuid.UUID) ([]byte, []byte, error) {
	orgBytes, err := database.UUIDBytes(orgID)
	if err != nil {
		return nil, nil, err
	}
	userBytes, err := database.UUIDBytes(userID)
	if err != nil {
		return nil, nil, err
	}
	return orgBytes, userBytes, nil
}

func scanMySQLMember(row interface{ Scan(...any) error }) (*orgDomain.Member, error) {
	var member orgDomain.Member
	var userBytes []byte
	var role string
	if err := row.Scan(&userBytes, &member.Email, &member.FullName, &role, &member.JoinedAt); err != nil {
		return nil, err
	}
	userID, err := database.UUIDFromBytes(userBytes)
	if err != nil {
		return nil, err
	}
	member.UserID = userID
	member.Role = authDomain.Role(role)
	return &member, nil
}

// NewMySQLMembershipRepository creates a new MySQL Membership repository.
func NewMySQLMembershipRepository(db *sql.DB) *MySQLMembershipRepository {
	return &MySQLMembershipRepository{db: db}
}
