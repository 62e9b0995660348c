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
)

// MySQLProfileRepository implements Profile persistence for MySQL.
type MySQLProfileRepository struct {
	db *sql.DB
}

// Create inserts a new Profile.
func (m *MySQLProfileRepository) Create(ctx context.Context, profile *authDomain.Profile) error {
	querier := database.GetTx(ctx, m.db)

	userID, err := database.UUIDBytes(profile.UserID)
	if err != nil {
		return err
	}
	orgID, err := database.NullableUUIDBytes(profile.OrgID)
	if err != nil {
		return err
	}

	query := `INSERT INTO profiles (user_id, full_name, role, org_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		userID,
		profile.FullName,
		string(profile.Role),
		orgID,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create profile")
	}
	return nil
}

// Get retrieves the Profile of a user.
func (m *MySQLProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*authDomain.Profile, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT user_id, full_name, role, org_id, created_at, updated_at FROM profiles WHERE user_id = ?`

	var profile authDomain.Profile
	var userIDBytes, orgIDBytes []byte
	var role string

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&userIDBytes,
		&profile.FullName,
		&role,
		&orgIDBytes,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get profile")
	}

	if profile.UserID, err = database.UUIDFromBytes(userIDBytes); err != nil {
		return nil, err
	}
	if profile.OrgID, err = database.NullableUUIDFromBytes(orgIDBytes); err != nil {
		return nil, err
	}
	profile.Role = authDomain.Role(role)
	return &profile, nil
}

// SetOrganization makes orgID the active organization of a user with the given role.
func (m *MySQLProfileRepository) SetOrganization(
	ctx context.Context,
	userID, orgID uuid.UUID,
	role authDomain.Role,
) error {
	querier := database.GetTx(ctx, m.db)

	uid, err := database.UUIDBytes(userID)
	if err != nil {
		return err
	}
	oid, err := database.UUIDBytes(orgID)
	if err != nil {
		return err
	}

	query := `UPDATE profiles SET org_id = ?, role = ?, updated_at = ? WHERE user_id = ?`

	result, err := querier.ExecContext(ctx, query, oid, string(role), time.Now().UTC(), uid)
	if err != nil {
		return apperrors.Wrap(err, "failed to set profile organization")
	}
	return database.RequireRow(result, authDomain.ErrProfileNotFound)
}

// SyncRole updates the cached role of a user whose active organization is orgID.
func (m *MySQLProfileRepository) SyncRole(
	ctx context.Context,
	userID, orgID uuid.UUID,
	role authDomain.Role,
) error {
	querier := database.GetTx(ctx, m.db)

	uid, err := database.UUIDBytes(userID)
	if err != nil {
		return err
	}
	oid, err := database.UUIDBytes(orgID)
	if err != nil {
		return err
	}

	query := `UPDATE profiles SET role = ?, updated_at = ? WHERE user_id = ? AND org_id = ?`

	if _, err := querier.ExecContext(ctx, query, string(role), time.Now().UTC(), uid, oid); err != nil {
		return apperrors.Wrap(err, "failed to sync profile role")
	}
	return nil
}

// NewMySQLProfileRepository creates a new MySQL Profile repository.
func NewMySQLProfileRepository(db *sql.DB) *MySQLProfileRepository {
	return &MySQLProfileRepository{db: db}
}
