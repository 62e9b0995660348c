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

// PostgreSQLProfileRepository implements Profile persistence for PostgreSQL.
type PostgreSQLProfileRepository struct {
	db *sql.DB
}

// Create inserts a new Profile.
func (p *PostgreSQLProfileRepository) Create(ctx context.Context, profile *authDomain.Profile) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO profiles (user_id, full_name, role, org_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		profile.UserID,
		profile.FullName,
		string(profile.Role),
		database.UUIDPtrValue(profile.OrgID),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create profile")
	}
	return nil
}

// Get retrieves the Profile of a user.
func (p *PostgreSQLProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*authDomain.Profile, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT user_id, full_name, role, org_id, created_at, updated_at FROM profiles WHERE user_id = $1`

	var profile authDomain.Profile
	var role string
	var orgID uuid.NullUUID

	err := querier.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.FullName,
		&role,
		&orgID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get profile")
	}

	profile.Role = authDomain.Role(role)
	profile.OrgID = database.NullUUIDPtr(orgID)
	return &profile, nil
}

// SetOrganization makes orgID the active organization of a user with the given role.
func (p *PostgreSQLProfileRepository) SetOrganization(
	ctx context.Context,
	userID, orgID uuid.UUID,
	role authDomain.Role,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE profiles SET org_id = $1, role = $2, updated_at = $3 WHERE user_id = $4`

	result, err := querier.ExecContext(ctx, query, orgID, string(role), time.Now().UTC(), userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set profile organization")
	}
	return database.RequireRow(result, authDomain.ErrProfileNotFound)
}

// SyncRole updates the cached role of a user whose active organization is orgID.
// Profiles active in another organization are left untouched.
func (p *PostgreSQLProfileRepository) SyncRole(
	ctx context.Context,
	userID, orgID uuid.UUID,
	role authDomain.Role,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE profiles SET role = $1, updated_at = $2 WHERE user_id = $3 AND org_id = $4`

	if _, err := querier.ExecContext(ctx, query, string(role), time.Now().UTC(), userID, orgID); err != nil {
		return apperrors.Wrap(err, "failed to sync profile role")
	}
	return nil
}

// NewPostgreSQLProfileRepository creates a new PostgreSQL Profile repository.
func NewPostgreSQLProfileRepository(db *sql.DB) *PostgreSQLProfileRepository {
	return &PostgreSQLProfileRepository{db: db}
}
