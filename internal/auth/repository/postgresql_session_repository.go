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

const postgresSessionColumns = `id, user_id, refresh_token_hash, expires_at, revoked_at, created_at, updated_at`

// PostgreSQLSessionRepository implements Session persistence for PostgreSQL.
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// Create inserts a new Session.
func (p *PostgreSQLSessionRepository) Create(ctx context.Context, session *authDomain.Session) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO sessions (` + postgresSessionColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.RefreshTokenHash,
		session.ExpiresAt,
		session.RevokedAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create session")
	}
	return nil
}

// Get retrieves a Session by ID.
func (p *PostgreSQLSessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*authDomain.Session, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresSessionColumns + ` FROM sessions WHERE id = $1`

	return p.scan(querier.QueryRowContext(ctx, query, sessionID))
}

// GetByRefreshTokenHash retrieves the Session currently holding a refresh token hash.
func (p *PostgreSQLSessionRepository) GetByRefreshTokenHash(
	ctx context.Context,
	refreshTokenHash string,
) (*authDomain.Session, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresSessionColumns + ` FROM sessions WHERE refresh_token_hash = $1`

	return p.scan(querier.QueryRowContext(ctx, query, refreshTokenHash))
}

// Rotate swaps the refresh token hash only when the session still holds oldHash.
// Returns ErrSessionNotFound when another request rotated first.
func (p *PostgreSQLSessionRepository) Rotate(
	ctx context.Context,
	sessionID uuid.UUID,
	oldHash, newHash string,
	expiresAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE sessions
			  SET refresh_token_hash = $1, expires_at = $2, updated_at = $3
			  WHERE id = $4 AND refresh_token_hash = $5 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, newHash, expiresAt, time.Now().UTC(), sessionID, oldHash)
	if err != nil {
		return apperrors.Wrap(err, "failed to rotate session")
	}
	return database.RequireRow(result, authDomain.ErrSessionNotFound)
}

// Revoke marks a Session revoked. Revoking twice keeps the first timestamp.
func (p *PostgreSQLSessionRepository) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE sessions SET revoked_at = $1, updated_at = $1 WHERE id = $2 AND revoked_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, time.Now().UTC(), sessionID); err != nil {
		return apperrors.Wrap(err, "failed to revoke session")
	}
	return nil
}

// DeleteExpired removes sessions that expired or were revoked before the cutoff.
func (p *PostgreSQLSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM sessions WHERE expires_at < $1 OR revoked_at < $1`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired sessions")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}

func (p *PostgreSQLSessionRepository) scan(row *sql.Row) (*authDomain.Session, error) {
	var session authDomain.Session
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.RefreshTokenHash,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}
	return &session, nil
}

// NewPostgreSQLSessionRepository creates a new PostgreSQL Session repository.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{db: db}
}
