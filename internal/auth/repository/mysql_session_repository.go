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

const mysqlSessionColumns = `id, user_id, refresh_token_hash, expires_at, revoked_at, created_at, updated_at`

// MySQLSessionRepository implements Session persistence for MySQL.
type MySQLSessionRepository struct {
	db *sql.DB
}

// Create inserts a new Session.
func (m *MySQLSessionRepository) Create(ctx context.Context, session *authDomain.Session) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(session.ID)
	if err != nil {
		return err
	}
	userID, err := database.UUIDBytes(session.UserID)
	if err != nil {
		return err
	}

	query := `INSERT INTO sessions (` + mysqlSessionColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
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
func (m *MySQLSessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*authDomain.Session, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(sessionID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + mysqlSessionColumns + ` FROM sessions WHERE id = ?`

	return m.scan(querier.QueryRowContext(ctx, query, id))
}

// GetByRefreshTokenHash retrieves the Session currently holding a refresh token hash.
func (m *MySQLSessionRepository) GetByRefreshTokenHash(
	ctx context.Context,
	refreshTokenHash string,
) (*authDomain.Session, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlSessionColumns + ` FROM sessions WHERE refresh_token_hash = ?`

	return m.scan(querier.QueryRowContext(ctx, query, refreshTokenHash))
}

// Rotate swaps the refresh token hash only when the session still holds oldHash.
func (m *MySQLSessionRepository) Rotate(
	ctx context.Context,
	sessionID uuid.UUID,
	oldHash, newHash string,
	expiresAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(sessionID)
	if err != nil {
		return err
	}

	query := `UPDATE sessions
			  SET refresh_token_hash = ?, expires_at = ?, updated_at = ?
			  WHERE id = ? AND refresh_token_hash = ? AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, newHash, expiresAt, time.Now().UTC(), id, oldHash)
	if err != nil {
		return apperrors.Wrap(err, "failed to rotate session")
	}
	return database.RequireRow(result, authDomain.ErrSessionNotFound)
}

// Revoke marks a Session revoked.
func (m *MySQLSessionRepository) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(sessionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `UPDATE sessions SET revoked_at = ?, updated_at = ? WHERE id = ? AND revoked_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, now, now, id); err != nil {
		return apperrors.Wrap(err, "failed to revoke session")
	}
	return nil
}

// DeleteExpired removes sessions that expired or were revoked before the cutoff.
func (m *MySQLSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM sessions WHERE expires_at < ? OR revoked_at < ?`

	result, err := querier.ExecContext(ctx, query, before, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired sessions")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}

func (m *MySQLSessionRepository) scan(row *sql.Row) (*authDomain.Session, error) {
	var session authDomain.Session
	var idBytes, userIDBytes []byte

	err := row.Scan(
		&idBytes,
		&userIDBytes,
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

	if session.ID, err = database.UUIDFromBytes(idBytes); err != nil {
		return nil, err
	}
	if session.UserID, err = database.UUIDFromBytes(userIDBytes); err != nil {
		return nil, err
	}
	return &session, nil
}

// NewMySQLSessionRepository creates a new MySQL Session repository.
func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}
