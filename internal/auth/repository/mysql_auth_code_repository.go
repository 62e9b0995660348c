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

// MySQLAuthCodeRepository implements AuthCode persistence for MySQL.
type MySQLAuthCodeRepository struct {
	db *sql.DB
}

// Create inserts a new AuthCode.
func (m *MySQLAuthCodeRepository) Create(ctx context.Context, code *authDomain.AuthCode) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(code.ID)
	if err != nil {
		return err
	}
	userID, err := database.UUIDBytes(code.UserID)
	if err != nil {
		return err
	}

	query := `INSERT INTO auth_codes (id, user_id, code_hash, type, expires_at, used_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
		code.CodeHash,
		string(code.Type),
		code.ExpiresAt,
		code.UsedAt,
		code.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create auth code")
	}
	return nil
}

// GetByCodeHashForUpdate locks and returns the AuthCode with the given hash.
func (m *MySQLAuthCodeRepository) GetByCodeHashForUpdate(
	ctx context.Context,
	codeHash string,
) (*authDomain.AuthCode, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, code_hash, type, expires_at, used_at, created_at
			  FROM auth_codes WHERE code_hash = ? FOR UPDATE`

	var code authDomain.AuthCode
	var idBytes, userIDBytes []byte
	var codeType string

	err := querier.QueryRowContext(ctx, query, codeHash).Scan(
		&idBytes,
		&userIDBytes,
		&code.CodeHash,
		&codeType,
		&code.ExpiresAt,
		&code.UsedAt,
		&code.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrCodeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get auth code")
	}

	if code.ID, err = database.UUIDFromBytes(idBytes); err != nil {
		return nil, err
	}
	if code.UserID, err = database.UUIDFromBytes(userIDBytes); err != nil {
		return nil, err
	}
	code.Type = authDomain.CodeType(codeType)
	return &code, nil
}

// MarkUsed consumes an unused AuthCode.
func (m *MySQLAuthCodeRepository) MarkUsed(ctx context.Context, codeID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(codeID)
	if err != nil {
		return err
	}

	query := `UPDATE auth_codes SET used_at = ? WHERE id = ? AND used_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark auth code used")
	}
	return database.RequireRow(result, authDomain.ErrCodeNotFound)
}

// DeleteExpired removes codes that expired or were consumed before the cutoff.
func (m *MySQLAuthCodeRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM auth_codes WHERE expires_at < ? OR used_at < ?`

	result, err := querier.ExecContext(ctx, query, before, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired auth codes")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}

// NewMySQLAuthCodeRepository creates a new MySQL AuthCode repository.
func NewMySQLAuthCodeRepository(db *sql.DB) *MySQLAuthCodeRepository {
	return &MySQLAuthCodeRepository{db: db}
}
