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

// PostgreSQLAuthCodeRepository implements AuthCode persistence for PostgreSQL.
type PostgreSQLAuthCodeRepository struct {
	db *sql.DB
}

// Create inserts a new AuthCode.
func (p *PostgreSQLAuthCodeRepository) Create(ctx context.Context, code *authDomain.AuthCode) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO auth_codes (id, user_id, code_hash, type, expires_at, used_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		code.ID,
		code.UserID,
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
// Must run inside a transaction.
func (p *PostgreSQLAuthCodeRepository) GetByCodeHashForUpdate(
	ctx context.Context,
	codeHash string,
) (*authDomain.AuthCode, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, code_hash, type, expires_at, used_at, created_at
			  FROM auth_codes WHERE code_hash = $1 FOR UPDATE`

	var code authDomain.AuthCode
	var codeType string

	err := querier.QueryRowContext(ctx, query, codeHash).Scan(
		&code.ID,
		&code.UserID,
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

	code.Type = authDomain.CodeType(codeType)
	return &code, nil
}

// MarkUsed consumes an unused AuthCode.
func (p *PostgreSQLAuthCodeRepository) MarkUsed(ctx context.Context, codeID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE auth_codes SET used_at = $1 WHERE id = $2 AND used_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), codeID)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark auth code used")
	}
	return database.RequireRow(result, authDomain.ErrCodeNotFound)
}

// DeleteExpired removes codes that expired or were consumed before the cutoff.
func (p *PostgreSQLAuthCodeRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM auth_codes WHERE expires_at < $1 OR used_at < $1`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired auth codes")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}

// NewPostgreSQLAuthCodeRepository creates a new PostgreSQL AuthCode repository.
func NewPostgreSQLAuthCodeRepository(db *sql.DB) *PostgreSQLAuthCodeRepository {
	return &PostgreSQLAuthCodeRepository{db: db}
}
