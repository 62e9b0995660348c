package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	"github.com/allisson/crm/internal/database"
	apperrors "github.com/allisson/crm/internal/errors"
)

// MySQLUserRepository implements User persistence for MySQL.
// Uses BINARY(16) for UUIDs.
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User.
func (m *MySQLUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(user.ID)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, email, password_hash, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return authDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Get retrieves a User by ID.
func (m *MySQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = ?`

	return m.scan(querier.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a User by its normalized email address.
func (m *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = ?`

	return m.scan(querier.QueryRowContext(ctx, query, email))
}

// UpdatePassword replaces the password hash of a User.
func (m *MySQLUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(userID)
	if err != nil {
		return err
	}

	query := `UPDATE users SET password_hash = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user password")
	}
	return database.RequireRow(result, authDomain.ErrUserNotFound)
}

func (m *MySQLUserRepository) scan(row *sql.Row) (*authDomain.User, error) {
	var user authDomain.User
	var idBytes []byte

	err := row.Scan(&idBytes, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	if user.ID, err = database.UUIDFromBytes(idBytes); err != nil {
		return nil, err
	}
	return &user, nil
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
