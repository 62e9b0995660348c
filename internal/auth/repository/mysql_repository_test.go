package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

func TestMySQLUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLUserRepository(db)
	now := time.Now().UTC()
	user := &authDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "u1@example.com", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, email, password_hash, created_at, updated_at)")).
		WithArgs(user.ID[:], "u1@example.com", "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), user))
}

func TestMySQLUserRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLUserRepository(db)
	now := time.Now().UTC()
	user := &authDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "u1@example.com", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, authDomain.ErrUserAlreadyExists)
}

func TestMySQLUserRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLUserRepository(db)
	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ?")).
		WithArgs(id[:]).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(id[:], "u1@example.com", "", now, now))

	user, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
}

func TestMySQLSessionRepository_GetByRefreshTokenHash(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())
	columns := []string{"id", "user_id", "refresh_token_hash", "expires_at", "revoked_at", "created_at", "updated_at"}

	t.Run("revoked session", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSessionRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE refresh_token_hash = ?")).
			WithArgs("hash").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(id[:], userID[:], "hash", now.Add(time.Hour), now, now, now))

		session, err := repo.GetByRefreshTokenHash(ctx, "hash")
		require.NoError(t, err)
		assert.Equal(t, id, session.ID)
		assert.Equal(t, userID, session.UserID)
		require.NotNil(t, session.RevokedAt)
		assert.False(t, session.IsActive(now))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSessionRepository(db)

		mock.ExpectQuery("FROM sessions").WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByRefreshTokenHash(ctx, "hash")
		assert.ErrorIs(t, err, authDomain.ErrSessionNotFound)
	})
}

func TestMySQLSessionRepository_Rotate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSessionRepository(db)
	id := uuid.Must(uuid.NewV7())
	expiresAt := time.Now().Add(time.Hour)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = ? AND refresh_token_hash = ? AND revoked_at IS NULL")).
		WithArgs("new", expiresAt, sqlmock.AnyArg(), id[:], "old").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Rotate(context.Background(), id, "old", "new", expiresAt), authDomain.ErrSessionNotFound)
}

func TestMySQLAuthCodeRepository_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLAuthCodeRepository(db)
	before := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM auth_codes WHERE expires_at < ? OR used_at < ?")).
		WithArgs(before, before).
		WillReturnResult(sqlmock.NewResult(0, 2))

	count, err := repo.DeleteExpired(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMySQLAuthCodeRepository_GetByCodeHashForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLAuthCodeRepository(db)
	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(regexp.QuoteMeta("FROM auth_codes WHERE code_hash = ? FOR UPDATE")).
		WithArgs("code-hash").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "code_hash", "type", "expires_at", "used_at", "created_at",
		}).AddRow(id[:], userID[:], "code-hash", "signin", now.Add(time.Minute), now, now))

	code, err := repo.GetByCodeHashForUpdate(context.Background(), "code-hash")
	require.NoError(t, err)
	assert.Equal(t, userID, code.UserID)
	assert.False(t, code.IsUsable(now))
}

func TestMySQLProfileRepository_Get(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	userID := uuid.Must(uuid.NewV7())
	orgID := uuid.Must(uuid.NewV7())
	columns := []string{"user_id", "full_name", "role", "org_id", "created_at", "updated_at"}

	t.Run("with organization", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLProfileRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE user_id = ?")).
			WithArgs(userID[:]).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(userID[:], "Ada", "owner", orgID[:], now, now))

		profile, err := repo.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, authDomain.RoleOwner, profile.Role)
		require.NotNil(t, profile.OrgID)
		assert.Equal(t, orgID, *profile.OrgID)
	})

	t.Run("without organization", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLProfileRepository(db)

		mock.ExpectQuery("FROM profiles").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(userID[:], "Ada", "member", nil, now, now))

		profile, err := repo.Get(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, profile.OrgID)
	})
}

func TestMySQLProfileRepository_SyncRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLProfileRepository(db)
	userID := uuid.Must(uuid.NewV7())
	orgID := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles SET role = ?, updated_at = ? WHERE user_id = ? AND org_id = ?")).
		WithArgs("sales", sqlmock.AnyArg(), userID[:], orgID[:]).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.SyncRole(context.Background(), userID, orgID, authDomain.RoleSales))
}
