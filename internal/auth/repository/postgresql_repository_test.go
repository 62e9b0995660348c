package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	user := &authDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "u1@example.com", CreatedAt: now, UpdatedAt: now}

	t.Run("created", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, email, password_hash, created_at, updated_at)")).
			WithArgs(user.ID, "u1@example.com", "", now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), user))
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectExec("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), user)
		assert.ErrorIs(t, err, authDomain.ErrUserAlreadyExists)
	})
}

func TestPostgreSQLUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WithArgs("u1@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
				AddRow(id.String(), "u1@example.com", "hash", now, now))

		user, err := repo.GetByEmail(ctx, "u1@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "hash", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectQuery("FROM users WHERE email").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, authDomain.ErrUserNotFound)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLUserRepository(db)
		dbErr := errors.New("connection refused")

		mock.ExpectQuery("FROM users WHERE email").WillReturnError(dbErr)

		_, err := repo.GetByEmail(ctx, "u1@example.com")
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, authDomain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLUserRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $1")).
		WithArgs("new-hash", id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), id, "new-hash")
	assert.ErrorIs(t, err, authDomain.ErrUserNotFound)
}

func TestPostgreSQLSessionRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSessionRepository(db)
	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "refresh_token_hash", "expires_at", "revoked_at", "created_at", "updated_at",
		}).AddRow(id.String(), userID.String(), "hash", now.Add(time.Hour), nil, now, now))

	session, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
	assert.Nil(t, session.RevokedAt)
	assert.True(t, session.IsActive(now))
}

func TestPostgreSQLSessionRepository_Rotate(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	expiresAt := time.Now().Add(time.Hour)

	t.Run("rotated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSessionRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("WHERE id = $4 AND refresh_token_hash = $5 AND revoked_at IS NULL")).
			WithArgs("new", expiresAt, sqlmock.AnyArg(), id, "old").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Rotate(ctx, id, "old", "new", expiresAt))
	})

	t.Run("lost race", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSessionRepository(db)

		mock.ExpectExec("UPDATE sessions").
			WithArgs("new", expiresAt, sqlmock.AnyArg(), id, "old").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Rotate(ctx, id, "old", "new", expiresAt), authDomain.ErrSessionNotFound)
	})
}

func TestPostgreSQLSessionRepository_Revoke(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSessionRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET revoked_at = $1")).
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Revoke(context.Background(), id))
}

func TestPostgreSQLSessionRepository_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSessionRepository(db)
	before := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE expires_at < $1 OR revoked_at < $1")).
		WithArgs(before).
		WillReturnResult(sqlmock.NewResult(0, 7))

	count, err := repo.DeleteExpired(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestPostgreSQLAuthCodeRepository_GetByCodeHashForUpdate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("locks the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAuthCodeRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM auth_codes WHERE code_hash = $1 FOR UPDATE")).
			WithArgs("code-hash").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "code_hash", "type", "expires_at", "used_at", "created_at",
			}).AddRow(id.String(), userID.String(), "code-hash", "recovery", now.Add(time.Minute), nil, now))

		code, err := repo.GetByCodeHashForUpdate(ctx, "code-hash")
		require.NoError(t, err)
		assert.Equal(t, authDomain.CodeTypeRecovery, code.Type)
		assert.True(t, code.IsUsable(now))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAuthCodeRepository(db)

		mock.ExpectQuery("FROM auth_codes").WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByCodeHashForUpdate(ctx, "missing")
		assert.ErrorIs(t, err, authDomain.ErrCodeNotFound)
	})
}

func TestPostgreSQLAuthCodeRepository_MarkUsed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLAuthCodeRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE auth_codes SET used_at = $1 WHERE id = $2 AND used_at IS NULL")).
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkUsed(context.Background(), id), authDomain.ErrCodeNotFound)
}

func TestPostgreSQLProfileRepository_Get(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	userID := uuid.Must(uuid.NewV7())
	orgID := uuid.Must(uuid.NewV7())
	columns := []string{"user_id", "full_name", "role", "org_id", "created_at", "updated_at"}

	t.Run("with organization", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLProfileRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE user_id = $1")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(userID.String(), "Ada", "sales", orgID.String(), now, now))

		profile, err := repo.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, authDomain.RoleSales, profile.Role)
		require.NotNil(t, profile.OrgID)
		assert.Equal(t, orgID, *profile.OrgID)
	})

	t.Run("without organization", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLProfileRepository(db)

		mock.ExpectQuery("FROM profiles").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(userID.String(), "Ada", "member", nil, now, now))

		profile, err := repo.Get(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, profile.OrgID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLProfileRepository(db)

		mock.ExpectQuery("FROM profiles").WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Get(ctx, userID)
		assert.ErrorIs(t, err, authDomain.ErrProfileNotFound)
	})
}

func TestPostgreSQLProfileRepository_SetOrganization(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLProfileRepository(db)
	userID := uuid.Must(uuid.NewV7())
	orgID := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles SET org_id = $1, role = $2")).
		WithArgs(orgID, "owner", sqlmock.AnyArg(), userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetOrganization(context.Background(), userID, orgID, authDomain.RoleOwner))
}

func TestPostgreSQLProfileRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLProfileRepository(db)
	now := time.Now().UTC()
	profile := &authDomain.Profile{
		UserID:    uuid.Must(uuid.NewV7()),
		FullName:  "Ada",
		Role:      authDomain.RoleMember,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(profile.UserID, "Ada", "member", nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), profile))
}
