package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

var (
	orgColumns    = []string{"id", "name", "slug", "created_at", "updated_at"}
	memberColumns = []string{"user_id", "email", "full_name", "role", "created_at"}
)

func TestPostgreSQLOrganizationRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	org := &orgDomain.Organization{ID: uuid.Must(uuid.NewV7()), Name: "Acme", Slug: "acme", CreatedAt: now, UpdatedAt: now}

	t.Run("created", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOrganizationRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO organizations (id, name, slug, created_at, updated_at)")).
			WithArgs(org.ID, "Acme", "acme", now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), org))
	})

	t.Run("duplicate slug", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOrganizationRepository(db)

		mock.ExpectExec("INSERT INTO organizations").WillReturnError(&pq.Error{Code: "23505"})

		assert.ErrorIs(t, repo.Create(context.Background(), org), orgDomain.ErrOrganizationAlreadyExists)
	})
}

func TestPostgreSQLOrganizationRepository_Get(t *testing.T) {
	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOrganizationRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM organizations WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(orgColumns).AddRow(id.String(), "Acme", "acme", now, now))

		org, err := repo.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, org.ID)
		assert.Equal(t, "acme", org.Slug)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOrganizationRepository(db)

		mock.ExpectQuery("FROM organizations WHERE id").WillReturnRows(sqlmock.NewRows(orgColumns))

		_, err := repo.Get(context.Background(), id)
		assert.ErrorIs(t, err, orgDomain.ErrOrganizationNotFound)
	})
}

func TestPostgreSQLOrganizationRepository_ListByMember(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOrganizationRepository(db)
	now := time.Now().UTC()
	userID := uuid.Must(uuid.NewV7())
	first := uuid.Must(uuid.NewV7())
	second := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(regexp.QuoteMeta("JOIN memberships m ON m.org_id = o.id")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(orgColumns).
			AddRow(first.String(), "Acme", "acme", now, now).
			AddRow(second.String(), "Globex", "globex", now, now))

	orgs, err := repo.ListByMember(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, second, orgs[1].ID)
}

func TestPostgreSQLMembershipRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	membership := &orgDomain.Membership{
		OrgID:     uuid.Must(uuid.NewV7()),
		UserID:    uuid.Must(uuid.NewV7()),
		Role:      authDomain.RoleSales,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("created", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMembershipRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO memberships (org_id, user_id, role, created_at, updated_at)")).
			WithArgs(membership.OrgID, membership.UserID, "sales", now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), membership))
	})

	t.Run("already member", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMembershipRepository(db)

		mock.ExpectExec("INSERT INTO memberships").WillReturnError(&pq.Error{Code: "23505"})

		assert.ErrorIs(t, repo.Create(context.Background(), membership), orgDomain.ErrMemberAlreadyExists)
	})
}

func TestPostgreSQLMembershipRepository_Get(t *testing.T) {
	now := time.Now().UTC()
	orgID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMembershipRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE m.org_id = $1 AND m.user_id = $2")).
			WithArgs(orgID, userID).
			WillReturnRows(sqlmock.NewRows(memberColumns).
				AddRow(userID.String(), "jane@example.com", "Jane", "owner", now))

		member, err := repo.Get(context.Background(), orgID, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, member.UserID)
		assert.Equal(t, authDomain.RoleOwner, member.Role)
		assert.Equal(t, "Jane", member.FullName)
	})

	t.Run("not a member", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMembershipRepository(db)

		mock.ExpectQuery("FROM memberships m").WillReturnRows(sqlmock.NewRows(memberColumns))

		_, err := repo.Get(context.Background(), orgID, userID)
		assert.ErrorIs(t, err, orgDomain.ErrMemberNotFound)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMembershipRepository(db)
		dbErr := errors.New("connection refused")

		mock.ExpectQuery("FROM memberships m").WillReturnError(dbErr)

		_, err := repo.Get(context.Background(), orgID, userID)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, orgDomain.ErrMemberNotFound)
	})
}

func TestPostgreSQLMembershipRepository_ListAndCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLMembershipRepository(db)
	now := time.Now().UTC()
	orgID := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.org_id = $1 ORDER BY m.created_at, m.user_id LIMIT $2 OFFSET $3")).
		WithArgs(orgID, 10, 20).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow(uuid.Must(uuid.NewV7()).String(), "a@example.com", "", "sales", now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM memberships WHERE org_id = $1")).
		WithArgs(orgID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	members, err := repo.List(context.Background(), orgID, 20, 10)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, authDomain.RoleSales, members[0].Role)

	count, err := repo.Count(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, 21, count)
}

func TestPostgreSQLMembershipRepository_UpdateRole(t *testing.T) {
	orgID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMembershipRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE memberships SET role = $1")).
			WithArgs("admin", sqlmock.AnyArg(), orgID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateRole(context.Background(), orgID, userID, authDomain.RoleAdmin))
	})

	t.Run("not a member", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMembershipRepository(db)

		mock.ExpectExec("UPDATE memberships").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateRole(context.Background(), orgID, userID, authDomain.RoleAdmin)
		assert.ErrorIs(t, err, orgDomain.ErrMemberNotFound)
	})
}

func TestMySQLOrganizationRepository_CreateAndGet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOrganizationRepository(db)
	now := time.Now().UTC()
	org := &orgDomain.Organization{ID: uuid.Must(uuid.NewV7()), Name: "Acme", Slug: "acme", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO organizations (id, name, slug, created_at, updated_at) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(org.ID[:], "Acme", "acme", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM organizations WHERE id = ?")).
		WithArgs(org.ID[:]).
		WillReturnRows(sqlmock.NewRows(orgColumns).AddRow(org.ID[:], "Acme", "acme", now, now))

	require.NoError(t, repo.Create(context.Background(), org))

	found, err := repo.Get(context.Background(), org.ID)
	require.NoError(t, err)
	assert.Equal(t, org.ID, found.ID)
}

func TestMySQLOrganizationRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOrganizationRepository(db)
	org := &orgDomain.Organization{ID: uuid.Must(uuid.NewV7()), Slug: "acme"}

	mock.ExpectExec("INSERT INTO organizations").WillReturnError(&mysql.MySQLError{Number: 1062})

	assert.ErrorIs(t, repo.Create(context.Background(), org), orgDomain.ErrOrganizationAlreadyExists)
}

func TestMySQLMembershipRepository_Get(t *testing.T) {
	now := time.Now().UTC()
	orgID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLMembershipRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE m.org_id = ? AND m.user_id = ?")).
			WithArgs(orgID[:], userID[:]).
			WillReturnRows(sqlmock.NewRows(memberColumns).AddRow(userID[:], "jane@example.com", "Jane", "admin", now))

		member, err := repo.Get(context.Background(), orgID, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, member.UserID)
		assert.Equal(t, authDomain.RoleAdmin, member.Role)
	})

	t.Run("not a member", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLMembershipRepository(db)

		mock.ExpectQuery("FROM memberships m").WillReturnRows(sqlmock.NewRows(memberColumns))

		_, err := repo.Get(context.Background(), orgID, userID)
		assert.ErrorIs(t, err, orgDomain.ErrMemberNotFound)
	})
}

func TestMySQLMembershipRepository_UpdateRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLMembershipRepository(db)
	orgID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE memberships SET role = ?, updated_at = ? WHERE org_id = ? AND user_id = ?")).
		WithArgs("member", sqlmock.AnyArg(), orgID[:], userID[:]).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRole(context.Background(), orgID, userID, authDomain.RoleMember)
	assert.ErrorIs(t, err, orgDomain.ErrMemberNotFound)
}
