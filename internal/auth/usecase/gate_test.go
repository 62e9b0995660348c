package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

func newGateFixture() (*mockSessionResolver, *mockProfileLoader, Gate) {
	resolver := &mockSessionResolver{}
	loader := &mockProfileLoader{}
	return resolver, loader, NewGate(resolver, loader)
}

func TestGate_UnauthenticatedRegardlessOfRoles(t *testing.T) {
	ctx := context.Background()
	creds := authDomain.Credentials{AccessToken: "expired"}

	requirements := []authDomain.Requirement{
		authDomain.AnyRole(),
		authDomain.RequireRoles(authDomain.RoleAdmin),
		authDomain.RequireRoles(authDomain.RoleSales, authDomain.RoleMember).InOrg(uuid.Must(uuid.NewV7())),
	}

	for _, req := range requirements {
		resolver, loader, gate := newGateFixture()
		resolver.On("Resolve", ctx, creds).
			Return(&authDomain.Resolution{SignedOut: true}, authDomain.ErrUnauthenticated).
			Once()

		decision, err := gate.Authorize(ctx, creds, req)

		require.NoError(t, err)
		assert.False(t, decision.Authorized)
		assert.Equal(t, authDomain.ReasonUnauthenticated, decision.Reason)
		assert.True(t, decision.SignedOut)
		loader.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	}
}

func TestGate_NoProfile(t *testing.T) {
	ctx := context.Background()
	resolver, loader, gate := newGateFixture()
	identity := &authDomain.Identity{ID: uuid.Must(uuid.NewV7()), Email: "u1@example.com"}

	resolver.On("Resolve", ctx, authDomain.Credentials{AccessToken: "ok"}).
		Return(&authDomain.Resolution{Identity: identity}, nil)
	loader.On("Load", ctx, identity).Return(nil, authDomain.ErrNoProfile)

	decision, err := gate.Authorize(ctx, authDomain.Credentials{AccessToken: "ok"}, authDomain.AnyRole())

	require.NoError(t, err)
	assert.False(t, decision.Authorized)
	assert.Equal(t, authDomain.ReasonNoProfile, decision.Reason)
	assert.ErrorIs(t, decision.Err(), authDomain.ErrNoProfile)
}

func TestGate_RoleMismatchIsForbiddenNotUnauthenticated(t *testing.T) {
	ctx := context.Background()
	resolver, loader, gate := newGateFixture()
	orgID := uuid.Must(uuid.NewV7())
	identity := &authDomain.Identity{ID: uuid.Must(uuid.NewV7())}
	profile := &authDomain.Profile{UserID: identity.ID, Role: authDomain.RoleSales, OrgID: &orgID}
	creds := authDomain.Credentials{AccessToken: "ok"}

	resolver.On("Resolve", ctx, creds).Return(&authDomain.Resolution{Identity: identity}, nil)
	loader.On("Load", ctx, identity).Return(profile, nil)

	decision, err := gate.Authorize(ctx, creds, authDomain.RequireRoles(authDomain.RoleAdmin))

	require.NoError(t, err)
	assert.False(t, decision.Authorized)
	assert.Equal(t, authDomain.ReasonForbidden, decision.Reason)
	assert.NotEqual(t, authDomain.ReasonUnauthenticated, decision.Reason)
}

func TestGate_OrgMismatchIsForbidden(t *testing.T) {
	ctx := context.Background()
	resolver, loader, gate := newGateFixture()
	orgID := uuid.Must(uuid.NewV7())
	otherOrg := uuid.Must(uuid.NewV7())
	identity := &authDomain.Identity{ID: uuid.Must(uuid.NewV7())}
	profile := &authDomain.Profile{UserID: identity.ID, Role: authDomain.RoleAdmin, OrgID: &orgID}
	creds := authDomain.Credentials{AccessToken: "ok"}

	resolver.On("Resolve", ctx, creds).Return(&authDomain.Resolution{Identity: identity}, nil)
	loader.On("Load", ctx, identity).Return(profile, nil)

	decision, err := gate.Authorize(ctx, creds, authDomain.RequireRoles(authDomain.RoleAdmin).InOrg(otherOrg))

	require.NoError(t, err)
	assert.False(t, decision.Authorized)
	assert.Equal(t, authDomain.ReasonForbidden, decision.Reason)
}

func TestGate_NilProfileOrgIsForbiddenWhenOrgRequired(t *testing.T) {
	ctx := context.Background()
	resolver, loader, gate := newGateFixture()
	identity := &authDomain.Identity{ID: uuid.Must(uuid.NewV7())}
	creds := authDomain.Credentials{AccessToken: "ok"}

	resolver.On("Resolve", ctx, creds).Return(&authDomain.Resolution{Identity: identity}, nil)
	loader.On("Load", ctx, identity).Return(&authDomain.Profile{UserID: identity.ID, Role: authDomain.RoleOwner}, nil)

	decision, err := gate.Authorize(ctx, creds, authDomain.AnyRole().InOrg(uuid.Must(uuid.NewV7())))

	require.NoError(t, err)
	assert.Equal(t, authDomain.ReasonForbidden, decision.Reason)
}

func TestGate_Authorized(t *testing.T) {
	ctx := context.Background()
	resolver, loader, gate := newGateFixture()
	orgID := uuid.Must(uuid.NewV7())
	identity := &authDomain.Identity{ID: uuid.Must(uuid.NewV7())}
	profile := &authDomain.Profile{UserID: identity.ID, Role: authDomain.RoleOwner, OrgID: &orgID}
	rotated := &authDomain.IssuedTokens{AccessToken: "new-access", RefreshToken: "new-refresh"}
	creds := authDomain.Credentials{RefreshToken: "refresh"}

	resolver.On("Resolve", ctx, creds).Return(&authDomain.Resolution{Identity: identity, Rotated: rotated}, nil)
	loader.On("Load", ctx, identity).Return(profile, nil)

	decision, err := gate.Authorize(ctx, creds,
		authDomain.RequireRoles(authDomain.RoleAdmin, authDomain.RoleOwner).InOrg(orgID))

	require.NoError(t, err)
	assert.True(t, decision.Authorized)
	assert.Equal(t, identity, decision.Identity)
	assert.Equal(t, profile, decision.Profile)
	assert.Equal(t, rotated, decision.Rotated)
	assert.NoError(t, decision.Err())
}

func TestGate_Idempotent(t *testing.T) {
	ctx := context.Background()
	resolver, loader, gate := newGateFixture()
	orgID := uuid.Must(uuid.NewV7())
	identity := &authDomain.Identity{ID: uuid.Must(uuid.NewV7())}
	profile := &authDomain.Profile{UserID: identity.ID, Role: authDomain.RoleSales, OrgID: &orgID}
	creds := authDomain.Credentials{AccessToken: "ok"}
	req := authDomain.RequireRoles(authDomain.RoleAdmin).InOrg(orgID)

	resolver.On("Resolve", ctx, creds).Return(&authDomain.Resolution{Identity: identity}, nil).Twice()
	loader.On("Load", ctx, identity).Return(profile, nil).Twice()

	first, err := gate.Authorize(ctx, creds, req)
	require.NoError(t, err)
	second, err := gate.Authorize(ctx, creds, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	resolver.AssertExpectations(t)
	loader.AssertExpectations(t)
}

func TestGate_DownstreamFailures(t *testing.T) {
	ctx := context.Background()
	creds := authDomain.Credentials{AccessToken: "ok"}
	storeErr := errors.New("connection refused")

	t.Run("resolver failure", func(t *testing.T) {
		resolver, loader, gate := newGateFixture()
		resolver.On("Resolve", ctx, creds).Return(nil, storeErr)

		decision, err := gate.Authorize(ctx, creds, authDomain.AnyRole())

		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, decision)
		loader.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})

	t.Run("profile failure keeps rotation", func(t *testing.T) {
		resolver, loader, gate := newGateFixture()
		identity := &authDomain.Identity{ID: uuid.Must(uuid.NewV7())}
		rotated := &authDomain.IssuedTokens{AccessToken: "a", RefreshToken: "r"}
		resolver.On("Resolve", ctx, creds).Return(&authDomain.Resolution{Identity: identity, Rotated: rotated}, nil)
		loader.On("Load", ctx, identity).Return(nil, storeErr)

		decision, err := gate.Authorize(ctx, creds, authDomain.AnyRole())

		assert.ErrorIs(t, err, storeErr)
		require.NotNil(t, decision)
		assert.False(t, decision.Authorized)
		assert.Equal(t, rotated, decision.Rotated)
	})
}
