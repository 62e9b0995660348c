package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/crm/internal/errors"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "owner", "sales", "member"} {
		role, err := ParseRole(s)
		assert.NoError(t, err)
		assert.Equal(t, Role(s), role)
	}

	_, err := ParseRole("superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	_, err = ParseRole("Admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRoleValues(t *testing.T) {
	assert.Equal(t, []any{"admin", "owner", "sales", "member"}, RoleValues())
}

func TestProfile_HasRole(t *testing.T) {
	profile := &Profile{Role: RoleSales}

	assert.True(t, profile.HasRole(nil))
	assert.True(t, profile.HasRole([]Role{RoleAdmin, RoleSales}))
	assert.False(t, profile.HasRole([]Role{RoleAdmin, RoleOwner}))
}

func TestProfile_InOrg(t *testing.T) {
	orgID := uuid.Must(uuid.NewV7())
	otherID := uuid.Must(uuid.NewV7())

	assert.False(t, (&Profile{}).InOrg(orgID))
	assert.True(t, (&Profile{OrgID: &orgID}).InOrg(orgID))
	assert.False(t, (&Profile{OrgID: &orgID}).InOrg(otherID))
}
