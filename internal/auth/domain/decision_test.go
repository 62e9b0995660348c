package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/crm/internal/errors"
)

func TestAuthDecision_Err(t *testing.T) {
	tests := []struct {
		name     string
		decision AuthDecision
		sentinel error
	}{
		{"unauthenticated", AuthDecision{Reason: ReasonUnauthenticated}, apperrors.ErrUnauthorized},
		{"no profile", AuthDecision{Reason: ReasonNoProfile}, apperrors.ErrNoProfile},
		{"forbidden", AuthDecision{Reason: ReasonForbidden}, apperrors.ErrForbidden},
		{"denied without reason", AuthDecision{}, apperrors.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.decision.Err(), tt.sentinel)
		})
	}

	authorized := AuthDecision{Authorized: true}
	assert.NoError(t, authorized.Err())
}

func TestAuthDecision_StatusLabel(t *testing.T) {
	assert.Equal(t, "authorized", (&AuthDecision{Authorized: true}).StatusLabel())
	assert.Equal(t, "forbidden", (&AuthDecision{Reason: ReasonForbidden}).StatusLabel())
}

func TestRequirement(t *testing.T) {
	orgID := uuid.Must(uuid.NewV7())

	req := RequireRoles(RoleAdmin, RoleOwner)
	scoped := req.InOrg(orgID)

	assert.Nil(t, req.OrgID)
	assert.Equal(t, orgID, *scoped.OrgID)
	assert.Equal(t, []Role{RoleAdmin, RoleOwner}, scoped.Roles)
	assert.Empty(t, AnyRole().Roles)
}
