package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	"github.com/allisson/crm/internal/metrics"
	metricsMocks "github.com/allisson/crm/internal/metrics/mocks"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
	"github.com/allisson/crm/internal/organization/usecase"
	"github.com/allisson/crm/internal/organization/usecase/mocks"
)

func TestOrganizationUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Switch_Success", func(t *testing.T) {
		next := &mocks.MockOrganizationUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		profile := &authDomain.Profile{UserID: userID, OrgID: &orgID}

		next.On("Switch", ctx, userID, orgID).Return(profile, nil).Once()
		m.ExpectObserve(ctx, "organization", "organization_switch", metrics.StatusSuccess)

		result, err := usecase.NewOrganizationUseCaseWithMetrics(next, m).Switch(ctx, userID, orgID)
		require.NoError(t, err)
		assert.Equal(t, profile, result)
		m.AssertExpectations(t)
	})

	t.Run("UpdateMemberRole_Error", func(t *testing.T) {
		next := &mocks.MockOrganizationUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}

		next.On("UpdateMemberRole", ctx, orgID, userID, authDomain.RoleOwner, authDomain.RoleAdmin).
			Return(nil, orgDomain.ErrOwnerRoleRequired).
			Once()
		m.ExpectObserve(ctx, "organization", "member_role_update", metrics.StatusError)

		_, err := usecase.NewOrganizationUseCaseWithMetrics(next, m).
			UpdateMemberRole(ctx, orgID, userID, authDomain.RoleOwner, authDomain.RoleAdmin)
		assert.True(t, errors.Is(err, orgDomain.ErrOwnerRoleRequired))
		m.AssertExpectations(t)
	})

	t.Run("ListMembers_Success", func(t *testing.T) {
		next := &mocks.MockOrganizationUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}

		next.On("ListMembers", ctx, orgID, 0, 10).Return([]*orgDomain.Member{}, 3, nil).Once()
		m.ExpectObserve(ctx, "organization", "member_list", metrics.StatusSuccess)

		_, total, err := usecase.NewOrganizationUseCaseWithMetrics(next, m).ListMembers(ctx, orgID, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		m.AssertExpectations(t)
	})
}
