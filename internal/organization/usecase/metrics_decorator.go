package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	"github.com/allisson/crm/internal/metrics"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
)

// organizationUseCaseWithMetrics decorates OrganizationUseCase with metrics instrumentation.
type organizationUseCaseWithMetrics struct {
	next    OrganizationUseCase
	metrics metrics.BusinessMetrics
}

// NewOrganizationUseCaseWithMetrics wraps an OrganizationUseCase with metrics recording.
func NewOrganizationUseCaseWithMetrics(next OrganizationUseCase, m metrics.BusinessMetrics) OrganizationUseCase {
	return &organizationUseCaseWithMetrics{next: next, metrics: m}
}

func (o *organizationUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, o.metrics, "organization", operation, start, metrics.StatusFromError(err))
}

func (o *organizationUseCaseWithMetrics) Create(ctx context.Context, name, slug string) (*orgDomain.Organization, error) {
	start := time.Now()
	org, err := o.next.Create(ctx, name, slug)
	o.record(ctx, "organization_create", start, err)
	return org, err
}

func (o *organizationUseCaseWithMetrics) ListMine(
	ctx context.Context,
	userID uuid.UUID,
) ([]*orgDomain.Organization, error) {
	start := time.Now()
	orgs, err := o.next.ListMine(ctx, userID)
	o.record(ctx, "organization_list", start, err)
	return orgs, err
}

func (o *organizationUseCaseWithMetrics) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	start := time.Now()
	org, err := o.next.Get(ctx, orgID)
	o.record(ctx, "organization_get", start, err)
	return org, err
}

func (o *organizationUseCaseWithMetrics) Switch(
	ctx context.Context,
	userID, orgID uuid.UUID,
) (*authDomain.Profile, error) {
	start := time.Now()
	profile, err := o.next.Switch(ctx, userID, orgID)
	o.record(ctx, "organization_switch", start, err)
	return profile, err
}

func (o *organizationUseCaseWithMetrics) AddMember(
	ctx context.Context,
	orgID uuid.UUID,
	email string,
	role, grantedBy authDomain.Role,
) (*orgDomain.Member, error) {
	start := time.Now()
	member, err := o.next.AddMember(ctx, orgID, email, role, grantedBy)
	o.record(ctx, "member_add", start, err)
	return member, err
}

func (o *organizationUseCaseWithMetrics) ListMembers(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*orgDomain.Member, int, error) {
	start := time.Now()
	members, total, err := o.next.ListMembers(ctx, orgID, offset, limit)
	o.record(ctx, "member_list", start, err)
	return members, total, err
}

func (o *organizationUseCaseWithMetrics) UpdateMemberRole(
	ctx context.Context,
	orgID, userID uuid.UUID,
	role, grantedBy authDomain.Role,
) (*orgDomain.Member, error) {
	start := time.Now()
	member, err := o.next.UpdateMemberRole(ctx, orgID, userID, role, grantedBy)
	o.record(ctx, "member_role_update", start, err)
	return member, err
}
