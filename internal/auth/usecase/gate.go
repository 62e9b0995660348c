package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

type gate struct {
	resolver SessionResolver
	profiles ProfileLoader
}

func (g *gate) Authorize(
	ctx context.Context,
	credentials authDomain.Credentials,
	requirement authDomain.Requirement,
) (*authDomain.AuthDecision, error) {
	// Step 1: session.
	resolution, err := g.resolver.Resolve(ctx, credentials)
	if err != nil {
		if !errors.Is(err, authDomain.ErrUnauthenticated) {
			return nil, err
		}
		decision := &authDomain.AuthDecision{Reason: authDomain.ReasonUnauthenticated}
		if resolution != nil {
			decision.SignedOut = resolution.SignedOut
		}
		return decision, nil
	}

	decision := &authDomain.AuthDecision{
		Identity: resolution.Identity,
		Rotated:  resolution.Rotated,
	}

	// Step 2: profile.
	profile, err := g.profiles.Load(ctx, resolution.Identity)
	if err != nil {
		if errors.Is(err, authDomain.ErrNoProfile) {
			decision.Reason = authDomain.ReasonNoProfile
			return decision, nil
		}
		return decision, err
	}
	decision.Profile = profile

	// Step 3: role.
	if !profile.HasRole(requirement.Roles) {
		decision.Reason = authDomain.ReasonForbidden
		return decision, nil
	}

	// Step 4: organization.
	if requirement.OrgID != nil && !profile.InOrg(*requirement.OrgID) {
		decision.Reason = authDomain.ReasonForbidden
		return decision, nil
	}

	decision.Authorized = true
	return decision, nil
}

// NewGate creates the authorization gate.
func NewGate(resolver SessionResolver, profiles ProfileLoader) Gate {
	return &gate{
		resolver: resolver,
		profiles: profiles,
	}
}
