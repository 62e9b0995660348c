package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

type profileLoader struct {
	profileRepo ProfileRepository
}

// Load never defaults a role: a missing row is reported as ErrNoProfile.
func (p *profileLoader) Load(ctx context.Context, identity *authDomain.Identity) (*authDomain.Profile, error) {
	profile, err := p.profileRepo.Get(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, authDomain.ErrProfileNotFound) {
			return nil, authDomain.ErrNoProfile
		}
		return nil, err
	}
	return profile, nil
}

// NewProfileLoader creates a ProfileLoader.
func NewProfileLoader(profileRepo ProfileRepository) ProfileLoader {
	return &profileLoader{profileRepo: profileRepo}
}
