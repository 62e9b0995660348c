package usecase

import (
	"context"
	"time"

	settingsDomain "github.com/allisson/crm/internal/settings/domain"
)

type settingsUseCase struct {
	repo  SettingRepository
	cache SettingsCache
}

func (s *settingsUseCase) SiteMetadata(ctx context.Context) *settingsDomain.SiteMetadata {
	values := s.cache.Get(ctx, settingsDomain.MetadataKeys())
	return &settingsDomain.SiteMetadata{
		Title:       values[settingsDomain.KeySiteName],
		Description: values[settingsDomain.KeySiteDescription],
	}
}

func (s *settingsUseCase) List(ctx context.Context) ([]*settingsDomain.Setting, error) {
	return s.repo.List(ctx)
}

func (s *settingsUseCase) Set(ctx context.Context, key, value string) (*settingsDomain.Setting, error) {
	setting := &settingsDomain.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	s.cache.Invalidate(key)
	return setting, nil
}

// NewSettingsUseCase creates a new SettingsUseCase.
func NewSettingsUseCase(repo SettingRepository, cache SettingsCache) SettingsUseCase {
	return &settingsUseCase{repo: repo, cache: cache}
}
