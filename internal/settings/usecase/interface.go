// Package usecase implements the site settings business logic.
package usecase

import (
	"context"

	settingsDomain "github.com/allisson/crm/internal/settings/domain"
)

// SettingRepository defines persistence for settings.
type SettingRepository interface {
	// GetMany returns the stored values of keys. Keys without a row are omitted.
	GetMany(ctx context.Context, keys []string) (map[string]string, error)

	// List returns every stored setting ordered by key.
	List(ctx context.Context) ([]*settingsDomain.Setting, error)

	// Upsert inserts or replaces a setting.
	Upsert(ctx context.Context, setting *settingsDomain.Setting) error
}

// SettingsCache is the process-wide time-bounded settings cache.
type SettingsCache interface {
	Get(ctx context.Context, keys []string) map[string]string
	Invalidate(keys ...string)
}

// SettingsUseCase exposes cached reads for page metadata and uncached admin operations.
type SettingsUseCase interface {
	// SiteMetadata never fails; an unavailable store yields the defaults.
	SiteMetadata(ctx context.Context) *settingsDomain.SiteMetadata

	// List returns the stored settings, bypassing the cache.
	List(ctx context.Context) ([]*settingsDomain.Setting, error)

	// Set upserts a setting and invalidates its cached entry.
	Set(ctx context.Context, key, value string) (*settingsDomain.Setting, error)
}
