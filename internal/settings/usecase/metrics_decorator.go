package usecase

import (
	"context"
	"time"

	"github.com/allisson/crm/internal/metrics"
	settingsDomain "github.com/allisson/crm/internal/settings/domain"
)

// settingsUseCaseWithMetrics decorates SettingsUseCase with metrics instrumentation.
// SiteMetadata is left out; the cache records its own hit, miss and fallback counts.
type settingsUseCaseWithMetrics struct {
	next    SettingsUseCase
	metrics metrics.BusinessMetrics
}

// NewSettingsUseCaseWithMetrics wraps a SettingsUseCase with metrics recording.
func NewSettingsUseCaseWithMetrics(next SettingsUseCase, m metrics.BusinessMetrics) SettingsUseCase {
	return &settingsUseCaseWithMetrics{next: next, metrics: m}
}

func (s *settingsUseCaseWithMetrics) SiteMetadata(ctx context.Context) *settingsDomain.SiteMetadata {
	return s.next.SiteMetadata(ctx)
}

func (s *settingsUseCaseWithMetrics) List(ctx context.Context) ([]*settingsDomain.Setting, error) {
	start := time.Now()
	settings, err := s.next.List(ctx)
	metrics.Observe(ctx, s.metrics, "settings", "setting_list", start, metrics.StatusFromError(err))
	return settings, err
}

func (s *settingsUseCaseWithMetrics) Set(ctx context.Context, key, value string) (*settingsDomain.Setting, error) {
	start := time.Now()
	setting, err := s.next.Set(ctx, key, value)
	metrics.Observe(ctx, s.metrics, "settings", "setting_set", start, metrics.StatusFromError(err))
	return setting, err
}
