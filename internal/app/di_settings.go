package app

import (
	"fmt"

	settingsHTTP "github.com/allisson/crm/internal/settings/http"
	settingsRepository "github.com/allisson/crm/internal/settings/repository"
	settingsService "github.com/allisson/crm/internal/settings/service"
	settingsUseCase "github.com/allisson/crm/internal/settings/usecase"
)

// SettingRepository returns the system settings repository for the configured driver.
func (c *Container) SettingRepository() (settingsUseCase.SettingRepository, error) {
	var err error
	c.settingRepositoryInit.Do(func() {
		c.settingRepository, err = c.initSettingRepository()
		if err != nil {
			c.initErrors["settingRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingRepository"]; exists {
		return nil, storedErr
	}
	return c.settingRepository, nil
}

// SettingsCache returns the process-wide settings cache.
func (c *Container) SettingsCache() (*settingsService.Cache, error) {
	var err error
	c.settingsCacheInit.Do(func() {
		c.settingsCache, err = c.initSettingsCache()
		if err != nil {
			c.initErrors["settingsCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsCache"]; exists {
		return nil, storedErr
	}
	return c.settingsCache, nil
}

// SettingsUseCase returns the settings use case.
func (c *Container) SettingsUseCase() (settingsUseCase.SettingsUseCase, error) {
	var err error
	c.settingsUseCaseInit.Do(func() {
		c.settingsUseCase, err = c.initSettingsUseCase()
		if err != nil {
			c.initErrors["settingsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsUseCase"]; exists {
		return nil, storedErr
	}
	return c.settingsUseCase, nil
}

// SettingsHandler returns the HTTP handler for site metadata and admin settings.
func (c *Container) SettingsHandler() (*settingsHTTP.SettingsHandler, error) {
	var err error
	c.settingsHandlerInit.Do(func() {
		c.settingsHandler, err = c.initSettingsHandler()
		if err != nil {
			c.initErrors["settingsHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsHandler"]; exists {
		return nil, storedErr
	}
	return c.settingsHandler, nil
}

func (c *Container) initSettingRepository() (settingsUseCase.SettingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for setting repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return settingsRepository.NewPostgreSQLSettingRepository(db), nil
	case "mysql":
		return settingsRepository.NewMySQLSettingRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initSettingsCache() (*settingsService.Cache, error) {
	settingRepository, err := c.SettingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting repository for settings cache: %w", err)
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for settings cache: %w", err)
	}
	return settingsService.NewCache(settingRepository, c.config.SettingsCacheTTL, businessMetrics, c.Logger()), nil
}

func (c *Container) initSettingsUseCase() (settingsUseCase.SettingsUseCase, error) {
	settingRepository, err := c.SettingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting repository for settings use case: %w", err)
	}
	cache, err := c.SettingsCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings cache for settings use case: %w", err)
	}

	baseUseCase := settingsUseCase.NewSettingsUseCase(settingRepository, cache)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for settings use case: %w", err)
		}
		return settingsUseCase.NewSettingsUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initSettingsHandler() (*settingsHTTP.SettingsHandler, error) {
	useCase, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for settings handler: %w", err)
	}
	authorizer, err := c.Authorizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer for settings handler: %w", err)
	}
	return settingsHTTP.NewSettingsHandler(useCase, authorizer, c.Logger()), nil
}
