// Package dto provides data transfer objects for the settings endpoints.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	settingsDomain "github.com/allisson/crm/internal/settings/domain"
	customValidation "github.com/allisson/crm/internal/validation"
)

// SetSettingRequest replaces the value of a setting.
type SetSettingRequest struct {
	Value string `json:"value"`
}

// Validate checks if the request is valid. The key comes from the path.
func (r *SetSettingRequest) Validate(key string) error {
	if err := validation.Validate(key, validation.Required, customValidation.SettingKey); err != nil {
		return validation.Errors{"key": err}
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.Required, customValidation.NotBlank, validation.Length(1, 1000)),
	)
}

// SettingResponse is the admin view of a setting.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SiteResponse is the public page metadata.
type SiteResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MapSettingToResponse converts a setting into its response.
func MapSettingToResponse(setting *settingsDomain.Setting) SettingResponse {
	return SettingResponse{Key: setting.Key, Value: setting.Value, UpdatedAt: setting.UpdatedAt}
}

// MapSettingsToResponse converts a list of settings.
func MapSettingsToResponse(settings []*settingsDomain.Setting) []SettingResponse {
	response := make([]SettingResponse, 0, len(settings))
	for _, setting := range settings {
		response = append(response, MapSettingToResponse(setting))
	}
	return response
}
