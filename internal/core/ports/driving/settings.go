package driving

import "github.com/custodia-labs/foodshare/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set stores one setting by key. Returns domain.ErrUnknownSetting for keys
	// outside the allow-list and domain.ErrInvalidInput for unparsable values.
	Set(key, value string) error
}
