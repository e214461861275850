package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driven"
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Path: s.configStore.GetString(domain.SettingStoragePath), // Empty means the default location
		},
		Watch: domain.WatchSettings{
			Enabled:  s.getBool(domain.SettingWatchEnabled, defaults.Watch.Enabled),
			Debounce: s.getDuration(domain.SettingWatchDebounce, defaults.Watch.Debounce),
		},
		Server: domain.ServerSettings{
			Addr:           s.getString(domain.SettingServerAddr, defaults.Server.Addr),
			AllowedOrigins: s.configStore.GetStringSlice(domain.SettingServerAllowedOrigins),
		},
	}

	return settings, nil
}

// Set parses and stores one setting.
func (s *SettingsService) Set(key, value string) error {
	if !domain.IsSettingKey(key) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}

	var stored any
	switch key {
	case domain.SettingWatchEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &domain.ValidationError{Field: key, Reason: "must be true or false"}
		}
		stored = b
	case domain.SettingWatchDebounce:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return &domain.ValidationError{Field: key, Reason: "must be a duration such as 500ms"}
		}
		stored = d.String()
	case domain.SettingServerAllowedOrigins:
		origins := []string{}
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		stored = origins
	default:
		stored = strings.TrimSpace(value)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}
