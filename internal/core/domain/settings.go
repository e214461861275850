package domain

import "time"

const unknownDescription = "Unknown"

// Settings keys accepted by the settings service.
const (
	SettingStoragePath          = "storage.path"
	SettingWatchEnabled         = "watch.enabled"
	SettingWatchDebounce        = "watch.debounce"
	SettingServerAddr           = "server.addr"
	SettingServerAllowedOrigins = "server.allowed_origins"
)

// AllSettingKeys returns the settings allow-list.
func AllSettingKeys() []string {
	return []string{
		SettingStoragePath,
		SettingWatchEnabled,
		SettingWatchDebounce,
		SettingServerAddr,
		SettingServerAllowedOrigins,
	}
}

// IsSettingKey returns true if key is in the allow-list.
func IsSettingKey(key string) bool {
	for _, k := range AllSettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// StorageSettings configures the database location.
type StorageSettings struct {
	// Path is the SQLite database file. Empty means ~/.foodshare/data/foodshare.db.
	Path string
}

// WatchSettings configures database change notifications.
type WatchSettings struct {
	// Enabled turns on refresh when another process writes the database.
	Enabled bool

	// Debounce is the minimum interval between refreshes.
	Debounce time.Duration
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address, e.g. "127.0.0.1:8080".
	Addr string

	// AllowedOrigins lists CORS origins. Empty disables CORS headers.
	AllowedOrigins []string
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Storage StorageSettings
	Watch   WatchSettings
	Server  ServerSettings
}

// DefaultAppSettings returns settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Watch: WatchSettings{
			Enabled:  true,
			Debounce: 500 * time.Millisecond,
		},
		Server: ServerSettings{
			Addr: "127.0.0.1:8080",
		},
	}
}
