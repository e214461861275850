package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodshare/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/foodshare/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Watch, settings.Watch)
	assert.Equal(t, defaults.Server.Addr, settings.Server.Addr)
	assert.Empty(t, settings.Storage.Path)
	assert.Empty(t, settings.Server.AllowedOrigins)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"storage.path":           "/data/food.db",
		"watch.enabled":          false,
		"watch.debounce":         "2s",
		"server.addr":            ":9090",
		"server.allowed_origins": []any{"http://localhost:3000"},
	})
	service := NewSettingsService(store)

	settings, err := service.Get()
	require.NoError(t, err)

	assert.Equal(t, "/data/food.db", settings.Storage.Path)
	assert.False(t, settings.Watch.Enabled)
	assert.Equal(t, 2*time.Second, settings.Watch.Debounce)
	assert.Equal(t, ":9090", settings.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, settings.Server.AllowedOrigins)
}

func TestSettingsService_Get_InvalidDebounceReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"watch.debounce": "soon"})
	service := NewSettingsService(store)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().Watch.Debounce, settings.Watch.Debounce)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{"storage.path", " /tmp/x.db ", "/tmp/x.db"},
		{"watch.enabled", "false", false},
		{"watch.debounce", "1500ms", "1.5s"},
		{"server.addr", "0.0.0.0:8081", "0.0.0.0:8081"},
		{"server.allowed_origins", "http://a.test, http://b.test,", []string{"http://a.test", "http://b.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			require.NoError(t, service.Set(tt.key, tt.value))
			got, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_Set_RoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("watch.debounce", "250ms"))
	require.NoError(t, service.Set("server.allowed_origins", "http://localhost:5173"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, settings.Watch.Debounce)
	assert.Equal(t, []string{"http://localhost:5173"}, settings.Server.AllowedOrigins)
}

func TestSettingsService_Set_UnknownKey(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.Set("llm.api_key", "secret")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)
	assert.Equal(t, 0, store.Saves())
}

func TestSettingsService_Set_InvalidValue(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Set("watch.enabled", "sometimes"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("watch.debounce", "-1s"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("watch.debounce", "fast"), domain.ErrInvalidInput)
}

func TestSettingsService_Set_StoreError(t *testing.T) {
	store := memory.NewConfigStore()
	store.FailWith(errors.New("read-only file system"))
	service := NewSettingsService(store)

	err := service.Set("server.addr", ":1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save server.addr")
}
