package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "Path: (default)")
	assert.Contains(t, out, "Enabled: yes")
	assert.Contains(t, out, "Debounce: 500ms")
	assert.Contains(t, out, "Address: 127.0.0.1:8080")
	assert.Contains(t, out, "Allowed origins: (none)")
}

func TestSettingsCmd_Set(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings", "set", "server.allowed_origins", "http://a.test, http://b.test")
	require.NoError(t, err)
	assert.Contains(t, out, "Set server.allowed_origins")

	out, err = execute(t, "settings", "set", "watch.enabled", "false")
	require.NoError(t, err)
	assert.Contains(t, out, "Takes effect on next start.")

	out, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Allowed origins: http://a.test, http://b.test")
	assert.Contains(t, out, "Enabled: no")
}

func TestSettingsCmd_SetErrors(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "settings", "set", "search.mode", "hybrid")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)
	assert.Contains(t, err.Error(), "valid keys")

	_, err = execute(t, "settings", "set", "watch.debounce", "soon")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "settings", "set", "server.addr")
	assert.Error(t, err)
}

func TestSettingsCmd_WithoutService(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "settings", "show")

	assert.EqualError(t, err, "settings service not configured")
}
