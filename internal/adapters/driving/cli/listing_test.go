package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

func addArgs(extra ...string) []string {
	args := []string{
		"listing", "add",
		"--name", "Soup",
		"--quantity", "4",
		"--expiry", "2026-04-01",
		"--provider-id", "1",
		"--provider-name", "Acme Foods",
		"--location", "Springfield",
		"--type", "Vegan",
		"--meal", "Lunch",
	}
	return append(args, extra...)
}

func TestListingAddCmd(t *testing.T) {
	store := setupTestServices(t)

	out, err := execute(t, addArgs()...)

	require.NoError(t, err)
	assert.Contains(t, out, "Listing 3 added: Soup (4, expires 2026-04-01)")
	require.Len(t, store.Listings(), 3)
	assert.Equal(t, "Soup", store.Listings()[2].FoodName)

	out, err = execute(t, "total")
	require.NoError(t, err)
	assert.Contains(t, out, "Total quantity available: 12")
}

func TestListingAddCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, addArgs("--json")...)

	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(3), got["food_id"])
	assert.Equal(t, "2026-04-01", got["expiry_date"])
}

func TestListingAddCmd_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"zero quantity", addArgs("--quantity", "0"), "quantity"},
		{"negative quantity", addArgs("--quantity", "-1"), "quantity"},
		{"bad date", addArgs("--expiry", "15/03/2026"), "expiry_date"},
		{"unknown provider", addArgs("--provider-id", "9"), "provider_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestServices(t)

			_, err := execute(t, tt.args...)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Len(t, store.Listings(), 2)
		})
	}
}

func TestListingAddCmd_RequiredFlags(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "listing", "add", "--name", "Soup")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
