package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

func TestOptionsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "options")

	require.NoError(t, err)
	assert.Contains(t, out, "Cities:")
	assert.Contains(t, out, "* Springfield")
	assert.Contains(t, out, "  Shelbyville")
	assert.Contains(t, out, "Kwik Mart")
	assert.Contains(t, out, "* Vegan")
}

func TestOptionsCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "options", "--json")

	require.NoError(t, err)
	var got struct {
		Options       domain.FilterOptions `json:"options"`
		DefaultFilter domain.Filter        `json:"default_filter"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"Acme Foods", "Kwik Mart"}, got.Options.Providers)
	assert.Equal(t, "Springfield", got.DefaultFilter.City)
}

func TestTotalCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "total")
	require.NoError(t, err)
	assert.Contains(t, out, "Total quantity available: 8")

	out, err = execute(t, "total", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_quantity": 8}`, out)
}

func TestContactsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "contacts", "--city", "Springfield")

	require.NoError(t, err)
	assert.Contains(t, out, "Contact Providers in Selected City (Springfield)")
	assert.Contains(t, out, "Acme Foods")
	assert.Contains(t, out, "555-0100")
	assert.NotContains(t, out, "Kwik Mart")
	assert.Contains(t, out, "1 rows")
}

func TestContactsCmd_DefaultsToFirstCity(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "contacts")

	require.NoError(t, err)
	assert.Contains(t, out, "(Springfield)")
}

func TestListingsCmd(t *testing.T) {
	setupTestServices(t)

	t.Run("matches city and type", func(t *testing.T) {
		out, err := execute(t, "listings", "--city", "Shelbyville", "--type", "Vegetarian")

		require.NoError(t, err)
		assert.Contains(t, out, "Bread")
		assert.NotContains(t, out, "Rice")
	})

	t.Run("provider narrows", func(t *testing.T) {
		out, err := execute(t, "listings", "-c", "Springfield", "-t", "Vegan", "-p", "Kwik Mart")

		require.NoError(t, err)
		assert.Contains(t, out, "No matching rows.")
	})

	t.Run("json records", func(t *testing.T) {
		out, err := execute(t, "listings", "--city", "Springfield", "--type", "Vegan", "--json")

		require.NoError(t, err)
		var records []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "Rice", records[0]["Food_Name"])
		assert.Equal(t, "2026-03-15", records[0]["Expiry_Date"])
	})

	t.Run("no match is empty json array", func(t *testing.T) {
		out, err := execute(t, "listings", "--city", "Ogdenville", "--type", "Vegan", "--json")

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, out)
	})
}

func TestClaimsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "claims")
	require.NoError(t, err)
	assert.Contains(t, out, "Claims Distribution")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "█")

	out, err = execute(t, "claims", "--json")
	require.NoError(t, err)
	var counts []domain.ClaimCount
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	var sum int64
	for _, c := range counts {
		sum += c.Count
	}
	assert.Equal(t, int64(3), sum)
}

func TestReceiversCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "receivers", "--city", "Springfield")
	require.NoError(t, err)
	assert.Contains(t, out, "Food Bank")

	out, err = execute(t, "receivers", "--city", "Shelbyville")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching rows.")
}

func TestViewCmds_WithoutServices(t *testing.T) {
	SetServices(nil)

	for _, args := range [][]string{{"options"}, {"total"}, {"contacts"}, {"claims"}} {
		_, err := execute(t, args...)
		assert.Error(t, err, args[0])
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(3, 0, 10))
	assert.Equal(t, "██████████", bar(4, 4, 10))
	assert.Equal(t, "█████", bar(2, 4, 10))
}
