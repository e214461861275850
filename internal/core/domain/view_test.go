package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseView(t *testing.T) {
	for _, v := range AllViews() {
		got, err := ParseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.NotEqual(t, "Unknown", v.Title())
	}

	_, err := ParseView("users")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestAllViews_Order(t *testing.T) {
	assert.Equal(t, []View{
		ViewTotalQuantity,
		ViewProviderContacts,
		ViewFilteredListings,
		ViewClaimsDistribution,
		ViewReceiversByCity,
	}, AllViews())
}
