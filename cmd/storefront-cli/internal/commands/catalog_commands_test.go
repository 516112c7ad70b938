//go:build unit
// +build unit

package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
products:
  - name: Kékfrankos 2021
    slug: kekfrankos-2021
    category: wine
    unit_price: "3490"
    stock: 120
    subscription_eligible: true
  - name: Szentkirályi 0.75l
    slug: szentkiralyi-075
    category: water
    unit_price: "290.50"
    currency: HUF
    stock: 600
    active: false
`

func TestParseCatalog(t *testing.T) {
	products, err := parseCatalog(strings.NewReader(testCatalog))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "kekfrankos-2021", products[0].Slug)
	assert.Equal(t, "3490", products[0].UnitPrice.String())
	assert.True(t, products[0].Active, "active defaults to true")
	assert.True(t, products[0].SubscriptionEligible)

	assert.Equal(t, "290.5", products[1].UnitPrice.String())
	assert.False(t, products[1].Active)
	assert.Equal(t, 600, products[1].Stock)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty file", "", "empty"},
		{"no products", "products: []\n", "no products"},
		{"unknown key", "products:\n  - slug: a\n    unit_price: \"1\"\n    prize: 3\n", "prize"},
		{"missing slug", "products:\n  - name: Nameless\n    unit_price: \"1\"\n", "no slug"},
		{"duplicate slug", "products:\n  - slug: a\n    unit_price: \"1\"\n  - slug: a\n    unit_price: \"2\"\n", "duplicate slug a"},
		{"bad price", "products:\n  - slug: a\n    unit_price: cheap\n", "invalid unit_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
