package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/pizza-pos/db"
)

func TestParse_DefaultMenu(t *testing.T) {
	cat, err := Parse(db.Menu)
	require.NoError(t, err)

	assert.Equal(t, 6, cat.Len())

	price, ok := cat.Price("Margherita")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("18.50")))

	assert.True(t, cat.Has("Pepperoni"))
	assert.False(t, cat.Has("Calzone"))

	_, ok = cat.Price("Calzone")
	assert.False(t, ok)
}

func TestParse_NamesSorted(t *testing.T) {
	cat, err := Parse([]byte(`[
		{"name": "Pepperoni", "price": "21.00"},
		{"name": "BBQ Meatlovers", "price": "25.50"}
	]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"BBQ Meatlovers", "Pepperoni"}, cat.Names())
}

func TestParse_PricesIsACopy(t *testing.T) {
	cat, err := Parse(db.Menu)
	require.NoError(t, err)

	prices := cat.Prices()
	prices["Margherita"] = decimal.NewFromInt(1)

	original, ok := cat.Price("Margherita")
	require.True(t, ok)
	assert.True(t, original.Equal(decimal.RequireFromString("18.50")))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: `{"not": "an array"`},
		{name: "missing name", data: `[{"price": "10.00"}]`},
		{name: "negative price", data: `[{"name": "Freebie", "price": "-1.00"}]`},
		{name: "duplicate item", data: `[{"name": "Pepperoni", "price": "21.00"}, {"name": "Pepperoni", "price": "20.00"}]`},
		{name: "unparseable price", data: `[{"name": "Pepperoni", "price": "twenty"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}
