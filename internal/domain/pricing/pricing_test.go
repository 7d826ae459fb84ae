package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuPrices() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"Margherita": decimal.RequireFromString("18.50"),
		"Pepperoni":  decimal.RequireFromString("21.00"),
		"Hawaiian":   decimal.RequireFromString("19.00"),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		items        map[string]int
		loyalty      bool
		homeDelivery bool

		wantRaw       string
		wantDiscount  string
		wantDelivery  string
		wantBeforeTax string
		wantTax       string
		wantAfterTax  string
	}{
		{
			name:          "six margheritas without loyalty",
			items:         map[string]int{"Margherita": 6},
			wantRaw:       "111.00",
			wantDiscount:  "0",
			wantDelivery:  "0",
			wantBeforeTax: "111.00",
			wantTax:       "11.10",
			wantAfterTax:  "122.10",
		},
		{
			name:          "six margheritas with loyalty",
			items:         map[string]int{"Margherita": 6},
			loyalty:       true,
			wantRaw:       "111.00",
			wantDiscount:  "5.55",
			wantDelivery:  "0",
			wantBeforeTax: "105.45",
			wantTax:       "10.545",
			wantAfterTax:  "115.995",
		},
		{
			name:          "below threshold loyalty gets no discount",
			items:         map[string]int{"Hawaiian": 2},
			loyalty:       true,
			wantRaw:       "38.00",
			wantDiscount:  "0",
			wantDelivery:  "0",
			wantBeforeTax: "38.00",
			wantTax:       "3.80",
			wantAfterTax:  "41.80",
		},
		{
			name:          "above threshold without loyalty gets no discount",
			items:         map[string]int{"Pepperoni": 6},
			wantRaw:       "126.00",
			wantDiscount:  "0",
			wantDelivery:  "0",
			wantBeforeTax: "126.00",
			wantTax:       "12.60",
			wantAfterTax:  "138.60",
		},
		{
			name:          "delivery fee is flat and taxed",
			items:         map[string]int{"Hawaiian": 1},
			homeDelivery:  true,
			wantRaw:       "19.00",
			wantDiscount:  "0",
			wantDelivery:  "5",
			wantBeforeTax: "24.00",
			wantTax:       "2.40",
			wantAfterTax:  "26.40",
		},
		{
			name:          "loyalty delivery order discounts then taxes",
			items:         map[string]int{"Pepperoni": 5, "Hawaiian": 1},
			loyalty:       true,
			homeDelivery:  true,
			wantRaw:       "124.00",
			wantDiscount:  "6.20",
			wantDelivery:  "5",
			wantBeforeTax: "122.80",
			wantTax:       "12.28",
			wantAfterTax:  "135.08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := Compute(tt.items, menuPrices(), tt.loyalty, tt.homeDelivery, DefaultParams())
			require.NoError(t, err)

			assertDecimal(t, tt.wantRaw, cost.Raw)
			assertDecimal(t, tt.wantDiscount, cost.Discount)
			assertDecimal(t, tt.wantDelivery, cost.Delivery)
			assertDecimal(t, tt.wantBeforeTax, cost.BeforeTax)
			assertDecimal(t, tt.wantTax, cost.Tax)
			assertDecimal(t, tt.wantAfterTax, cost.AfterTax)
		})
	}
}

func TestCompute_ThresholdIsStrict(t *testing.T) {
	// Raw cost of exactly 100 must not unlock the discount.
	prices := map[string]decimal.Decimal{"Flat Fifty": decimal.NewFromInt(50)}

	cost, err := Compute(map[string]int{"Flat Fifty": 2}, prices, true, false, DefaultParams())
	require.NoError(t, err)

	assertDecimal(t, "100", cost.Raw)
	assert.True(t, cost.Discount.IsZero())
}

func TestCompute_FormulaRoundTrip(t *testing.T) {
	cost, err := Compute(map[string]int{"Margherita": 6, "Pepperoni": 2}, menuPrices(), true, true, DefaultParams())
	require.NoError(t, err)

	beforeTax := cost.Raw.Sub(cost.Discount).Add(cost.Delivery)
	assert.True(t, cost.BeforeTax.Equal(beforeTax))
	assert.True(t, cost.Tax.Equal(beforeTax.Mul(decimal.RequireFromString("0.1"))))
	assert.True(t, cost.AfterTax.Equal(beforeTax.Mul(decimal.RequireFromString("1.1"))))
}

func TestCompute_Idempotent(t *testing.T) {
	items := map[string]int{"Margherita": 6, "Hawaiian": 1}

	first, err := Compute(items, menuPrices(), true, true, DefaultParams())
	require.NoError(t, err)
	second, err := Compute(items, menuPrices(), true, true, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		items   map[string]int
		wantErr any
	}{
		{
			name:    "empty items",
			items:   map[string]int{},
			wantErr: ErrEmptyItems,
		},
		{
			name:    "unknown item",
			items:   map[string]int{"Calzone": 1},
			wantErr: &UnknownItemError{},
		},
		{
			name:    "zero quantity",
			items:   map[string]int{"Margherita": 0},
			wantErr: &InvalidQuantityError{},
		},
		{
			name:    "negative quantity",
			items:   map[string]int{"Margherita": -2},
			wantErr: &InvalidQuantityError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.items, menuPrices(), false, false, DefaultParams())
			require.Error(t, err)

			switch want := tt.wantErr.(type) {
			case *UnknownItemError:
				var target *UnknownItemError
				require.ErrorAs(t, err, &target)
			case *InvalidQuantityError:
				var target *InvalidQuantityError
				require.ErrorAs(t, err, &target)
			case error:
				require.ErrorIs(t, err, want)
			}
		})
	}
}
