// Package pricing computes itemized order cost breakdowns.
package pricing

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrEmptyItems is returned when a cost is requested for an order with no items.
var ErrEmptyItems = errors.New("items required")

// UnknownItemError indicates a requested item is not priced in the catalog.
type UnknownItemError struct {
	Name string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("item %q not found", e.Name)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	Name string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for item %q", e.Name)
}

// Params holds the tunable pricing constants.
type Params struct {
	// DiscountThreshold is the raw cost a loyalty order must exceed
	// (strictly) before the discount applies.
	DiscountThreshold decimal.Decimal
	// DiscountRate is the fraction of raw cost deducted when eligible.
	DiscountRate decimal.Decimal
	// DeliveryFee is the flat charge for home delivery, independent of
	// order size.
	DeliveryFee decimal.Decimal
	// TaxRate is applied to the post-discount, post-delivery subtotal.
	TaxRate decimal.Decimal
}

// DefaultParams returns the standard pricing constants: 5% loyalty
// discount above $100, $5 flat delivery, 10% GST.
func DefaultParams() Params {
	return Params{
		DiscountThreshold: decimal.NewFromInt(100),
		DiscountRate:      decimal.NewFromFloat(0.05),
		DeliveryFee:       decimal.NewFromInt(5),
		TaxRate:           decimal.NewFromFloat(0.1),
	}
}

// Cost is the itemized breakdown of an order's price. All components are
// exact decimals; rounding happens only at display time.
type Cost struct {
	Raw       decimal.Decimal
	Discount  decimal.Decimal
	Delivery  decimal.Decimal
	BeforeTax decimal.Decimal
	Tax       decimal.Decimal
	AfterTax  decimal.Decimal
}

// Compute derives the full cost breakdown for the given line items.
// The discount applies iff the raw cost strictly exceeds the threshold
// and the customer is loyalty eligible; tax is computed on the
// post-discount, post-delivery subtotal. Pure: identical inputs always
// produce identical output.
func Compute(
	items map[string]int,
	prices map[string]decimal.Decimal,
	loyaltyEligible bool,
	homeDelivery bool,
	p Params,
) (Cost, error) {
	if len(items) == 0 {
		return Cost{}, ErrEmptyItems
	}

	raw := decimal.Zero
	for name, qty := range items {
		if qty <= 0 {
			return Cost{}, &InvalidQuantityError{Name: name}
		}
		price, ok := prices[name]
		if !ok {
			return Cost{}, &UnknownItemError{Name: name}
		}
		raw = raw.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	discount := decimal.Zero
	if loyaltyEligible && raw.GreaterThan(p.DiscountThreshold) {
		discount = raw.Mul(p.DiscountRate)
	}

	delivery := decimal.Zero
	if homeDelivery {
		delivery = p.DeliveryFee
	}

	beforeTax := raw.Sub(discount).Add(delivery)
	tax := beforeTax.Mul(p.TaxRate)

	return Cost{
		Raw:       raw,
		Discount:  discount,
		Delivery:  delivery,
		BeforeTax: beforeTax,
		Tax:       tax,
		AfterTax:  beforeTax.Add(tax),
	}, nil
}
