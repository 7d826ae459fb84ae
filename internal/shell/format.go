package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xenking/pizza-pos/internal/domain/order"
	"github.com/xenking/pizza-pos/internal/domain/pricing"
)

const timeLayout = "2006-01-02 15:04:05"

// formatOrderLine renders the condensed one-line order view, e.g.
// "1234|2021-09-01 12:00:00| John Doe (0400000000) - Pepperoni x2 - PENDING".
func formatOrderLine(o *order.Order) string {
	parts := make([]string, 0, len(o.Items))
	for _, name := range sortedKeys(o.Items) {
		parts = append(parts, fmt.Sprintf("%s x%d", name, o.Items[name]))
	}
	return fmt.Sprintf("%d|%s| %s - %s - %s",
		o.ID,
		o.PlacedAt.Local().Format(timeLayout),
		o.Customer,
		strings.Join(parts, ", "),
		o.Status,
	)
}

// formatOrderDetail renders the full order view with the itemized cost
// breakdown. Money is rounded to cents for display only.
func formatOrderDetail(o *order.Order, prices map[string]decimal.Decimal, params pricing.Params) (string, error) {
	cost, err := o.Cost(prices, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order %d for %s at %s\n", o.ID, o.Customer, o.PlacedAt.Local().Format(timeLayout))
	b.WriteString("Items:\n")
	for _, name := range sortedKeys(o.Items) {
		qty := o.Items[name]
		unit := prices[name]
		line := unit.Mul(decimal.NewFromInt(int64(qty)))
		fmt.Fprintf(&b, "\t- %s x %d ($%s each, $%s total)\n", name, qty, unit.StringFixed(2), line.StringFixed(2))
	}
	fmt.Fprintf(&b, "Status: %s\n", o.Status)
	if o.IsHomeDelivery {
		b.WriteString("Home delivery\n")
	}
	if o.Status == order.StatusDone {
		fmt.Fprintf(&b, "Completed at %s\n", o.CompletedAt.Local().Format(timeLayout))
	}
	fmt.Fprintf(&b, "Gross: $%s\n", cost.Raw.StringFixed(2))
	if cost.Discount.IsPositive() {
		fmt.Fprintf(&b, "Discount: $%s\n", cost.Discount.StringFixed(2))
	}
	if cost.Delivery.IsPositive() {
		fmt.Fprintf(&b, "Delivery: $%s\n", cost.Delivery.StringFixed(2))
	}
	fmt.Fprintf(&b, "GST: $%s\n", cost.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total: $%s", cost.AfterTax.StringFixed(2))
	return b.String(), nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
