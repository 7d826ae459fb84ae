// Package catalog holds the fixed menu of items the shop sells.
// The catalog is loaded once at startup and never mutated.
package catalog

import (
	"sort"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Item is a single menu entry with its unit price.
type Item struct {
	Name  string
	Price decimal.Decimal
}

// Catalog maps item names to their unit prices.
type Catalog struct {
	items map[string]Item
	names []string
}

// Parse decodes a JSON array of {"name", "price"} objects into a Catalog.
// Prices are decoded as decimal strings to avoid float drift.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{items: make(map[string]Item)}

	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		var it Item
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "name":
				name, err := d.Str()
				if err != nil {
					return errors.Wrap(err, "name")
				}
				it.Name = name
			case "price":
				raw, err := d.Str()
				if err != nil {
					return errors.Wrap(err, "price")
				}
				price, err := decimal.NewFromString(raw)
				if err != nil {
					return errors.Wrapf(err, "parse price %q", raw)
				}
				it.Price = price
			default:
				return d.Skip()
			}
			return nil
		}); err != nil {
			return err
		}

		if it.Name == "" {
			return errors.New("item name is empty")
		}
		if it.Price.IsNegative() {
			return errors.Errorf("item %q has negative price", it.Name)
		}
		if _, exists := c.items[it.Name]; exists {
			return errors.Errorf("duplicate item %q", it.Name)
		}

		c.items[it.Name] = it
		c.names = append(c.names, it.Name)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode menu")
	}

	sort.Strings(c.names)
	return c, nil
}

// Price returns the unit price for the named item.
func (c *Catalog) Price(name string) (decimal.Decimal, bool) {
	it, ok := c.items[name]
	return it.Price, ok
}

// Has reports whether the named item is on the menu.
func (c *Catalog) Has(name string) bool {
	_, ok := c.items[name]
	return ok
}

// Names returns all item names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Prices returns a copy of the name -> unit price mapping.
func (c *Catalog) Prices() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(c.items))
	for name, it := range c.items {
		out[name] = it.Price
	}
	return out
}

// Len returns the number of items on the menu.
func (c *Catalog) Len() int {
	return len(c.items)
}
