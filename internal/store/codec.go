package store

import (
	"math"
	"sort"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/pizza-pos/internal/domain/customer"
	"github.com/xenking/pizza-pos/internal/domain/order"
)

// snapshot is the unit of persistence: the full customer and order
// collections, written to disk wholesale on every mutation.
type snapshot struct {
	customers map[string]*customer.Customer
	orders    []*order.Order
}

// encodeEpoch converts a timestamp to float epoch seconds at millisecond
// precision, so that encode -> decode -> encode is byte-stable.
func encodeEpoch(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1e3
}

func decodeEpoch(f float64) time.Time {
	return time.UnixMilli(int64(math.Round(f * 1e3)))
}

// encodeSnapshot serializes the snapshot to the persisted JSON form.
// Customer keys are emitted in sorted order for stable output.
func encodeSnapshot(s *snapshot) []byte {
	var e jx.Encoder

	e.Obj(func(e *jx.Encoder) {
		e.Field("customers", func(e *jx.Encoder) {
			phones := make([]string, 0, len(s.customers))
			for phone := range s.customers {
				phones = append(phones, phone)
			}
			sort.Strings(phones)

			e.Obj(func(e *jx.Encoder) {
				for _, phone := range phones {
					c := s.customers[phone]
					e.Field(phone, func(e *jx.Encoder) {
						e.Obj(func(e *jx.Encoder) {
							e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
							e.Field("phone", func(e *jx.Encoder) { e.Str(c.Phone) })
							e.Field("loyalty_member", func(e *jx.Encoder) { e.Bool(c.LoyaltyMember) })
						})
					})
				}
			})
		})

		e.Field("orders", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, o := range s.orders {
					encodeOrder(e, o)
				}
			})
		})
	})

	return e.Bytes()
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("customer", func(e *jx.Encoder) { e.Str(o.Customer.Phone) })
		e.Field("time", func(e *jx.Encoder) { e.Float64(encodeEpoch(o.PlacedAt)) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status)) })
		e.Field("items", func(e *jx.Encoder) {
			names := make([]string, 0, len(o.Items))
			for name := range o.Items {
				names = append(names, name)
			}
			sort.Strings(names)

			e.Obj(func(e *jx.Encoder) {
				for _, name := range names {
					qty := o.Items[name]
					e.Field(name, func(e *jx.Encoder) { e.Int(qty) })
				}
			})
		})
		e.Field("is_home_delivery", func(e *jx.Encoder) { e.Bool(o.IsHomeDelivery) })
		e.Field("id", func(e *jx.Encoder) { e.Int(o.ID) })
		e.Field("completed_time", func(e *jx.Encoder) {
			if o.CompletedAt.IsZero() {
				e.Null()
				return
			}
			e.Float64(encodeEpoch(o.CompletedAt))
		})
	})
}

// orderRecord is the raw persisted form of an order, resolved against
// the customer collection after the full document is decoded.
type orderRecord struct {
	customerPhone string
	placedAt      time.Time
	status        order.Status
	items         map[string]int
	homeDelivery  bool
	id            int
	completedAt   time.Time
}

// decodeSnapshot parses the persisted JSON form. Orders referencing a
// phone absent from the customer collection fail the decode.
func decodeSnapshot(data []byte) (*snapshot, error) {
	s := &snapshot{customers: make(map[string]*customer.Customer)}
	var records []orderRecord

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "customers":
			return d.Obj(func(d *jx.Decoder, phone string) error {
				c, err := decodeCustomer(d)
				if err != nil {
					return errors.Wrapf(err, "customer %q", phone)
				}
				s.customers[phone] = c
				return nil
			})
		case "orders":
			return d.Arr(func(d *jx.Decoder) error {
				rec, err := decodeOrderRecord(d)
				if err != nil {
					return err
				}
				records = append(records, rec)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errors.Wrap(err, "decode store")
	}

	for _, rec := range records {
		c, ok := s.customers[rec.customerPhone]
		if !ok {
			return nil, errors.Errorf("order %d references unknown customer %q", rec.id, rec.customerPhone)
		}
		o := &order.Order{
			ID:             rec.id,
			Customer:       c,
			Items:          rec.items,
			IsHomeDelivery: rec.homeDelivery,
			Status:         rec.status,
			PlacedAt:       rec.placedAt,
			CompletedAt:    rec.completedAt,
		}
		s.orders = append(s.orders, o)
	}

	return s, nil
}

func decodeCustomer(d *jx.Decoder) (*customer.Customer, error) {
	var c customer.Customer
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			c.Name, err = d.Str()
		case "phone":
			c.Phone, err = d.Str()
		case "loyalty_member":
			c.LoyaltyMember, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeOrderRecord(d *jx.Decoder) (orderRecord, error) {
	rec := orderRecord{items: make(map[string]int)}
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "customer":
			phone, err := d.Str()
			if err != nil {
				return err
			}
			rec.customerPhone = phone
		case "time":
			f, err := d.Float64()
			if err != nil {
				return err
			}
			rec.placedAt = decodeEpoch(f)
		case "status":
			raw, err := d.Str()
			if err != nil {
				return err
			}
			status, err := order.ParseStatus(raw)
			if err != nil {
				return err
			}
			rec.status = status
		case "items":
			return d.Obj(func(d *jx.Decoder, name string) error {
				qty, err := d.Int()
				if err != nil {
					return err
				}
				rec.items[name] = qty
				return nil
			})
		case "is_home_delivery":
			hd, err := d.Bool()
			if err != nil {
				return err
			}
			rec.homeDelivery = hd
		case "id":
			id, err := d.Int()
			if err != nil {
				return err
			}
			rec.id = id
		case "completed_time":
			if d.Next() == jx.Null {
				return d.Null()
			}
			f, err := d.Float64()
			if err != nil {
				return err
			}
			rec.completedAt = decodeEpoch(f)
		default:
			return d.Skip()
		}
		return nil
	}); err != nil {
		return orderRecord{}, errors.Wrap(err, "decode order")
	}
	return rec, nil
}
