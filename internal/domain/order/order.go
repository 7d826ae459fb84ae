// Package order defines the order entity and its status lifecycle.
package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/pizza-pos/internal/domain/customer"
	"github.com/xenking/pizza-pos/internal/domain/pricing"
)

// Order is a customer's placed order. Items and delivery flag are fixed
// at creation; only the status and completion timestamp mutate afterwards.
type Order struct {
	ID             int
	Customer       *customer.Customer
	Items          map[string]int
	IsHomeDelivery bool
	Status         Status
	PlacedAt       time.Time
	// CompletedAt is zero until the order is marked done.
	CompletedAt time.Time
}

// New creates a PENDING order placed at the given time.
func New(id int, cust *customer.Customer, items map[string]int, homeDelivery bool, placedAt time.Time) *Order {
	return &Order{
		ID:             id,
		Customer:       cust,
		Items:          items,
		IsHomeDelivery: homeDelivery,
		Status:         StatusPending,
		PlacedAt:       placedAt,
	}
}

// SetStatus transitions the order to the given status. Transitions
// between non-terminal statuses are unrestricted (PENDING may jump
// straight to DONE); transitions out of DONE or CANCELLED are rejected.
// Moving to DONE stamps CompletedAt with now; no other transition
// touches timestamps.
func (o *Order) SetStatus(s Status, now time.Time) error {
	if o.Status.Terminal() {
		return &TerminalTransitionError{From: o.Status, To: s}
	}
	o.Status = s
	if s == StatusDone {
		o.CompletedAt = now
	}
	return nil
}

// MarkInProgress moves the order to IN_PROGRESS.
func (o *Order) MarkInProgress() error {
	return o.SetStatus(StatusInProgress, time.Time{})
}

// MarkCancelled moves the order to CANCELLED.
func (o *Order) MarkCancelled() error {
	return o.SetStatus(StatusCancelled, time.Time{})
}

// MarkDone moves the order to DONE and records the completion time.
func (o *Order) MarkDone(completedAt time.Time) error {
	return o.SetStatus(StatusDone, completedAt)
}

// Cost computes the order's cost breakdown against the given unit
// prices. The customer's loyalty flag is read at call time, not frozen
// at placement, so toggling loyalty changes the quoted cost of open
// orders.
func (o *Order) Cost(prices map[string]decimal.Decimal, p pricing.Params) (pricing.Cost, error) {
	return pricing.Compute(o.Items, prices, o.Customer.LoyaltyMember, o.IsHomeDelivery, p)
}
