// Package store owns the customer and order collections and their
// persistence. Every mutation is written through to disk before the
// call returns.
package store

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/pizza-pos/internal/domain/customer"
	"github.com/xenking/pizza-pos/internal/domain/order"
)

var (
	// ErrDuplicateCustomer is returned when adding a customer whose
	// phone is already registered.
	ErrDuplicateCustomer = errors.New("customer already exists")
	// ErrCustomerNotFound is returned by mutations that target an
	// unregistered phone.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrOrderNotFound is returned by mutations that target an unknown
	// order id.
	ErrOrderNotFound = errors.New("order not found")
)

// Store is the full surface exposed to the command shell.
type Store interface {
	AddCustomer(ctx context.Context, c *customer.Customer) error
	GetCustomer(ctx context.Context, phone string) (*customer.Customer, bool)
	GetOrCreateCustomer(ctx context.Context, phone, name string) (*customer.Customer, error)
	SetCustomerLoyalty(ctx context.Context, phone string, member bool) error
	CustomerPhones(ctx context.Context) []string

	AddOrder(ctx context.Context, cust *customer.Customer, items map[string]int, homeDelivery bool) (*order.Order, error)
	GetOrder(ctx context.Context, id int) (*order.Order, bool)
	SetOrderStatus(ctx context.Context, id int, status order.Status) error
	OrdersForDay(ctx context.Context, day time.Time) []*order.Order
	AllOrders(ctx context.Context) []*order.Order
	ClearOrders(ctx context.Context) error

	Backup(ctx context.Context, path string) error
}
