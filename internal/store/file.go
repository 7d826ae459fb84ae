package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"go.uber.org/zap"

	"github.com/xenking/pizza-pos/internal/domain/catalog"
	"github.com/xenking/pizza-pos/internal/domain/customer"
	"github.com/xenking/pizza-pos/internal/domain/order"
	"github.com/xenking/pizza-pos/internal/domain/pricing"
)

// firstOrderID seeds the monotonic order id counter for a fresh store.
const firstOrderID = 1000

var _ Store = (*FileStore)(nil)

// FileStore keeps the collections in memory and rewrites a single JSON
// file on every mutation. Writes go to a temp file followed by a rename,
// so a crash mid-write never corrupts previously durable state. When a
// write fails, the in-memory mutation is rolled back and the operation
// returns an error, keeping memory and disk in agreement.
type FileStore struct {
	path string
	cat  *catalog.Catalog
	lg   *zap.Logger
	now  func() time.Time

	customers map[string]*customer.Customer
	orders    []*order.Order
	byID      map[int]*order.Order
	nextID    int
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the store's logger.
func WithLogger(lg *zap.Logger) Option {
	return func(s *FileStore) { s.lg = lg }
}

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) { s.now = now }
}

// Open loads the store file at path, or starts empty when the file does
// not exist yet. The catalog is used to validate order items.
func Open(path string, cat *catalog.Catalog, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:      path,
		cat:       cat,
		lg:        zap.NewNop(),
		now:       time.Now,
		customers: make(map[string]*customer.Customer),
		byID:      make(map[int]*order.Order),
		nextID:    firstOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.lg.Info("Starting with empty store", zap.String("path", path))
		return s, nil
	case err != nil:
		return nil, errors.Wrap(err, "read store file")
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	s.customers = snap.customers
	s.orders = snap.orders
	for _, o := range snap.orders {
		s.byID[o.ID] = o
		if o.ID >= s.nextID {
			s.nextID = o.ID + 1
		}
	}

	s.lg.Info("Loaded store",
		zap.String("path", path),
		zap.Int("customers", len(s.customers)),
		zap.Int("orders", len(s.orders)),
	)
	return s, nil
}

// AddCustomer registers a new customer. The phone must not be in use.
func (s *FileStore) AddCustomer(ctx context.Context, c *customer.Customer) error {
	if _, exists := s.customers[c.Phone]; exists {
		return errors.Wrapf(ErrDuplicateCustomer, "phone %s", c.Phone)
	}

	s.customers[c.Phone] = c
	if err := s.save(ctx); err != nil {
		delete(s.customers, c.Phone)
		return err
	}
	return nil
}

// GetCustomer looks up a customer by phone.
func (s *FileStore) GetCustomer(_ context.Context, phone string) (*customer.Customer, bool) {
	c, ok := s.customers[phone]
	return c, ok
}

// GetOrCreateCustomer returns the customer registered under phone,
// creating a non-loyalty one when absent. Idempotent.
func (s *FileStore) GetOrCreateCustomer(ctx context.Context, phone, name string) (*customer.Customer, error) {
	if c, ok := s.customers[phone]; ok {
		return c, nil
	}

	c := customer.New(phone, name)
	s.customers[phone] = c
	if err := s.save(ctx); err != nil {
		delete(s.customers, phone)
		return nil, err
	}
	return c, nil
}

// SetCustomerLoyalty toggles a customer's loyalty membership.
func (s *FileStore) SetCustomerLoyalty(ctx context.Context, phone string, member bool) error {
	c, ok := s.customers[phone]
	if !ok {
		return errors.Wrapf(ErrCustomerNotFound, "phone %s", phone)
	}

	prev := c.LoyaltyMember
	c.LoyaltyMember = member
	if err := s.save(ctx); err != nil {
		c.LoyaltyMember = prev
		return err
	}
	return nil
}

// CustomerPhones returns all registered phone numbers, sorted.
func (s *FileStore) CustomerPhones(_ context.Context) []string {
	phones := make([]string, 0, len(s.customers))
	for phone := range s.customers {
		phones = append(phones, phone)
	}
	sort.Strings(phones)
	return phones
}

// AddOrder validates the items against the catalog, assigns the next
// order id, appends the order, and persists.
func (s *FileStore) AddOrder(ctx context.Context, cust *customer.Customer, items map[string]int, homeDelivery bool) (*order.Order, error) {
	stored, ok := s.customers[cust.Phone]
	if !ok {
		return nil, errors.Wrapf(ErrCustomerNotFound, "phone %s", cust.Phone)
	}

	if len(items) == 0 {
		return nil, pricing.ErrEmptyItems
	}
	copied := make(map[string]int, len(items))
	for name, qty := range items {
		if qty <= 0 {
			return nil, &pricing.InvalidQuantityError{Name: name}
		}
		if !s.cat.Has(name) {
			return nil, &pricing.UnknownItemError{Name: name}
		}
		copied[name] = qty
	}

	o := order.New(s.nextID, stored, copied, homeDelivery, s.now())
	s.orders = append(s.orders, o)
	s.byID[o.ID] = o
	s.nextID++

	if err := s.save(ctx); err != nil {
		s.orders = s.orders[:len(s.orders)-1]
		delete(s.byID, o.ID)
		s.nextID--
		return nil, err
	}
	return o, nil
}

// GetOrder looks up an order by id.
func (s *FileStore) GetOrder(_ context.Context, id int) (*order.Order, bool) {
	o, ok := s.byID[id]
	return o, ok
}

// SetOrderStatus transitions the order and persists the change.
func (s *FileStore) SetOrderStatus(ctx context.Context, id int, status order.Status) error {
	o, ok := s.byID[id]
	if !ok {
		return errors.Wrapf(ErrOrderNotFound, "id %d", id)
	}

	prevStatus, prevCompleted := o.Status, o.CompletedAt
	if err := o.SetStatus(status, s.now()); err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		o.Status, o.CompletedAt = prevStatus, prevCompleted
		return err
	}
	return nil
}

// OrdersForDay returns orders placed on the same calendar day as day,
// in local time and insertion order. A zero day means today.
func (s *FileStore) OrdersForDay(_ context.Context, day time.Time) []*order.Order {
	if day.IsZero() {
		day = s.now()
	}
	day = day.Local()

	var out []*order.Order
	for _, o := range s.orders {
		placed := o.PlacedAt.Local()
		if placed.Year() == day.Year() && placed.YearDay() == day.YearDay() {
			out = append(out, o)
		}
	}
	return out
}

// AllOrders returns the lifetime order collection in insertion order.
func (s *FileStore) AllOrders(_ context.Context) []*order.Order {
	out := make([]*order.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// ClearOrders empties the order collection and persists. The id counter
// is not reset: ids stay unique for the lifetime of the store.
func (s *FileStore) ClearOrders(ctx context.Context) error {
	prevOrders, prevByID := s.orders, s.byID

	s.orders = nil
	s.byID = make(map[int]*order.Order)

	if err := s.save(ctx); err != nil {
		s.orders, s.byID = prevOrders, prevByID
		return err
	}
	return nil
}

// Save forces a write of the current state. Mutations already write
// through, so this only matters for an explicit flush on shutdown.
func (s *FileStore) Save(ctx context.Context) error {
	return s.save(ctx)
}

// Backup writes a gzip-compressed snapshot of the store to path. The
// uncompressed payload is the same JSON document as the store file.
func (s *FileStore) Backup(_ context.Context, path string) error {
	data := encodeSnapshot(&snapshot{customers: s.customers, orders: s.orders})

	if err := writeFileAtomic(path, func(f *os.File) error {
		zw := pgzip.NewWriter(f)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		return zw.Close()
	}); err != nil {
		return errors.Wrap(err, "write backup")
	}

	s.lg.Info("Backup written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func (s *FileStore) save(_ context.Context) error {
	data := encodeSnapshot(&snapshot{customers: s.customers, orders: s.orders})

	if err := writeFileAtomic(s.path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	}); err != nil {
		return errors.Wrap(err, "save store")
	}

	s.lg.Debug("Store saved",
		zap.Int("customers", len(s.customers)),
		zap.Int("orders", len(s.orders)),
	)
	return nil
}

// writeFileAtomic writes via a temp file in the target directory and
// renames it into place, so readers never observe a partial file.
func writeFileAtomic(path string, write func(*os.File) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "rename into place")
	}
	return nil
}
