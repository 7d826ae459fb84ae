// Command seed-store fills a store file with fake customers and orders,
// useful for demos and manual testing of the shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/pizza-pos/db"
	"github.com/xenking/pizza-pos/internal/domain/catalog"
	"github.com/xenking/pizza-pos/internal/domain/customer"
	"github.com/xenking/pizza-pos/internal/domain/order"
	"github.com/xenking/pizza-pos/internal/store"
)

var firstNames = []string{"Alex", "Sam", "Jordan", "Priya", "Marco", "Lena", "Oliver", "Mia", "Noah", "Grace"}

var lastNames = []string{"Nguyen", "Smith", "Patel", "Rossi", "Kim", "Brown", "Silva", "Wilson", "Tanaka", "Jones"}

func main() {
	var (
		storePath string
		customers int
		orders    int
		seed      int64
	)

	flag.StringVar(&storePath, "store", "pizza.json", "path to the store file")
	flag.IntVar(&customers, "customers", 10, "number of customers to create")
	flag.IntVar(&orders, "orders", 25, "number of orders to create")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, storePath, customers, orders, seed); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully",
		slog.Int("customers", customers),
		slog.Int("orders", orders),
		slog.String("store", storePath),
	)
}

func run(ctx context.Context, storePath string, customers, orders int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	cat, err := catalog.Parse(db.Menu)
	if err != nil {
		return errors.Wrap(err, "parse menu")
	}

	// Orders are stamped by the store clock; drive it so placements
	// spread over the past week instead of all landing on now.
	at := time.Now()
	st, err := store.Open(storePath, cat, store.WithClock(func() time.Time { return at }))
	if err != nil {
		return errors.Wrap(err, "open store")
	}

	created := make([]*customer.Customer, 0, customers)
	for i := 0; i < customers; i++ {
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		phone := fmt.Sprintf("04%08d", rng.Intn(100_000_000))

		c, err := st.GetOrCreateCustomer(ctx, phone, name)
		if err != nil {
			return errors.Wrap(err, "create customer")
		}
		if rng.Intn(2) == 0 {
			if err := st.SetCustomerLoyalty(ctx, phone, true); err != nil {
				return errors.Wrap(err, "set loyalty")
			}
		}
		created = append(created, c)
	}

	if orders > 0 && len(created) == 0 {
		return errors.New("cannot seed orders without customers")
	}

	names := cat.Names()
	for i := 0; i < orders; i++ {
		items := make(map[string]int)
		for n := 1 + rng.Intn(3); n > 0; n-- {
			items[names[rng.Intn(len(names))]] = 1 + rng.Intn(5)
		}

		at = time.Now().Add(-time.Duration(rng.Intn(7*24*60)) * time.Minute)
		o, err := st.AddOrder(ctx, created[rng.Intn(len(created))], items, rng.Intn(2) == 0)
		if err != nil {
			return errors.Wrap(err, "add order")
		}

		// Advance some orders through the lifecycle.
		switch rng.Intn(4) {
		case 0:
			at = at.Add(time.Duration(5+rng.Intn(40)) * time.Minute)
			if err := st.SetOrderStatus(ctx, o.ID, order.StatusDone); err != nil {
				return errors.Wrap(err, "mark done")
			}
		case 1:
			if err := st.SetOrderStatus(ctx, o.ID, order.StatusInProgress); err != nil {
				return errors.Wrap(err, "mark in progress")
			}
		case 2:
			if err := st.SetOrderStatus(ctx, o.ID, order.StatusCancelled); err != nil {
				return errors.Wrap(err, "mark cancelled")
			}
		}
	}

	return nil
}
