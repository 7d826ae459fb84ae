package shell

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/pizza-pos/internal/domain/customer"
	"github.com/xenking/pizza-pos/internal/domain/order"
)

func (s *Shell) cmdHelp(_ context.Context, args []string) (string, error) {
	if len(args) > 0 {
		cmd, ok := s.commands[args[0]]
		if !ok {
			return fmt.Sprintf("Command %s not found", args[0]), nil
		}
		return fmt.Sprintf("%s: %s", cmd.name, cmd.description), nil
	}
	return "Available commands: " + strings.Join(s.names, ", "), nil
}

func (s *Shell) cmdViewOrders(ctx context.Context, args []string) (string, error) {
	var day time.Time
	if len(args) > 0 {
		parsed, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			return "", errors.Wrapf(err, "invalid date %q, expected YYYY-MM-DD", args[0])
		}
		day = parsed
	}

	orders := s.store.OrdersForDay(ctx, day)
	if len(orders) == 0 {
		return "No orders found", nil
	}

	// Actionable orders first, oldest first within a status. Display
	// concern only: the store hands back insertion order.
	sort.SliceStable(orders, func(i, j int) bool {
		if pi, pj := orders[i].Status.Priority(), orders[j].Status.Priority(); pi != pj {
			return pi < pj
		}
		return orders[i].PlacedAt.Before(orders[j].PlacedAt)
	})

	lines := make([]string, len(orders))
	for i, o := range orders {
		lines[i] = formatOrderLine(o)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Shell) cmdAllOrders(ctx context.Context, _ []string) (string, error) {
	orders := s.store.AllOrders(ctx)
	if len(orders) == 0 {
		return "No orders found", nil
	}

	lines := make([]string, len(orders))
	for i, o := range orders {
		lines[i] = formatOrderLine(o)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Shell) cmdOrderInfo(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "Usage: order_info <order_id>", nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return "Invalid order id", nil
	}

	o, ok := s.store.GetOrder(ctx, id)
	if !ok {
		return "Order not found", nil
	}
	return formatOrderDetail(o, s.cat.Prices(), s.params)
}

func (s *Shell) cmdAddCustomer(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: add_customer <phone> <name>", nil
	}
	phone, name := args[0], strings.Join(args[1:], " ")

	if err := s.store.AddCustomer(ctx, customer.New(phone, name)); err != nil {
		return "", errors.Wrap(err, "add customer")
	}
	return fmt.Sprintf("Added customer %s with phone number %s", name, phone), nil
}

func (s *Shell) cmdSetLoyalty(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: set_loyalty <phone> <true|false>", nil
	}
	phone := args[0]
	member, err := strconv.ParseBool(args[1])
	if err != nil {
		return "", errors.Wrapf(err, "invalid loyalty value %q", args[1])
	}

	if err := s.store.SetCustomerLoyalty(ctx, phone, member); err != nil {
		return "", err
	}
	return fmt.Sprintf("Set loyalty status for %s to %t", phone, member), nil
}

func (s *Shell) cmdCustomers(ctx context.Context, _ []string) (string, error) {
	phones := s.store.CustomerPhones(ctx)
	if len(phones) == 0 {
		return "No customers found", nil
	}
	return strings.Join(phones, "\n"), nil
}

func (s *Shell) cmdStartOrder(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "Usage: start_order <phone>", nil
	}
	cust, ok := s.store.GetCustomer(ctx, args[0])
	if !ok {
		return "Customer not found", nil
	}

	items := s.collectItems()
	if len(items) == 0 {
		return "No items entered, order not placed", nil
	}

	fmt.Fprintln(s.out, "Items in order:")
	for _, name := range sortedKeys(items) {
		fmt.Fprintf(s.out, "\t- %s x %d\n", name, items[name])
	}

	answer, _ := s.prompt("Is this a home delivery? (y/n): ")
	wantsDelivery := strings.EqualFold(strings.TrimSpace(answer), "y")

	o, err := s.store.AddOrder(ctx, cust, items, wantsDelivery)
	if err != nil {
		return "", errors.Wrap(err, "add order")
	}

	detail, err := formatOrderDetail(o, s.cat.Prices(), s.params)
	if err != nil {
		return "", err
	}
	return "Order details:\n" + detail, nil
}

// collectItems reads item name/quantity pairs until a blank name,
// validating each name against the catalog before it is accepted.
func (s *Shell) collectItems() map[string]int {
	items := make(map[string]int)
	for {
		name, ok := s.prompt("Enter item name or press enter to finish: ")
		if !ok || name == "" {
			return items
		}
		if !s.cat.Has(name) {
			fmt.Fprintf(s.out, "Unknown item `%s`\nAvailable items are:\n", name)
			for _, n := range s.cat.Names() {
				fmt.Fprintf(s.out, "\t- %s\n", n)
			}
			continue
		}

		raw, ok := s.prompt("Enter item count: ")
		if !ok {
			return items
		}
		count, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			fmt.Fprintln(s.out, "Invalid count")
			continue
		}
		if count <= 0 {
			fmt.Fprintln(s.out, "Invalid count, must be positive")
			continue
		}
		items[name] += count
	}
}

func (s *Shell) cmdSetStatus(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: set_status <order_id> <PENDING|IN_PROGRESS|CANCELLED|DONE>", nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return "Invalid order id", nil
	}
	status, err := order.ParseStatus(strings.ToUpper(args[1]))
	if err != nil {
		return "", err
	}

	if err := s.store.SetOrderStatus(ctx, id, status); err != nil {
		return "", err
	}
	return fmt.Sprintf("Order %d is now %s", id, status), nil
}

func (s *Shell) cmdClearOrders(ctx context.Context, _ []string) (string, error) {
	if err := s.store.ClearOrders(ctx); err != nil {
		return "", errors.Wrap(err, "clear orders")
	}
	return "All orders cleared", nil
}

func (s *Shell) cmdBackup(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "Usage: backup <path>", nil
	}
	if err := s.store.Backup(ctx, args[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Backup written to %s", args[0]), nil
}
