// Package shell implements the interactive command loop over the store.
// Commands are registered in an explicit table; the store is injected
// rather than reached through any global state.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/xenking/pizza-pos/internal/domain/catalog"
	"github.com/xenking/pizza-pos/internal/domain/pricing"
	"github.com/xenking/pizza-pos/internal/store"
)

// command is a single shell command: a name, a usage line, and a handler.
// Handlers return the message to print; domain failures come back as
// errors and are printed, not escalated.
type command struct {
	name        string
	description string
	run         func(ctx context.Context, args []string) (string, error)
}

// Shell reads commands from in, dispatches them against the store, and
// writes formatted results to out.
type Shell struct {
	store  store.Store
	cat    *catalog.Catalog
	params pricing.Params
	lg     *zap.Logger

	scanner *bufio.Scanner
	out     io.Writer

	commands map[string]command
	names    []string
}

// New builds the shell and its command table.
func New(st store.Store, cat *catalog.Catalog, params pricing.Params, in io.Reader, out io.Writer, lg *zap.Logger) *Shell {
	s := &Shell{
		store:   st,
		cat:     cat,
		params:  params,
		lg:      lg,
		scanner: bufio.NewScanner(in),
		out:     out,
	}

	s.commands = make(map[string]command)
	for _, c := range []command{
		{"help", "Prints a help message, usage: help <command>?", s.cmdHelp},
		{"view_orders", "View orders for a day (default today), usage: view_orders <YYYY-MM-DD>?", s.cmdViewOrders},
		{"all_orders", "View every order ever placed", s.cmdAllOrders},
		{"order_info", "Get information about an order, usage: order_info <order_id>", s.cmdOrderInfo},
		{"add_customer", "Add a new customer, usage: add_customer <phone> <name>", s.cmdAddCustomer},
		{"set_loyalty", "Set loyalty status for a customer, usage: set_loyalty <phone> <true|false>", s.cmdSetLoyalty},
		{"customers", "List all customer phone numbers", s.cmdCustomers},
		{"start_order", "Start a new order for a customer, usage: start_order <phone>", s.cmdStartOrder},
		{"set_status", "Transition an order, usage: set_status <order_id> <PENDING|IN_PROGRESS|CANCELLED|DONE>", s.cmdSetStatus},
		{"clear_orders", "Delete every order from the store", s.cmdClearOrders},
		{"backup", "Write a compressed store snapshot, usage: backup <path>", s.cmdBackup},
	} {
		s.commands[c.name] = c
		s.names = append(s.names, c.name)
	}

	return s
}

// Loop runs the read-eval loop until `exit`, EOF, or context cancellation.
func (s *Shell) Loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, ok := s.prompt("Enter command: ")
		if !ok {
			return s.scanner.Err()
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name, args := fields[0], fields[1:]
		if name == "exit" {
			return nil
		}

		s.Dispatch(ctx, name, args)
	}
}

// Dispatch runs a single named command and prints its result.
func (s *Shell) Dispatch(ctx context.Context, name string, args []string) {
	cmd, ok := s.commands[name]
	if !ok {
		fmt.Fprintln(s.out, "Unknown command, use `help` to see available commands and `exit` to exit")
		return
	}

	msg, err := cmd.run(ctx, args)
	if err != nil {
		s.lg.Debug("Command failed", zap.String("command", name), zap.Error(err))
		fmt.Fprintf(s.out, "Error: %s\n", err)
		return
	}
	if msg != "" {
		fmt.Fprintln(s.out, msg)
	}
}

// prompt prints the prompt and reads one line. ok is false on EOF.
func (s *Shell) prompt(p string) (line string, ok bool) {
	fmt.Fprint(s.out, p)
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}
