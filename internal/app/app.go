package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/pizza-pos/db"
	"github.com/xenking/pizza-pos/internal/domain/catalog"
	"github.com/xenking/pizza-pos/internal/shell"
	"github.com/xenking/pizza-pos/internal/store"
)

// Run creates all dependencies and drives the interactive shell until
// it exits. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	lg.Info("Initializing", zap.String("store", cfg.StorePath))

	cat, err := catalog.Parse(db.Menu)
	if err != nil {
		return errors.Wrap(err, "parse menu")
	}
	lg.Info("Menu loaded", zap.Int("items", cat.Len()))

	st, err := store.Open(cfg.StorePath, cat, store.WithLogger(lg.Named("store")))
	if err != nil {
		return errors.Wrap(err, "open store")
	}

	sh := shell.New(st, cat, cfg.Pricing.Params(), os.Stdin, os.Stdout, lg.Named("shell"))
	if err := sh.Loop(ctx); err != nil {
		return errors.Wrap(err, "shell")
	}

	// Mutations write through, but flush once more on the way out so a
	// dirty exit path never loses state.
	if err := st.Save(ctx); err != nil {
		return errors.Wrap(err, "final save")
	}

	lg.Info("Goodbye")
	return nil
}
