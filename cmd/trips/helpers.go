package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/app"
	"github.com/jacksmith/trips/internal/cli"
	"github.com/jacksmith/trips/internal/model"
	"github.com/jacksmith/trips/internal/ops"
)

// stdin is where confirmation answers are read from.
var stdin io.Reader = os.Stdin

// commandContext returns the command's context, or a background context
// when called directly from tests.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// openApp builds the application for --dir without loading trips.
func openApp() (*app.App, error) {
	return app.New(app.Options{
		Dir:    rootDir,
		Stderr: os.Stderr,
		Quiet:  rootQuiet,
	})
}

// loadApp builds the application and loads the trip collection.
func loadApp(ctx context.Context) (*app.App, error) {
	a, err := openApp()
	if err != nil {
		return nil, err
	}
	a.Load(ctx)
	return a, nil
}

// resolveID expands a trip id prefix against the loaded collection.
func resolveID(a *app.App, prefix string) (string, error) {
	if !a.Session.IsAuthenticated() {
		return "", explain(ops.ErrUnauthorized)
	}
	return cli.MatchID(prefix, a.Manager.IDs())
}

// explain attaches a next step to errors the user can act on.
func explain(err error) error {
	switch {
	case errors.Is(err, ops.ErrUnauthorized):
		return cli.WithHint(err, "Run 'trips login <email>' to sign in.")
	case errors.Is(err, ops.ErrNotFound):
		return cli.WithHint(err, "Run 'trips list' to see your trips.")
	default:
		return err
	}
}

// checkDate rejects a non-empty flag value that is not YYYY-MM-DD.
func checkDate(flag, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, value); err != nil {
		return &cli.ValidationError{Field: flag, Message: fmt.Sprintf("%q (expected YYYY-MM-DD)", value)}
	}
	return nil
}
