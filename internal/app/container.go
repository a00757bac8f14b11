// Package app wires the trips services together with a samber/do container.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/jacksmith/trips/internal/auth"
	"github.com/jacksmith/trips/internal/ops"
	"github.com/jacksmith/trips/internal/storage"
)

// Options carries what cannot come from .tripsconfig.yaml.
type Options struct {
	// Dir is the directory containing .trips/.
	Dir string
	// Stderr receives logs and notices. Defaults to os.Stderr.
	Stderr io.Writer
	// Backend overrides the configured backend when set.
	Backend string
	// Quiet stops notices from being printed; they are still logged and buffered.
	Quiet bool
}

// NewContainer creates the DI container with all providers registered.
// Services are built lazily on first invoke.
func NewContainer(opts Options) *do.RootScope {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	injector := do.New()
	do.ProvideValue(injector, opts)

	// Core infrastructure
	do.Provide(injector, ProvideStorage)
	do.Provide(injector, ProvideConfig)
	do.Provide(injector, ProvideLogger)
	do.Provide(injector, ProvideNotices)

	// Persistence
	do.Provide(injector, ProvideStore)

	// Trips
	do.Provide(injector, ProvideSession)
	do.Provide(injector, ProvideRepository)
	do.Provide(injector, ProvideManager)

	return injector
}

// App is a bootstrapped container with its services resolved.
type App struct {
	injector *do.RootScope

	Storage *storage.Storage
	Config  *storage.Config
	Logger  *slog.Logger
	Notices *Notices
	Store   *StoreHandle
	Session *auth.Session
	Manager *ops.Manager
}

// New builds and resolves every service. The collection is not loaded yet;
// call Load or Manager.Start.
func New(opts Options) (*App, error) {
	injector := NewContainer(opts)

	a := &App{injector: injector}
	var err error
	if a.Storage, err = do.Invoke[*storage.Storage](injector); err != nil {
		return nil, err
	}
	if a.Config, err = do.Invoke[*storage.Config](injector); err != nil {
		return nil, err
	}
	a.Logger = do.MustInvoke[*slog.Logger](injector)
	a.Notices = do.MustInvoke[*Notices](injector)
	if a.Store, err = do.Invoke[*StoreHandle](injector); err != nil {
		return nil, err
	}
	a.Session = do.MustInvoke[*auth.Session](injector)
	a.Manager = do.MustInvoke[*ops.Manager](injector)

	return a, nil
}

// Load loads the trip collection, honoring the configured delay.
func (a *App) Load(ctx context.Context) ops.LoadResult {
	return a.Manager.Load(ctx)
}

// Close releases the store and shuts the container down.
func (a *App) Close() error {
	err := a.Store.Shutdown()
	if report := a.injector.Shutdown(); report != nil {
		a.Logger.Debug("container shutdown", "report", report)
	}
	if err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
