package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/do/v2"

	"github.com/jacksmith/trips/internal/auth"
	"github.com/jacksmith/trips/internal/cli"
	"github.com/jacksmith/trips/internal/logger"
	"github.com/jacksmith/trips/internal/notify"
	"github.com/jacksmith/trips/internal/ops"
	"github.com/jacksmith/trips/internal/storage"
	"github.com/jacksmith/trips/internal/storage/badgerstore"
	"github.com/jacksmith/trips/internal/storage/redisstore"
)

const (
	// noticeBufferSize bounds the notices kept for the HTTP API.
	noticeBufferSize = 50
	// dialTimeout bounds connecting to a remote store.
	dialTimeout = 5 * time.Second
)

// ProvideStorage opens the .trips/ directory.
func ProvideStorage(i do.Injector) (*storage.Storage, error) {
	opts := do.MustInvoke[Options](i)
	return storage.Open(opts.Dir)
}

// ProvideConfig loads .tripsconfig.yaml, applying the backend override.
func ProvideConfig(i do.Injector) (*storage.Config, error) {
	opts := do.MustInvoke[Options](i)
	s := do.MustInvoke[*storage.Storage](i)

	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*slog.Logger, error) {
	opts := do.MustInvoke[Options](i)
	cfg := do.MustInvoke[*storage.Config](i)

	log := logger.New(logger.Config{
		Writer: opts.Stderr,
		Format: cfg.LogFormat,
		Level:  logger.ParseLevel(cfg.LogLevel),
		Color:  cli.IsTerminal(opts.Stderr),
	})
	log.Debug("config loaded", "backend", cfg.Backend, "log_level", cfg.LogLevel, "load_delay", cfg.LoadDelay)
	return log, nil
}

// Notices fans notices out to the terminal, the log and a buffer the HTTP
// API drains.
type Notices struct {
	notify.Multi
	Buffer *notify.Buffer
}

// ProvideNotices provides the notice sink shared by the session and manager.
func ProvideNotices(i do.Injector) (*Notices, error) {
	opts := do.MustInvoke[Options](i)
	log := do.MustInvoke[*slog.Logger](i)

	buf := notify.NewBuffer(noticeBufferSize)
	sinks := notify.Multi{notify.Log{Logger: log}, buf}
	if !opts.Quiet {
		sinks = append(sinks, notify.NewWriter(opts.Stderr))
	}
	return &Notices{Multi: sinks, Buffer: buf}, nil
}

// StoreHandle wraps the configured store with shutdown capability.
type StoreHandle struct {
	storage.Store
	Backend string

	once   sync.Once
	closer func() error
	err    error
}

// Shutdown implements do.Shutdownable. It is safe to call more than once.
func (h *StoreHandle) Shutdown() error {
	h.once.Do(func() {
		if h.closer != nil {
			h.err = h.closer()
		}
	})
	return h.err
}

// ProvideStore opens the backend selected by the config.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*storage.Config](i)
	s := do.MustInvoke[*storage.Storage](i)
	log := do.MustInvoke[*slog.Logger](i)

	switch cfg.Backend {
	case storage.BackendFile:
		s.SetLogger(log)
		return &StoreHandle{Store: s, Backend: cfg.Backend}, nil

	case storage.BackendMemory:
		return &StoreHandle{Store: storage.NewMemory(), Backend: cfg.Backend}, nil

	case storage.BackendBadger:
		path := s.ResolveBadgerPath(cfg)
		db, err := badgerstore.Open(path, log)
		if err != nil {
			return nil, err
		}
		log.Debug("badger store opened", "path", path)
		return &StoreHandle{Store: db, Backend: cfg.Backend, closer: db.Close}, nil

	case storage.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		defer cancel()
		rs, err := redisstore.Dial(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		log.Debug("redis store connected", "addr", cfg.Redis.Addr)
		return &StoreHandle{Store: rs, Backend: cfg.Backend, closer: rs.Close}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// ProvideSession restores the signed-in user from the store.
func ProvideSession(i do.Injector) (*auth.Session, error) {
	store := do.MustInvoke[*StoreHandle](i)
	notices := do.MustInvoke[*Notices](i)
	log := do.MustInvoke[*slog.Logger](i)

	return auth.NewSession(context.Background(), store, notices, log), nil
}

// ProvideRepository provides the trip repository over the configured store.
func ProvideRepository(i do.Injector) (*ops.Repository, error) {
	store := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return ops.NewRepository(store, log), nil
}

// ProvideManager provides the trip collection manager, gated on the session.
func ProvideManager(i do.Injector) (*ops.Manager, error) {
	cfg := do.MustInvoke[*storage.Config](i)
	repo := do.MustInvoke[*ops.Repository](i)
	session := do.MustInvoke[*auth.Session](i)
	notices := do.MustInvoke[*Notices](i)
	log := do.MustInvoke[*slog.Logger](i)

	return ops.NewManager(repo, session,
		ops.WithLoadDelay(cfg.LoadDelay),
		ops.WithNotices(notices),
		ops.WithLogger(log),
	), nil
}
