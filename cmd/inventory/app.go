package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/cache"
	"github.com/aaravmahajanofficial/inventory-client/internal/config"
	"github.com/aaravmahajanofficial/inventory-client/internal/connectivity"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/aaravmahajanofficial/inventory-client/internal/notify"
	"github.com/aaravmahajanofficial/inventory-client/internal/offline"
	"github.com/aaravmahajanofficial/inventory-client/internal/query"
	"github.com/aaravmahajanofficial/inventory-client/internal/remote"
	"github.com/aaravmahajanofficial/inventory-client/internal/repository"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage/filestore"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage/sqlstore"
	"github.com/aaravmahajanofficial/inventory-client/internal/telemetry"
)

// app holds everything one run needs. close releases it in reverse order.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	entries storage.EntryStore
	store   *offline.Store
	client  *remote.Client
	state   *connectivity.State
	prober  *connectivity.Prober
	repo    *repository.Repository
	closers []func(context.Context) error
}

func newApp(ctx context.Context, flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}

	logger := newLogger(level)
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel, Version)
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}
	a.closers = append(a.closers, shutdownTracing)

	a.entries, err = openEntries(ctx, cfg.Offline)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return a.entries.Close() })

	queryCache, err := openCache(ctx, cfg)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return queryCache.Close() })

	a.store = offline.New(a.entries, cfg.Offline.Key, offline.WithLogger(logger))
	a.client = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.RequestTimeout)
	a.state = connectivity.NewState()

	a.prober = connectivity.NewProber(a.state,
		connectivity.HTTPProbe(a.client.HTTPClient(), a.client.ProductsURL(), cfg.Remote.ProbeTimeout),
		connectivity.OnOffline(func(ctx context.Context) { a.store.Load(ctx) }),
		connectivity.WithProberLogger(logger),
	)

	a.repo = repository.New(repository.Deps{
		State:    a.state,
		Offline:  a.store,
		Remote:   a.client,
		Query:    query.New(queryCache, cfg.Cache.StaleTime),
		Notifier: notify.NewSlogNotifier(logger),
		Logger:   logger,
	})

	slog.Info("Inventory client initialized",
		slog.String("env", cfg.Env),
		slog.String("version", Version),
		slog.String("upstream", cfg.Remote.BaseURL),
		slog.String("offline_driver", cfg.Offline.Driver),
		slog.String("cache_backend", cfg.Cache.Backend),
	)

	return a, nil
}

// resolve starts the reachability probe and blocks until the mode is known.
func (a *app) resolve(ctx context.Context) (models.Mode, error) {
	a.prober.Start(ctx)

	waitCtx, cancel := context.WithTimeout(ctx, a.cfg.Remote.ProbeTimeout+time.Second)
	defer cancel()

	mode, err := a.state.Wait(waitCtx)
	if err != nil {
		return models.ModeUnknown, fmt.Errorf("connectivity check did not finish: %w", err)
	}

	return mode, nil
}

func (a *app) close() {
	if a.prober != nil {
		a.prober.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn("Failed to release resource", slog.Any("error", err))
		}
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func openEntries(ctx context.Context, cfg config.Offline) (storage.EntryStore, error) {
	switch cfg.Driver {
	case "sqlite", "postgres":
		store, err := sqlstore.Open(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open offline store: %w", err)
		}
		return store, nil
	default:
		store, err := filestore.New(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("open offline store: %w", err)
		}
		return store, nil
	}
}

func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemoryCache(cfg.Cache.DefaultTTL), nil
	}

	client, err := cache.NewRedisClient(ctx, &cfg.RedisConnect)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return cache.NewRedisCache(client, &cfg.Cache), nil
}
