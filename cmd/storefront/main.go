package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"storefront-client/internal/api"
	"storefront-client/internal/catalog"
	"storefront-client/internal/checkout"
	"storefront-client/internal/config"
	"storefront-client/internal/session"
	"storefront-client/internal/store"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)

	a, cleanup, err := newApp(ctx, cfg, logger, out)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.dispatch(ctx, args)
}

// newApp wires configuration into stores. The returned cleanup releases
// the session backend and pushes metrics when configured.
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, out io.Writer) (*app, func(), error) {
	// Initialize session storage
	sessions, closeSessions, err := session.Open(ctx, cfg.Session, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}

	registry := prometheus.NewRegistry()

	// The auth store reads tokens from, and is reset by, the client it wraps
	var auth *store.AuthStore
	opts := []api.Option{
		api.WithTokenSource(api.TokenFunc(func() string { return auth.Token() })),
		api.WithMetrics(api.NewMetrics(registry)),
	}
	if cfg.API.OnUnauthorized == config.UnauthorizedClear {
		opts = append(opts, api.WithUnauthorizedHandler(func(ctx context.Context) { auth.Expire(ctx) }))
	}

	client := api.NewClient(cfg.API, logger, opts...)

	// Initialize stores
	auth = store.NewAuthStore(client, sessions, logger)
	carts := store.NewCartStore(client, logger)
	products := store.NewProductStore(client, logger)
	orders := store.NewOrderStore(client, logger)

	if err := auth.Restore(ctx); err != nil {
		logger.Warn().Err(err).Msg("starting without a session")
	}

	// Initialize catalog loader with S3 and local fallback
	fileLoader := catalog.NewFileLoader(logger)
	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		s3Loader, err = catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		}
	}

	a := &app{
		cfg:      cfg,
		out:      out,
		logger:   logger,
		auth:     auth,
		cart:     carts,
		products: products,
		orders:   orders,
		checkout: checkout.NewFlow(carts, orders, logger),
		loader:   catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Key, cfg.S3.Enabled, logger),
		importer: catalog.NewImporter(products, cfg.Catalog.Workers, logger),
	}

	cleanup := func() {
		if cfg.Metrics.PushURL != "" {
			if err := push.New(cfg.Metrics.PushURL, cfg.Metrics.Job).Gatherer(registry).Push(); err != nil {
				logger.Warn().Err(err).Str("url", cfg.Metrics.PushURL).Msg("failed to push metrics")
			}
		}
		closeSessions()
	}

	return a, cleanup, nil
}
