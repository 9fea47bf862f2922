package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cart-bundler/internal/bundle"
	"cart-bundler/internal/catalog"
	"cart-bundler/internal/config"
	"cart-bundler/internal/database"
	"cart-bundler/internal/handler"
	"cart-bundler/internal/repository"
	"cart-bundler/internal/router"
	"cart-bundler/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cart bundler API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize bundle engine
	engine, err := newEngine(cfg.Bundle)
	if err != nil {
		return fmt.Errorf("failed to initialize bundle engine: %w", err)
	}
	opts := engine.Options()
	logger.Info().
		Str("strategy", string(opts.Strategy)).
		Str("parent_source", string(opts.ParentSource)).
		Str("catalog_attribute", opts.CatalogAttribute).
		Bool("volume_discount", cfg.Discount.VolumeEnabled).
		Msg("bundle engine configured")

	// Initialize the optional bundle store
	var bundleRepo repository.BundleRepository
	if cfg.Store.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		bundleRepo = repository.NewBundleRepository(pool, logger)

		if err := seedCatalogs(ctx, cfg, bundleRepo, opts.Strategy, logger); err != nil {
			return fmt.Errorf("failed to seed bundle catalogs: %w", err)
		}
	} else {
		logger.Info().Msg("bundle store disabled")
	}

	// Initialize services
	cartService := service.NewCartService(engine, cfg.Discount.VolumeEnabled, logger)
	bundleService := service.NewBundleService(bundleRepo, opts.Strategy, opts.CatalogAttribute, logger)

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(cartService, logger)
	bundleHandler := handler.NewBundleHandler(bundleService, logger)

	// Initialize router
	mux := router.New(cartHandler, bundleHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newEngine builds the bundle engine from validated configuration.
func newEngine(cfg config.BundleConfig) (*bundle.Engine, error) {
	strategy, err := bundle.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	parentSource, err := bundle.ParseParentSource(cfg.ParentSource)
	if err != nil {
		return nil, err
	}

	return bundle.NewEngine(bundle.Options{
		Strategy:         strategy,
		BundleSelection:  bundle.BundleSelectionFirst,
		ParentSource:     parentSource,
		CatalogAttribute: cfg.CatalogAttribute,
	})
}

// seedCatalogs loads the configured seed files into the store, trying S3
// first when it is enabled and falling back to the local file system.
func seedCatalogs(
	ctx context.Context,
	cfg *config.Config,
	store catalog.Store,
	defaultStrategy bundle.Strategy,
	logger zerolog.Logger,
) error {
	if len(cfg.Store.SeedFiles) == 0 {
		return nil
	}

	fileLoader := catalog.NewFileLoader(logger)

	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for catalog files (S3 disabled)")
	}

	loader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)
	seeder := catalog.NewSeeder(loader, store, defaultStrategy, logger)

	_, err := seeder.Seed(ctx, cfg.Store.SeedFiles)
	return err
}
