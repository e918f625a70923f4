package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-desk/internal/assets"
	"order-desk/internal/auth"
	"order-desk/internal/config"
	"order-desk/internal/database"
	"order-desk/internal/handler"
	"order-desk/internal/repository"
	"order-desk/internal/router"
	"order-desk/internal/service"

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
	logger.Info().Msg("starting order-desk API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, pool, logger); err != nil {
			return err
		}
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize image store
	store := newAssetStore(ctx, cfg.Assets, logger)

	// Initialize services
	verifier := auth.NewStaticVerifier(cfg.Auth.Username, cfg.Auth.Password)
	orderService := service.NewOrderService(orderRepo, store, cfg.Pagination.PageSize, logger)
	dashboardService := service.NewDashboardService(orderRepo, logger)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, cfg.Server.MaxUploadBytes(), logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	authHandler := handler.NewAuthHandler(verifier, logger)

	// Initialize router
	opts := router.Options{AllowOrigin: cfg.Server.AllowOrigins}
	if cfg.Assets.Backend == config.AssetBackendLocal {
		opts.UploadDir = cfg.Assets.LocalDir
	}
	mux := router.New(orderHandler, dashboardHandler, authHandler, verifier, opts, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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

// newAssetStore builds the configured image store. Images are best-effort,
// so a store that cannot be initialised is replaced by a disabled one.
func newAssetStore(ctx context.Context, cfg config.AssetsConfig, logger zerolog.Logger) assets.Store {
	switch cfg.Backend {
	case config.AssetBackendS3:
		store, err := assets.NewS3Store(ctx, assets.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PublicURL: cfg.PublicURL,
			Folder:    cfg.Folder,
		}, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 asset store, image uploads disabled")
			return assets.NewDisabledStore()
		}
		return store

	case config.AssetBackendLocal:
		store, err := assets.NewFileStore(cfg.LocalDir, cfg.PublicURL, cfg.Folder, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise local asset store, image uploads disabled")
			return assets.NewDisabledStore()
		}
		return store

	default:
		logger.Info().Msg("image uploads disabled")
		return assets.NewDisabledStore()
	}
}
