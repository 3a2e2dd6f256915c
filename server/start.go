// Package server assembles the shop service and runs its HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	cachepackage "shop-service/cache"
	"shop-service/config"
	"shop-service/database"
	"shop-service/handlers"
	"shop-service/products"
	"shop-service/sessions"
	"shop-service/store"
	"shop-service/uploads"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// App owns every long-lived resource of the service.
type App struct {
	config *config.Config
	logger *zap.Logger
	db     *sqlx.DB
	cache  *cachepackage.ResponseCache
	server *http.Server
}

// NewApp connects to the database, the optional cache and the image store
// and wires the HTTP handlers on top of them.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbConn, err := database.InitializeDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	responseCache, err := cachepackage.InitializeCache(cfg, logger)
	if err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("cache init error: %w", err)
	}

	images, err := uploads.NewStore(ctx, cfg)
	if err != nil {
		responseCache.Close()
		dbConn.Close()
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	app := &App{config: cfg, logger: logger, db: dbConn, cache: responseCache}
	app.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: app.router(dbConn, responseCache, images),
	}
	return app, nil
}

func (app *App) router(dbConn *sqlx.DB, responseCache *cachepackage.ResponseCache, images uploads.Store) http.Handler {
	cfg := app.config

	manager := sessions.NewManager(
		store.NewUserStore(dbConn),
		sessions.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL),
		sessions.NewHasher(cfg.BcryptCost, cfg.HashWorkers),
		app.logger,
	)

	var productCache products.Cache
	if responseCache != nil {
		productCache = responseCache
	}
	catalogue := products.NewService(store.NewProductStore(dbConn), images, productCache,
		cfg.ProductCacheTTL, uploads.Limits{MaxWidth: cfg.ImageMaxWidth, MaxPixels: cfg.ImageMaxPixels}, app.logger)

	var uploadDir string
	if local, ok := images.(*uploads.LocalStore); ok {
		uploadDir = local.Dir()
	}

	return NewRouter(Routes{
		Auth:      handlers.NewAuthHandler(manager, app.logger),
		Products:  handlers.NewProductHandler(catalogue, cfg.MaxUploadSize, app.logger),
		UploadDir: uploadDir,
		Logger:    app.logger,
	})
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully and releases every resource.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("Shop service started", zap.String("addr", app.config.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info("Shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.logger.Info("Server exited gracefully")
	return nil
}

func (app *App) Close() {
	app.cache.Close()
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database", zap.Error(err))
	}
}

// StartServer runs the service with cfg until it is interrupted.
func StartServer(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
