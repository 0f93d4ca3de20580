// Package app wires together all dependencies and runs the wishlist server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DakshSitapara/wishlist/internal/config"
	handler "github.com/DakshSitapara/wishlist/internal/handler/http"
	"github.com/DakshSitapara/wishlist/internal/kvstore"
	"github.com/DakshSitapara/wishlist/internal/repository"
	"github.com/DakshSitapara/wishlist/internal/service"
	"github.com/DakshSitapara/wishlist/pkg/health"
)

// App wires together all dependencies and runs the wishlist server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app := &App{cfg: cfg, logger: logger}
	healthHandler := health.NewHandler()

	store, err := app.newStore(ctx, healthHandler)
	if err != nil {
		return nil, err
	}

	// Build the dependency graph.
	authService := service.NewAuthService(
		repository.NewKVUserRepository(store),
		repository.NewKVSessionRepository(store),
		logger,
	)
	wishlistService := service.NewWishlistService(
		repository.NewKVItemRepository(store),
		repository.NewKVCategoryRepository(store),
		logger,
	)
	filterService := service.NewFilterService(
		repository.NewKVFilterRepository(store),
		logger,
	)

	router := handler.NewRouter(authService, wishlistService, filterService, healthHandler, logger)

	app.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

// newStore builds the configured storage backend and registers its health
// checker.
func (a *App) newStore(ctx context.Context, healthHandler *health.Handler) (kvstore.Store, error) {
	switch a.cfg.StorageBackend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPass,
			DB:       a.cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.logger.Info("connected to Redis",
			slog.String("addr", a.cfg.RedisAddr),
			slog.Int("db", a.cfg.RedisDB),
		)

		a.rdb = rdb
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		return kvstore.NewRedisStore(rdb, a.logger), nil

	case config.BackendFile:
		dir := filepath.Dir(a.cfg.StoragePath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
		}
		a.logger.Info("using file storage", slog.String("path", a.cfg.StoragePath))

		healthHandler.Register("storage", func(ctx context.Context) error {
			_, err := os.Stat(dir)
			return err
		})
		return kvstore.NewFileStore(a.cfg.StoragePath, a.logger), nil

	case config.BackendMemory:
		a.logger.Info("using in-memory storage, state is lost on restart")
		return kvstore.NewMemoryStore(a.logger), nil

	case config.BackendNone:
		a.logger.Info("persistence disabled, running on defaults")
		return kvstore.NewNoopStore(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", a.cfg.StorageBackend)
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
