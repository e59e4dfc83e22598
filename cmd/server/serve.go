package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/AnshRaj112/userorders-backend/internal/config"
	"github.com/AnshRaj112/userorders-backend/internal/database"
	"github.com/AnshRaj112/userorders-backend/internal/handlers"
	"github.com/AnshRaj112/userorders-backend/internal/routes"
	"github.com/AnshRaj112/userorders-backend/internal/services"
)

func serveCommand(c *cli.Context) error {
	cfg, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	ctx := c.Context

	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	cache, closeCache := buildCache(ctx, cfg, logger)
	defer closeCache()

	svc := services.NewUserService(logger, store, cache, cfg.BcryptCost)
	router := routes.NewRouter(cfg, logger,
		handlers.NewUserHandler(logger, svc, cfg.RequestTimeout),
		handlers.NewHealthHandler(logger, svc))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port, "env", cfg.Environment, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func ensureIndexesCommand(c *cli.Context) error {
	cfg, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	client, db, err := database.Connect(c.Context, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	defer database.Disconnect(client)

	if err := services.EnsureUserIndexes(c.Context, db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}
	logger.Info("Indexes ensured", "collection", services.UsersCollection)
	return nil
}

// buildStore returns the configured UserStore and a func releasing it.
func buildStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.UserStore, func(), error) {
	if cfg.StoreBackend == config.StoreMemory {
		logger.Warn("Using in-memory store, data is lost on restart")
		return services.NewMemoryUserStore(), func() {}, nil
	}

	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err := services.EnsureUserIndexes(ctx, db); err != nil {
		logger.Warn("could not ensure user indexes", "error", err)
	}
	closeFn := func() {
		if err := database.Disconnect(client); err != nil {
			logger.Warn("closing MongoDB client failed", "error", err)
		}
	}
	return services.NewMongoUserStore(db), closeFn, nil
}

// buildCache connects to Redis when configured. A Redis that cannot be
// reached disables caching instead of failing startup.
func buildCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.UserCache, func()) {
	if !cfg.CacheEnabled() {
		return nil, func() {}
	}
	client, err := database.ConnectRedis(ctx, cfg.RedisURI, logger)
	if err != nil {
		logger.Warn("Redis unavailable, user cache disabled", "uri", database.MaskURI(cfg.RedisURI), "error", err)
		return nil, func() {}
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("closing Redis client failed", "error", err)
		}
	}
	return services.NewRedisUserCache(client, cfg.CacheTTL), closeFn
}
