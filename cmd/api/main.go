package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/cache"
	"task-tracker/internal/config"
	"task-tracker/internal/handlers"
	"task-tracker/internal/logger"
	"task-tracker/internal/repositories"
	"task-tracker/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repositories.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repositories.CloseDatabase(db); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	var store repositories.TaskStore = repositories.NewTaskRepository(db)

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis)
		if err := redisCache.Ping(context.Background()); err != nil {
			logger.Warn("redis unavailable, task cache disabled",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			logger.Info("task cache enabled", zap.String("addr", cfg.Redis.Addr))
			store = repositories.NewCachedTaskRepository(store, redisCache)
			defer redisCache.Close()
		}
	}

	router := handlers.NewRouter(cfg, db, store)

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Worker.Enabled {
		scanner := worker.NewOverdueScanner(db, cfg.Worker.ScanInterval)
		scanner.Start(ctx)
		defer scanner.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
