package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/cache"
	"github.com/delordemm1/go-weight-goal-api/internal/config"
	"github.com/delordemm1/go-weight-goal-api/internal/database"
	"github.com/delordemm1/go-weight-goal-api/internal/logging"
	"github.com/delordemm1/go-weight-goal-api/internal/modules/profile"
	"github.com/delordemm1/go-weight-goal-api/internal/server"
)

const shutdownTimeout = 10 * time.Second

// Options for the CLI.
type Options struct {
	Port   int  `help:"Port to listen on; overrides SERVER_PORT" short:"p"`
	Memory bool `help:"Keep profiles in memory instead of PostgreSQL"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		logger := logging.Logger()

		cfg, err := config.Load()
		if err != nil {
			logger.Fatal("failed to load configuration", zap.Error(err))
		}
		if !logging.SetLevel(cfg.Log.Level) {
			logger.Warn("unknown log level, keeping default", zap.String("level", cfg.Log.Level))
		}

		ctx := context.Background()
		// Released after the HTTP server has drained.
		var closers []func()

		// --- Record store ---
		var repo profile.Repository
		if options.Memory {
			logger.Warn("using in-memory profile store; data is lost on exit")
			repo = profile.NewMemoryRepository()
		} else {
			if err := cfg.RequireDatabase(); err != nil {
				logger.Fatal("database is required without --memory", zap.Error(err))
			}
			pool, err := database.NewPostgresPool(ctx, cfg.Database.URL, database.DefaultPoolOptions)
			if err != nil {
				logger.Fatal("failed to connect to postgres", zap.Error(err))
			}
			closers = append(closers, pool.Close)
			repo = profile.NewRepository(pool)
		}

		if cfg.CacheEnabled() {
			rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
			if err != nil {
				logger.Fatal("failed to connect to redis", zap.Error(err))
			}
			closers = append(closers, func() { _ = rdb.Close() })
			repo = profile.NewCachedRepository(repo, rdb, cfg.Redis.TTL)
		}

		// --- Modules ---
		profileService := profile.NewService(&profile.Config{
			Repo:   repo,
			Logger: logger,
		})
		router := server.New(logger, profileService)

		port := cfg.Server.Port
		if options.Port != 0 {
			port = strconv.Itoa(options.Port)
		}
		srv := &http.Server{
			Addr:              net.JoinHostPort("", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		hooks.OnStart(func() {
			logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Env))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server failed", zap.Error(err))
				_ = logging.Sync()
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("shutting down server")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", zap.Error(err))
			}
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			_ = logging.Sync()
		})
	})
	cli.Run()
}
