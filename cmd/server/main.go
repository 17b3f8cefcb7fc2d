package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jgirmay/fps-trainer/internal/common/cache"
	"github.com/jgirmay/fps-trainer/internal/common/database"
	"github.com/jgirmay/fps-trainer/internal/common/events"
	"github.com/jgirmay/fps-trainer/internal/common/health"
	"github.com/jgirmay/fps-trainer/internal/trainer/handlers"
	"github.com/jgirmay/fps-trainer/internal/trainer/repository"
	"github.com/jgirmay/fps-trainer/internal/trainer/services"
	"github.com/jgirmay/fps-trainer/pkg/config"
	"github.com/jgirmay/fps-trainer/pkg/logger"
	"github.com/jgirmay/fps-trainer/pkg/tracing"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Server.Env, cfg.Logging.Level); err != nil {
		return err
	}
	log := logger.Get()

	if cfg.Database.Type == database.TypeSQLite {
		if err := ensureSQLiteDir(cfg.Database.Path); err != nil {
			return err
		}
	}

	sqlLevel := gormlogger.Info
	if cfg.Server.Env == "production" {
		sqlLevel = gormlogger.Warn
	}
	if err := database.InitWithLogLevel(cfg.Database.Type, cfg.Database.DSN, sqlLevel); err != nil {
		return err
	}
	defer database.Close()
	log.Info("database connected", zap.String("type", cfg.Database.Type))

	if err := repository.Migrate(database.DB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	inserted, err := services.EnsureSeeded(startupCtx)
	cancel()
	if err != nil {
		// The list view seeds again on first request.
		log.Warn("initial seeding failed", zap.Error(err))
	} else {
		log.Info("curriculum ready", zap.Int64("inserted", inserted))
	}

	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing, cfg.Server.Env, version, log)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	checker := health.NewHealthChecker(database.DB, version)
	checker.AddCheck("curriculum", curriculumCheck)

	viewCache, err := newViewCache(cfg, log)
	if err != nil {
		return err
	}
	defer viewCache.Close()
	if rc, ok := viewCache.(*cache.RedisCache); ok {
		checker.AddCheck("view_cache", rc.Ping)
	}
	gen := cache.InvalidateOn(events.Default(), viewCache)
	handlers.SetViewCache(viewCache, cfg.Cache.TTL, gen)

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newRouter(cfg, checker),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func newViewCache(cfg *config.Config, log *logger.Logger) (cache.ViewCache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(cfg.Cache.RedisAddr, log)
		if err != nil {
			return nil, fmt.Errorf("view cache: %w", err)
		}
		log.Info("view cache: redis", zap.String("addr", cfg.Cache.RedisAddr))
		return rc, nil
	case "none":
		log.Info("view cache disabled")
		return cache.NopCache{}, nil
	default:
		log.Info("view cache: memory", zap.Duration("ttl", cfg.Cache.TTL))
		return cache.NewLocalCache(cfg.Cache.TTL), nil
	}
}

func curriculumCheck(ctx context.Context) error {
	var count int64
	if err := database.DB.WithContext(ctx).Table("lessons").Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no lessons seeded")
	}
	return nil
}

// ensureSQLiteDir creates the parent directory of a SQLite database file.
func ensureSQLiteDir(path string) error {
	path = strings.TrimPrefix(path, "file:")
	path, _, _ = strings.Cut(path, "?")
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}
