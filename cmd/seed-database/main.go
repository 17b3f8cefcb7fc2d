package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jgirmay/fps-trainer/internal/common/database"
	"github.com/jgirmay/fps-trainer/internal/trainer/repository"
	"github.com/jgirmay/fps-trainer/internal/trainer/services"
	"github.com/jgirmay/fps-trainer/pkg/logger"
)

type Config struct {
	DBType string // "sqlite" or "postgres"
	DSN    string
	Env    string
}

var config Config

func init() {
	flag.StringVar(&config.DBType, "db-type", "sqlite", "Database type: sqlite or postgres")
	flag.StringVar(&config.DSN, "dsn", "./data/fps_trainer.db?_foreign_keys=1", "Database DSN (SQLite path or PostgreSQL URL)")
	flag.StringVar(&config.Env, "env", "development", "Logging environment")
}

func main() {
	flag.Parse()

	if err := logger.Init(config.Env, "info"); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	inserted, err := seed(context.Background(), config)
	if err != nil {
		logger.Error("seeding failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("seeding complete", zap.Int64("lessons_inserted", inserted))
}

// seed migrates the schema and inserts the curriculum if it is missing.
func seed(ctx context.Context, cfg Config) (int64, error) {
	if err := database.InitWithLogLevel(cfg.DBType, cfg.DSN, gormlogger.Warn); err != nil {
		return 0, err
	}
	defer database.Close()

	if err := repository.Migrate(database.DB); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	return services.EnsureSeeded(ctx)
}
