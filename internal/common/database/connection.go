package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var DB *gorm.DB

// InitWithLogLevel opens the connection and installs it as DB.
func InitWithLogLevel(dbType string, dsn string, level logger.LogLevel) error {
	db, err := Open(dbType, dsn, level)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open connects without touching the package-level handle.
func Open(dbType string, dsn string, level logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dbType {
	case TypePostgres:
		dialector = postgres.Open(dsn)
	case TypeSQLite, "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; serialize on one connection.
	if dbType == TypePostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
