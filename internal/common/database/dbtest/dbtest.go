// Package dbtest opens throwaway in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jgirmay/fps-trainer/internal/common/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open points database.DB at a fresh in-memory SQLite database and closes it
// when the test ends. Callers run their own migrations.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, seq.Add(1))

	if err := database.InitWithLogLevel(database.TypeSQLite, dsn, logger.Silent); err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db := database.DB

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		if database.DB == db {
			database.DB = nil
		}
	})

	return db
}
