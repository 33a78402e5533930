package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/leaguehub/internal/store"
)

// NewTestDB creates a temporary SQLite database with the given models migrated.
func NewTestDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("migrate test db: %v", err)
		}
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// NewTestStore wraps NewTestDB in a Store publishing to feed (may be nil).
func NewTestStore(t *testing.T, feed store.Publisher, models ...any) *store.Store {
	t.Helper()
	return store.New(NewTestDB(t, models...), feed)
}

// Counter is a store.Publisher that counts signals.
type Counter struct {
	N int
}

func (c *Counter) Publish() { c.N++ }
