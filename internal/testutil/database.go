package testutil

import (
	"fmt"
	"strings"
	"testing"

	"inkwell/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an isolated in-memory database and migrates the full
// schema. TranslateError is on so unique-constraint violations surface as
// gorm.ErrDuplicatedKey, matching what the production driver reports.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One named shared-cache database per test, so every connection in the
	// pool sees the same data.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := model.InitTables(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}
