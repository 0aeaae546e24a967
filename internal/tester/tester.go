// Package tester provisions throwaway databases and upload folders
// for tests.
package tester

import (
	"path/filepath"
	"testing"

	"github.com/dancosta154/leadership-profile/internal/db/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB opens a migrated SQLite database under the test's temp
// directory. It is removed with the directory when the test ends.
func TestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := conn.AutoMigrate(&models.Document{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return conn
}

// UploadDir returns an empty folder for blob writes.
func UploadDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
