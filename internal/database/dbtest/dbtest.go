// Package dbtest opens throwaway SQLite databases for unit tests. It lives
// outside package database so the commands never link the SQLite driver.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wesmun/dbtools/internal/config"
	"github.com/wesmun/dbtools/internal/database"
)

// Open creates a SQLite in-memory DB unique per test through database.Open, so tests
// see the same single-connection pool the tools use. It is closed on cleanup.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsnName := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", dsnName)
	db, err := database.Open(context.Background(), sqlite.Open(dsn), config.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
