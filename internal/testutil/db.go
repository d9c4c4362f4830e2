// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/internal/db"
	"github.com/mnuddindev/routinely/pkg/logger"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewDB returns a private in-memory SQLite database with models migrated.
// A single connection keeps every statement on the same in-memory schema.
func NewDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := db.NewDB(context.Background(), sqlite.Open(dsn), models,
		db.WithLogger(logger.Nop(), gormLogger.Silent),
		db.WithPool(1, 1, 0),
	)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.CloseDB(gormDB, logger.Nop())
	})
	return gormDB
}
