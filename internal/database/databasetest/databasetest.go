// Package databasetest opens throwaway in-memory databases for tests.
package databasetest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"zenvor/internal/database"
)

// Open returns a migrated in-memory SQLite database private to t.
func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_time_format=sqlite", name)

	db, err := database.Connect(dsn, nil)
	require.NoError(t, err, "open sqlite db")
	require.NoError(t, database.Migrate(db, models...), "migrate db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
