package testutils

import (
	"testing"

	"customer-intake-portal/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a migrated in-memory SQLite database that is closed when the test ends.
// Repository unit tests use it; the Postgres suite in suite.go backs the integration tests.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize("sqlite://:memory:", nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
