// Package testdb opens isolated in-memory sqlite databases for tests.
package testdb

import (
	"context"
	"fmt"
	"testing"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/pkg/config"
	"go-ferreteria-api/pkg/database"
	"go-ferreteria-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated database private to t. Each call gets its own
// in-memory file so parallel packages never share rows.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DBConfig{
		Driver:   config.DriverSQLite,
		DSN:      fmt.Sprintf("file:ferreteria_%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel: "silent",
	}
	db, err := database.Connect(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, model.Migrate(db))
	return db
}
