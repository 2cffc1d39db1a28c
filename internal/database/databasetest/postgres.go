//go:build integration

package databasetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"zenvor/internal/database"
)

// OpenPostgres starts a throwaway PostgreSQL container for t and returns a
// migrated connection to it. Needs a Docker daemon.
func OpenPostgres(t *testing.T, models ...any) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "zenvor",
				"POSTGRES_PASSWORD": "zenvor",
				"POSTGRES_DB":       "zenvor",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://zenvor:zenvor@%s:%s/zenvor?sslmode=disable", host, port.Port())
	db, err := database.ConnectWithRetry(ctx, dsn, nil, 30*time.Second)
	require.NoError(t, err, "connect postgres")
	require.NoError(t, database.Migrate(db, models...), "migrate db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
