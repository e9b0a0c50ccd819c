//go:build database

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/workbench/internal/iostore"
	"github.com/huangsam/workbench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestWorkbenchWithMySQL tests the workbench CLI with a MySQL backend.
func TestWorkbenchWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "workbench",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/workbench", host, port.Port())
	exerciseBackend(t, schema.MySQLBackend, connStr)
}

// TestWorkbenchWithPostgres tests the workbench CLI with a PostgreSQL backend.
func TestWorkbenchWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseBackend(t, schema.PostgreSQLBackend, connStr)
}

// exerciseBackend runs the store API and then the CLI against a live database.
func exerciseBackend(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()
	ctx := context.Background()

	t.Run("migrate up and down", func(t *testing.T) {
		var out strings.Builder
		require.NoError(t, iostore.Migrate(backend, connStr, -1, &out))
		require.NoError(t, iostore.Migrate(backend, connStr, 0, &out))
		assert.Contains(t, out.String(), "Successfully migrated")
	})

	t.Run("document store round trip", func(t *testing.T) {
		require.NoError(t, iostore.ClearStore(backend, connStr))

		store, err := iostore.NewDogStore(backend, connStr)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		dogs := []schema.Dog{{ID: 1, Name: "Toby", Breed: "Beagle", Age: 3, Weight: 12.5, IntakeDate: "2024-01-10"}}
		require.NoError(t, store.Save(ctx, dogs))
		require.NoError(t, store.Save(ctx, dogs))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, dogs, got)

		status, err := store.GetStatus(ctx)
		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Equal(t, 1, status.TotalRecords)
		assert.Equal(t, 2, status.DocumentVersion)
	})

	t.Run("cli", func(t *testing.T) {
		t.Setenv("WORKBENCH_DOGS_BACKEND", string(backend))
		t.Setenv("WORKBENCH_DOGS_DB_CONNECT", connStr)
		dir := t.TempDir()

		_, err := runWorkbench(t, "..", "store", "clear")
		require.NoError(t, err)

		_, err = runWorkbench(t, "..", "dogs", "create",
			"--name", "Rex", "--breed", "Boxer", "--age", "5", "--weight", "30", "--intake-date", "2023-05-01")
		require.NoError(t, err)

		listFile := filepath.Join(dir, "dogs.json")
		_, err = runWorkbench(t, "..", "dogs", "list", "--output", "json", "--output-file", listFile)
		require.NoError(t, err)

		content, err := os.ReadFile(listFile)
		require.NoError(t, err)
		var dogs []schema.Dog
		require.NoError(t, json.Unmarshal(content, &dogs))
		require.Len(t, dogs, 1)
		assert.Equal(t, int64(1), dogs[0].ID)

		out, err := runWorkbench(t, "..", "store", "status")
		require.NoError(t, err)
		assert.Contains(t, out, string(backend))
	})
}
