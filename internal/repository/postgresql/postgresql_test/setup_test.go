package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Prateek11234/hrms/internal/pkg/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// setupTestDB starts a shared PostgreSQL container once per test run, applies
// the embedded migrations and returns a pool that is closed on cleanup.
// Set HRMS_INTEGRATION=1 to run; TEST_DATABASE_URL skips the container.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	if os.Getenv("HRMS_INTEGRATION") != "1" {
		t.Skip("set HRMS_INTEGRATION=1 to run PostgreSQL integration tests")
	}

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("failed to setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, sharedDSN, database.PoolOptions{MaxConns: 5, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to test DB: %v", err)
	}
	t.Cleanup(db.Close)

	truncateAll(t, db)
	return db
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "hrms_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		}

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			return "", fmt.Errorf("start container: %w", err)
		}

		host, err := container.Host(ctx)
		if err != nil {
			return "", fmt.Errorf("get container host: %w", err)
		}
		port, err := container.MappedPort(ctx, "5432")
		if err != nil {
			return "", fmt.Errorf("get mapped port: %w", err)
		}

		dsn = fmt.Sprintf("postgres://testuser:testpass@%s:%s/hrms_test?sslmode=disable", host, port.Port())
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		return "", err
	}
	return dsn, nil
}

func truncateAll(t *testing.T, db *database.DB) {
	t.Helper()
	if _, err := db.Exec(context.Background(), "TRUNCATE TABLE attendances, employees CASCADE"); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
