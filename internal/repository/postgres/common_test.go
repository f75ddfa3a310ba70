package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/database"
)

func testPostgresConfig(t *testing.T) config.PostgresConfig {
	// Check if we're running integration tests
	if os.Getenv("POSTGRES_TEST_HOST") == "" {
		t.Skip("Skipping integration test: POSTGRES_TEST_HOST not set")
	}

	cfg := config.PostgresConfig{
		Host:              os.Getenv("POSTGRES_TEST_HOST"),
		Port:              5432,
		User:              os.Getenv("POSTGRES_TEST_USER"),
		Password:          os.Getenv("POSTGRES_TEST_PASS"),
		Database:          os.Getenv("POSTGRES_TEST_DB"),
		SSLMode:           "disable",
		MaxConns:          10,
		MinConns:          1,
		AcquireTimeout:    5 * time.Second,
		MaxConnIdleTime:   time.Minute,
		MaxConnLifetime:   time.Hour,
		HealthCheckPeriod: time.Minute,
	}
	if cfg.Database == "" {
		cfg.Database = "test_clientdb"
	}
	if cfg.User == "" {
		cfg.User = "postgres"
	}
	return cfg
}

// getTestDB returns a pgx-backed gateway with the schema applied, or skips.
func getTestDB(t *testing.T) *database.PostgresDB {
	cfg := testPostgresConfig(t)

	db, err := database.NewPostgres(context.Background(), cfg)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to PostgreSQL: %v", err)
	}
	t.Cleanup(db.Close)

	require.NoError(t, db.ApplySchema(context.Background()))
	return db
}

// getTestSQLX returns a lib/pq-backed handle with the schema applied, or skips.
func getTestSQLX(t *testing.T) *sqlx.DB {
	getTestDB(t)

	db, err := database.NewSQLX(context.Background(), testPostgresConfig(t))
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to PostgreSQL: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// cleanupClients removes test clients; documents and payments cascade
func cleanupClients(t *testing.T, db *database.PostgresDB, ids ...uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	for _, id := range ids {
		_, _ = db.Exec(ctx, "DELETE FROM clients WHERE id = $1", id)
	}
}

// cleanupUsers removes test users from the database
func cleanupUsers(t *testing.T, db *sqlx.DB, emails ...string) {
	t.Helper()
	ctx := context.Background()
	for _, email := range emails {
		_, _ = db.ExecContext(ctx, "DELETE FROM users WHERE email = $1", email)
	}
}

// uniqueEmail keeps parallel test runs from colliding
func uniqueEmail(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8] + "@example.com"
}
