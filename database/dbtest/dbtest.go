// Package dbtest opens migrated databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"ecom-cart/config"
	"ecom-cart/database"

	"github.com/stretchr/testify/require"
)

// PostgresDSNEnv names the variable that enables tests against a real Postgres.
const PostgresDSNEnv = "ECOM_TEST_POSTGRES_DSN"

// OpenSQLite returns a fresh in-memory database with the schema applied.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, err := config.ConnectDB(context.Background(), config.DatabaseConfig{
		Driver: database.DialectSQLite,
		Path:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, database.DialectSQLite, ""))
	return db
}

// OpenPostgres connects to the database named by ECOM_TEST_POSTGRES_DSN,
// applies the schema and empties both tables. The test is skipped when the
// variable is unset.
func OpenPostgres(t testing.TB) *sql.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	db, err := config.ConnectDB(context.Background(), config.DatabaseConfig{
		Driver: database.DialectPostgres,
		URL:    dsn,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, database.DialectPostgres, dsn))

	_, err = db.Exec(`TRUNCATE cart_items, products`)
	require.NoError(t, err)
	return db
}
