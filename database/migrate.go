package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

//go:embed migration
var migrations embed.FS

type migrationLogger struct {
	logger *slog.Logger
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrationLogger) Verbose() bool {
	return false
}

// Migrate creates the storefront tables when they are absent.
//
// SQLite runs against the given handle so that in-memory databases see the
// schema. Postgres migrates over its own connection built from dsn, leaving
// db untouched.
func Migrate(db *sql.DB, dialect, dsn string) error {
	const op = "database.Migrate"

	src, err := iofs.New(migrations, "migration/"+dialect)
	if err != nil {
		return fmt.Errorf("%s: failed to open migrations for %q: %w", op, dialect, err)
	}

	var m *migrate.Migrate
	switch dialect {
	case DialectSQLite:
		driver, err := sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("%s: failed to create migration driver: %w", op, err)
		}
		// Closing this instance would close db, so it is left open.
		m, err = migrate.NewWithInstance("iofs", src, dialect, driver)
		if err != nil {
			return fmt.Errorf("%s: failed to initialize migrator: %w", op, err)
		}
	case DialectPostgres:
		m, err = migrate.NewWithSourceInstance("iofs", src, pgx5URL(dsn))
		if err != nil {
			return fmt.Errorf("%s: failed to initialize migrator: %w", op, err)
		}
		defer func() {
			if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
				slog.Error("failed to close migrator", "op", op, "err", errors.Join(srcErr, dbErr))
			}
		}()
	default:
		return fmt.Errorf("%s: unsupported dialect %q", op, dialect)
	}

	m.Log = migrationLogger{logger: slog.With("op", op)}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("database schema is up to date", "op", op)
			return nil
		}
		return fmt.Errorf("%s: failed to apply migrations: %w", op, err)
	}

	slog.Info("database migrations applied", "op", op)
	return nil
}

func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}
