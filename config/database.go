package config

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"ecom-cart/database"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// ConnectDB opens and pings the configured database. SQLite handles are limited
// to a single connection, which serializes writers and keeps ":memory:"
// databases shared across queries.
func ConnectDB(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	const op = "config.ConnectDB"

	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case database.DialectSQLite:
		db, err = sql.Open("sqlite", cfg.Path+"?"+sqlitePragmas)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	case database.DialectPostgres:
		db, err = sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
	default:
		return nil, fmt.Errorf("%s: unsupported driver %q", op, cfg.Driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: unable to ping database: %w", op, err)
	}

	slog.Info("database connected successfully", "op", op, "driver", cfg.Driver)
	return db, nil
}

func CloseDB(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		slog.Error("failed to close database", "err", err)
		return
	}
	slog.Info("database connection closed")
}
