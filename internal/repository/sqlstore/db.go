// Package sqlstore implements the repositories on database/sql through sqlx.
// SQLite is the default driver; postgres is accepted for a shared server.
package sqlstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jwalitptl/caresync-api/internal/config"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// NewDB opens the configured database and creates the schema if needed.
func NewDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// one writer at a time; avoids SQLITE_BUSY between pooled connections
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func dataSource(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case "", "sqlite", DriverSQLite:
		path := cfg.Path
		if path == "" {
			path = "caresync.db"
		}
		if path != ":memory:" {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return "", "", fmt.Errorf("failed to create database directory: %w", err)
				}
			}
		}
		return DriverSQLite, path, nil
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.SSLMode,
		)
		return DriverPostgres, dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates the tables for db's driver. Safe to run repeatedly.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts := sqliteSchema
	if db.DriverName() == DriverPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
