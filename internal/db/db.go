// Package db opens the history database and prepares its schema.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	// import db drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/prism-ai/prism/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is a wrapper around the sqlx.DB connection pool that remembers which
// backend it talks to.
type DB struct {
	*sqlx.DB
	Kind config.StorageKind
}

// NewDatabase opens the backend resolved at startup. The networked backend
// runs its embedded migrations; the embedded backend's schema is created by
// its store adapter.
func NewDatabase(cfg *config.Config) (*DB, func(), error) {
	var (
		conn *sqlx.DB
		err  error
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		conn, err = sqlx.Connect("postgres", cfg.DatabaseURL)
	case config.StorageSQLite:
		conn, err = sqlx.Connect("sqlite", cfg.DatabaseURL+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	default:
		return nil, func() {}, fmt.Errorf("unknown storage kind: %s", cfg.Storage)
	}
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to connect to %s database: %w", cfg.Storage, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, func() {}, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{DB: conn, Kind: cfg.Storage}

	if cfg.Storage == config.StoragePostgres {
		slog.Info("running database migrations")
		if err := db.RunMigrations(); err != nil {
			_ = conn.Close()
			return nil, func() {}, fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.Info("database migrations completed successfully")
	}

	return db, func() {
		if err := conn.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
	}, nil
}

// RunMigrations executes pending migrations embedded in the binary. It
// refuses to run against a dirty schema left by a previously failed
// migration.
func (db *DB) RunMigrations() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	_, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("failed to apply migrations: database is in dirty state, fix it manually (e.g. 'migrate force <version>')")
	}

	err = migrator.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
