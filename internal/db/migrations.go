package db

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationStatus describes the schema version of the database
type MigrationStatus struct {
	Version uint
	Dirty   bool
}

// newMigrator builds a golang-migrate instance on top of the open connection.
// The instance is never closed: closing it would close the shared *sql.DB.
func (db *DB) newMigrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite migration driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, "sqlite", driver)
}

// MigrateUp applies all pending migrations
func (db *DB) MigrateUp() error {
	m, err := db.newMigrator()
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("database schema is up to date")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	status, err := currentVersion(m)
	if err != nil {
		return err
	}
	slog.Info("database migrated", "version", status.Version)
	return nil
}

// MigrateDown rolls back the given number of migrations
func (db *DB) MigrateDown(steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", steps)
	}

	m, err := db.newMigrator()
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	status, err := currentVersion(m)
	if err != nil {
		return err
	}
	if status.Version == 0 {
		slog.Info("database rolled back to an empty schema")
		return nil
	}
	slog.Info("database rolled back", "version", status.Version)
	return nil
}

// MigrationVersion returns the current schema version. A database that was
// never migrated reports version 0.
func (db *DB) MigrationVersion() (MigrationStatus, error) {
	m, err := db.newMigrator()
	if err != nil {
		return MigrationStatus{}, err
	}

	return currentVersion(m)
}

type versioner interface {
	Version() (version uint, dirty bool, err error)
}

// currentVersion reads the schema version, mapping "no migration applied" to 0
func currentVersion(m versioner) (MigrationStatus, error) {
	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return MigrationStatus{}, nil
		}
		return MigrationStatus{}, fmt.Errorf("failed to read migration version: %w", err)
	}

	return MigrationStatus{Version: version, Dirty: dirty}, nil
}
