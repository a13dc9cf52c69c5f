package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus is the schema version after a migration run
type MigrationStatus struct {
	Version uint
	Dirty   bool
}

func newMigrator(connString string) (*migrate.Migrate, error) {
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return m, nil
}

// Migrate applies every pending up migration
func Migrate(connString string) (MigrationStatus, error) {
	m, err := newMigrator(connString)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return MigrationStatus{}, fmt.Errorf("migrate up: %w", err)
	}
	return status(m)
}

// MigrateDown rolls back the given number of migrations
func MigrateDown(connString string, steps int) (MigrationStatus, error) {
	if steps <= 0 {
		return MigrationStatus{}, fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, err := newMigrator(connString)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return MigrationStatus{}, fmt.Errorf("migrate down: %w", err)
	}
	return status(m)
}

func status(m *migrate.Migrate) (MigrationStatus, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return MigrationStatus{}, nil
	}
	if err != nil {
		return MigrationStatus{}, err
	}
	return MigrationStatus{Version: version, Dirty: dirty}, nil
}
