package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus describes the schema version currently applied.
type MigrationStatus struct {
	Version uint
	Dirty   bool
	Applied bool
}

// MigrateUp applies every pending migration.
func MigrateUp(databaseURL string) error {
	m, err := getMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.WithField("version", version).Info("Migrations applied")
	return nil
}

// MigrateDown rolls back steps migrations.
func MigrateDown(databaseURL string, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("invalid steps value: %d", steps)
	}

	m, err := getMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	version, _, verr := m.Version()
	if errors.Is(verr, migrate.ErrNilVersion) {
		log.Info("Rolled back all migrations")
		return nil
	}
	log.WithField("version", version).Info("Rolled back migrations")
	return nil
}

func MigrateStatus(databaseURL string) (MigrationStatus, error) {
	m, err := getMigrate(databaseURL)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return MigrationStatus{}, nil
	}
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("failed to get migration version: %w", err)
	}
	return MigrationStatus{Version: version, Dirty: dirty, Applied: true}, nil
}

func getMigrate(databaseURL string) (*migrate.Migrate, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	db := stdlib.OpenDB(*config.ConnConfig)

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}
