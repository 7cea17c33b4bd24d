package db

import (
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// registers the postgres driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/diewo77/go-devis/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate runs AutoMigrate for the snapshot table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SnapshotRecord{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if !db.Migrator().HasTable(&models.SnapshotRecord{}) {
		return errors.New("missing table after migration: snapshots")
	}
	return nil
}

// RunSQLMigrations applies the embedded SQL migrations to a Postgres database given as
// a postgres:// URL.
func RunSQLMigrations(url string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
