package db

import (
	"fmt"
	"io/fs"
	"testing"

	"go.uber.org/zap"

	"github.com/diewo77/go-devis/internal/config"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
	d, err := Open(cfg, false, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Migrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// idempotent
	if err := Migrate(d); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if !d.Migrator().HasColumn("snapshots", "app_key") {
		t.Fatalf("expected app_key column")
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "mysql"}, false, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestEmbeddedMigrationsPaired(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(ups) == 0 || len(ups) != len(downs) {
		t.Fatalf("expected paired migrations, got %d up / %d down", len(ups), len(downs))
	}
}
