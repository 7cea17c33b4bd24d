package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/diewo77/go-devis/internal/config"
	"github.com/diewo77/go-devis/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Database.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	return cfg
}

func TestNewAppGormSQLite(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, testConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()

	if err := app.ws.Login(ctx); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := app.ws.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	var buf bytes.Buffer
	if err := app.Export(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if !snap.SessionActive || len(snap.Quotes) != 1 || snap.Quotes[0].Number != "DEV-1" {
		t.Fatalf("unexpected export: %+v", snap)
	}
}

func TestMigrateOnly(t *testing.T) {
	if err := migrateOnly(testConfig(t), zap.NewNop()); err != nil {
		t.Fatalf("migrate-only: %v", err)
	}
	cfg := testConfig(t)
	cfg.Storage.Driver = config.StorageMemory
	if err := migrateOnly(cfg, zap.NewNop()); err != nil {
		t.Fatalf("migrate-only memory: %v", err)
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "s3"
	if _, err := openBackend(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
