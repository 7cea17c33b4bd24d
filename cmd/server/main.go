package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/diewo77/go-devis/internal/config"
	"github.com/diewo77/go-devis/internal/logger"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	exportFlag      = flag.Bool("export", false, "Print the stored snapshot as JSON and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	base := logger.Must(logger.New(cfg.Log.Level, cfg.Log.Format))
	defer func() { _ = base.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateOnlyFlag {
		if err := migrateOnly(cfg, base); err != nil {
			base.Fatal("migration failed", zap.Error(err))
		}
		base.Info("migrations completed successfully")
		return
	}

	app, err := NewApp(ctx, cfg, base)
	if err != nil {
		base.Fatal("startup failed", zap.Error(err))
	}
	defer app.Close()

	if *exportFlag {
		if err := app.Export(os.Stdout); err != nil {
			base.Fatal("export failed", zap.Error(err))
		}
		return
	}

	if err := app.Run(ctx); err != nil {
		base.Fatal("server error", zap.Error(err))
	}
	base.Info("server stopped gracefully")
}
