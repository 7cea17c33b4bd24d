package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/diewo77/go-devis/internal/config"
	"github.com/diewo77/go-devis/internal/db"
	"github.com/diewo77/go-devis/internal/logger"
	"github.com/diewo77/go-devis/internal/server"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// App bundles the workspace, its storage and the HTTP server.
type App struct {
	cfg       *config.Config
	log       *zap.Logger
	snapshots *storage.Snapshots
	ws        *services.Workspace
}

// NewApp opens the configured storage and restores the last snapshot. A snapshot that
// cannot be read is logged and the app starts empty.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	backend, err := openBackend(ctx, cfg, logger.Named(log, "storage"))
	if err != nil {
		return nil, err
	}
	snaps := storage.NewSnapshots(backend, cfg.Storage.Key, cfg.Storage.MaxBytes)
	ws := services.NewWorkspace(snaps, services.WithLogger(logger.Named(log, "workspace")))
	if err := ws.Load(ctx); err != nil {
		log.Warn("starting with empty state", zap.Error(err))
	}
	return &App{cfg: cfg, log: log, snapshots: snaps, ws: ws}, nil
}

// Close releases the storage backend.
func (a *App) Close() {
	if err := a.snapshots.Close(); err != nil {
		a.log.Warn("storage close failed", zap.Error(err))
	}
}

// Export writes the current snapshot as indented JSON.
func (a *App) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a.ws.Snapshot())
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      server.New(a.ws, a.cfg, logger.Named(a.log, "http")),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("server starting",
			zap.String("port", a.cfg.Server.Port),
			zap.String("env", a.cfg.App.Env),
			zap.String("storage", a.cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn("memory storage selected: nothing survives a restart")
		return storage.NewMemoryBackend(), nil
	case config.StorageGorm:
		gdb, err := openDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		return storage.NewGormBackend(gdb), nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis not reachable yet", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		return storage.NewRedisBackend(client), nil
	case config.StorageMongo:
		b, err := storage.NewMongoBackend(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

// openDatabase connects and prepares the snapshot table. Postgres with APP_MIGRATIONS
// uses the versioned SQL migrations; everything else uses AutoMigrate.
func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := db.Open(cfg.Database, !cfg.IsProduction() && cfg.Log.Level == "debug", log)
	if err != nil {
		return nil, err
	}
	if cfg.App.Migrations && cfg.Database.Driver == config.DriverPostgres {
		if err := db.RunSQLMigrations(cfg.Database.URL()); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
		return gdb, nil
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// migrateOnly prepares the database for the gorm storage and exits.
func migrateOnly(cfg *config.Config, log *zap.Logger) error {
	if cfg.Storage.Driver != config.StorageGorm {
		log.Info("no migrations for storage driver", zap.String("driver", cfg.Storage.Driver))
		return nil
	}
	gdb, err := openDatabase(cfg, logger.Named(log, "db"))
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
