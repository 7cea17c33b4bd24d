// Package db opens the SQL database backing the gorm snapshot storage.
package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-devis/internal/config"
)

var (
	connectAttempts = 5
	retryDelay      = 2 * time.Second
)

// Open connects to the configured database, retrying a few times so that Postgres has
// time to start alongside the application.
func Open(cfg config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Path)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			err = db.Exec("SELECT 1").Error
		}
		if err == nil {
			break
		}
		log.Warn("database connection failed, retrying",
			zap.String("driver", cfg.Driver),
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", connectAttempts),
			zap.Error(err))
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	log.Info("database connected", zap.String("driver", cfg.Driver))
	return db, nil
}
