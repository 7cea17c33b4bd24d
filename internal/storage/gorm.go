package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/go-devis/internal/models"
)

// GormBackend stores snapshots in the snapshots table (SQLite or PostgreSQL).
// The table must exist; see db.Migrate.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend wraps an open gorm connection.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (g *GormBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var rec models.SnapshotRecord
	err := g.db.WithContext(ctx).Where("app_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Payload), nil
}

func (g *GormBackend) Put(ctx context.Context, key string, payload []byte) error {
	rec := models.SnapshotRecord{Key: key, Payload: string(payload), UpdatedAt: time.Now().UTC()}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}

func (g *GormBackend) Ping(ctx context.Context) error {
	return g.db.WithContext(ctx).Exec("SELECT 1").Error
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
