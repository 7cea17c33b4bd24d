package models

import "time"

// Snapshot is the unit of durable persistence: everything needed to rebuild the
// application state on restart.
type Snapshot struct {
	Profile       CompanyProfile `json:"profile"`
	Quotes        []Document     `json:"quotes"`
	Invoices      []Document     `json:"invoices"`
	SessionActive bool           `json:"session_active"`
}

// SnapshotRecord is the SQL row holding one encoded snapshot per application key.
type SnapshotRecord struct {
	Key       string `gorm:"column:app_key;primaryKey;size:100"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name used by migrations.
func (SnapshotRecord) TableName() string {
	return "snapshots"
}
