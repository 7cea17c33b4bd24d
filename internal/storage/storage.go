// Package storage is the durable-storage boundary: one JSON snapshot per application
// key, written to a pluggable key-value backend.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/diewo77/go-devis/internal/models"
)

// DefaultKey is the fixed application identifier snapshots are stored under.
const DefaultKey = "entrepreneurApp"

// DefaultMaxBytes mirrors the ~5 MiB budget browsers give local storage.
const DefaultMaxBytes = 5 << 20

var (
	// ErrNotFound means no snapshot was ever saved: a first run, not a failure.
	ErrNotFound = errors.New("snapshot_not_found")
	// ErrQuotaExceeded is returned when the encoded snapshot is larger than the configured limit.
	ErrQuotaExceeded = errors.New("storage_quota_exceeded")
)

// PersistenceError reports a failed read or write of the durable snapshot. It is
// never fatal: the in-memory state stays usable.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistenceError reports whether err carries a *PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// Backend is a key-value store for encoded snapshots.
type Backend interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Snapshots loads and saves the application snapshot through a Backend.
type Snapshots struct {
	backend  Backend
	key      string
	maxBytes int
}

// NewSnapshots binds a backend to a key. maxBytes <= 0 disables the size check.
func NewSnapshots(backend Backend, key string, maxBytes int) *Snapshots {
	if key == "" {
		key = DefaultKey
	}
	return &Snapshots{backend: backend, key: key, maxBytes: maxBytes}
}

// Key returns the application key snapshots are stored under.
func (s *Snapshots) Key() string { return s.key }

// Load reads the last saved snapshot. It returns ErrNotFound on first run.
func (s *Snapshots) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	payload, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return snap, ErrNotFound
	}
	if err != nil {
		return snap, &PersistenceError{Op: "load", Err: err}
	}
	if err := json.Unmarshal(payload, &snap); err != nil {
		return models.Snapshot{}, &PersistenceError{Op: "decode", Err: err}
	}
	return snap, nil
}

// Save encodes and writes the full snapshot.
func (s *Snapshots) Save(ctx context.Context, snap models.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}
	if s.maxBytes > 0 && len(payload) > s.maxBytes {
		return &PersistenceError{Op: "save", Err: fmt.Errorf("%d bytes exceeds %d: %w", len(payload), s.maxBytes, ErrQuotaExceeded)}
	}
	if err := s.backend.Put(ctx, s.key, payload); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// Ping checks the backend is reachable.
func (s *Snapshots) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Close releases the backend.
func (s *Snapshots) Close() error {
	return s.backend.Close()
}
