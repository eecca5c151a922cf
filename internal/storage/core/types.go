// Package core defines the document persistence contract implemented by the
// backends under internal/infra/persistence and internal/storage.
package core

import (
	"context"
	"errors"
)

// Driver names a persistence backend.
type Driver string

const (
	DriverMemory     Driver = "memory"
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverSQLite     Driver = "sqlite"
	DriverPostgres   Driver = "postgres"
	DriverRedis      Driver = "redis"
)

// Store is a key/value document store. Each key holds one opaque payload;
// a write replaces the previous payload entirely.
type Store interface {
	// Read returns ErrNotFound when key has never been written.
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Driver() Driver
}

var (
	ErrNotFound   = errors.New("storage: key not found")
	ErrInvalidKey = errors.New("storage: invalid key")
)
