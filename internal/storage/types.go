// Package storage is the document persistence entry point: it re-exports the
// core contract, adapts blob stores to it and opens the configured backend.
package storage

import "stockboard/internal/storage/core"

type (
	Driver = core.Driver
	Store  = core.Store
)

const (
	DriverMemory     = core.DriverMemory
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverSQLite     = core.DriverSQLite
	DriverPostgres   = core.DriverPostgres
	DriverRedis      = core.DriverRedis
)

var (
	ErrNotFound   = core.ErrNotFound
	ErrInvalidKey = core.ErrInvalidKey
)
