// Package postgres persists documents in a Postgres table through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"stockboard/internal/storage/core"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/stockboard?sslmode=disable"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS documents (
	key TEXT PRIMARY KEY,
	payload BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`
	selectSQL = `SELECT payload FROM documents WHERE key = $1`
	upsertSQL = `INSERT INTO documents (key, payload, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OverrideSQLOpen swaps the driver opener, returning a restore func. Tests use
// it to hand NewStore a sqlmock connection.
func OverrideSQLOpen(fn func(driverName, dsn string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}

var _ core.Store = (*Store)(nil)

// Store holds one row per document key.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore connects using dsn (falls back to a localhost default), pings the
// server and ensures the documents table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverPostgres }

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, selectSQL, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	if payload == nil {
		payload = []byte{}
	}
	return payload, nil
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if strings.TrimSpace(key) == "" {
		return core.ErrInvalidKey
	}
	if data == nil {
		data = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, upsertSQL, key, data, s.now().UTC()); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }
