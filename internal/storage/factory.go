package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"stockboard/internal/blob"
	"stockboard/internal/infra/persistence/memory"
	"stockboard/internal/infra/persistence/postgres"
	"stockboard/internal/infra/persistence/redis"
	"stockboard/internal/infra/persistence/sqlite"
)

// Environment variables read by Open.
const (
	EnvDriver        = "STOCKBOARD_STORAGE_DRIVER"
	EnvSQLitePath    = "STOCKBOARD_SQLITE_PATH"
	EnvPostgresDSN   = "STOCKBOARD_POSTGRES_DSN"
	EnvRedisAddr     = "STOCKBOARD_REDIS_ADDR"
	EnvRedisPassword = "STOCKBOARD_REDIS_PASSWORD"
	EnvRedisDB       = "STOCKBOARD_REDIS_DB"
	EnvRedisPrefix   = "STOCKBOARD_REDIS_PREFIX"
	EnvDocumentKey   = "STOCKBOARD_DOCUMENT_KEY"
	EnvUsersKey      = "STOCKBOARD_USERS_KEY"
)

const (
	DefaultDocumentKey = "stockingData"
	DefaultUsersKey    = "usuarios"
	defaultSQLitePath  = "./stockboard.db"
)

// Open selects a backend using environment variables. Defaults to sqlite.
//
//	STOCKBOARD_STORAGE_DRIVER: memory|fs|s3|sqlite|postgres|redis
//	STOCKBOARD_SQLITE_PATH: sqlite file (default ./stockboard.db)
//	STOCKBOARD_POSTGRES_DSN: DSN when driver=postgres
//	STOCKBOARD_REDIS_ADDR, _PASSWORD, _DB, _PREFIX: redis connection
//	STOCKBOARD_BLOB_*: see internal/blob
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv(EnvDriver)
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverMemory:
		return memory.NewStore(), nil
	case DriverFilesystem:
		b, err := blob.Open(ctx, blob.DriverFilesystem)
		if err != nil {
			return nil, err
		}
		return NewBlobStore(b, ""), nil
	case DriverS3:
		b, err := blob.Open(ctx, blob.DriverS3)
		if err != nil {
			return nil, err
		}
		return NewBlobStore(b, ""), nil
	case DriverSQLite:
		path := os.Getenv(EnvSQLitePath)
		if path == "" {
			path = defaultSQLitePath
		}
		return sqlite.NewStore(ctx, path)
	case DriverPostgres:
		return postgres.NewStore(ctx, os.Getenv(EnvPostgresDSN))
	case DriverRedis:
		opts, err := redisOptionsFromEnv()
		if err != nil {
			return nil, err
		}
		return redis.NewStore(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

func redisOptionsFromEnv() (redis.Options, error) {
	opts := redis.Options{
		Addr:     os.Getenv(EnvRedisAddr),
		Password: os.Getenv(EnvRedisPassword),
		Prefix:   os.Getenv(EnvRedisPrefix),
	}
	if raw := os.Getenv(EnvRedisDB); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return redis.Options{}, fmt.Errorf("%s must be a non-negative integer, got %q", EnvRedisDB, raw)
		}
		opts.DB = db
	}
	return opts, nil
}

// DocumentKey returns the key holding the board document.
func DocumentKey() string { return envOr(EnvDocumentKey, DefaultDocumentKey) }

// UsersKey returns the key holding the account directory.
func UsersKey() string { return envOr(EnvUsersKey, DefaultUsersKey) }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Close closes s when the backend holds resources.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
