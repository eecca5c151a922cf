// Package redis persists documents as plain string values under a key prefix
// using go-redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"stockboard/internal/storage/core"
)

const (
	DefaultAddr   = "localhost:6379"
	DefaultPrefix = "stockboard:"
)

// Client is the slice of the go-redis API the store uses. *goredis.Client
// satisfies it.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// Options configures a connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

var _ core.Store = (*Store)(nil)

// Store maps document keys to prefix+key string values.
type Store struct {
	client Client
	prefix string
}

// NewStore dials the server described by opts and pings it.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	addr := opts.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	s, err := NewWithClient(ctx, client, opts.Prefix)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return s, nil
}

// NewWithClient wraps an existing client. An empty prefix selects DefaultPrefix.
func NewWithClient(ctx context.Context, client Client, prefix string) (*Store, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverRedis }

// Prefix reports the namespace applied to every key.
func (s *Store) Prefix() string { return s.prefix }

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if strings.TrimSpace(key) == "" {
		return core.ErrInvalidKey
	}
	if data == nil {
		data = []byte{}
	}
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error { return s.client.Close() }
