// Package memory keeps documents in process memory. Payloads are copied in and
// out so callers cannot alias stored bytes.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"stockboard/internal/storage/core"
)

var _ core.Store = (*Store)(nil)

// Store is a mutex-guarded map of documents.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string][]byte)}
}

// Seed returns a store pre-populated with docs, handy for fixtures.
func Seed(docs map[string][]byte) *Store {
	s := NewStore()
	for k, v := range docs {
		s.docs[k] = bytes.Clone(v)
	}
	return s
}

func (s *Store) Driver() core.Driver { return core.DriverMemory }

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	return bytes.Clone(data), nil
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return core.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if data == nil {
		data = []byte{}
	}
	s.docs[key] = bytes.Clone(data)
	return nil
}

// Keys lists stored keys in ascending order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
