package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"stockboard/internal/blob"
)

const documentContentType = "application/json"

// BlobStore writes each document as one overwritable object.
type BlobStore struct {
	blobs  blob.Store
	prefix string
}

var _ Store = (*BlobStore)(nil)

// NewBlobStore adapts b. Keys are stored under prefix, which may be empty.
func NewBlobStore(b blob.Store, prefix string) *BlobStore {
	return &BlobStore{blobs: b, prefix: prefix}
}

func (s *BlobStore) Driver() Driver {
	switch s.blobs.Driver() {
	case blob.DriverS3:
		return DriverS3
	case blob.DriverMemory:
		return DriverMemory
	default:
		return DriverFilesystem
	}
}

func (s *BlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	_, rc, err := s.blobs.Get(ctx, s.prefix+key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *BlobStore) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.blobs.Put(ctx, s.prefix+key, bytes.NewReader(data), blob.PutOptions{
		ContentType: documentContentType,
		Overwrite:   true,
	})
	if errors.Is(err, blob.ErrInvalidKey) {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return err
}

// Blobs returns the wrapped blob store.
func (s *BlobStore) Blobs() blob.Store { return s.blobs }
