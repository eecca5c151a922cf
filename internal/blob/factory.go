package blob

import (
	"context"
	"fmt"
	"os"

	"stockboard/internal/infra/blob/fs"
	memorystore "stockboard/internal/infra/blob/memory"
	infraS3 "stockboard/internal/infra/blob/s3"
)

// EnvFSRoot names the directory used by the filesystem driver.
const EnvFSRoot = "STOCKBOARD_BLOB_FS_ROOT"

// S3Config re-exports the bucket configuration.
type S3Config = infraS3.Config

// Open builds the backend for driver from environment variables:
//
//	STOCKBOARD_BLOB_FS_ROOT: root for fs (default ./blobdata)
//	STOCKBOARD_BLOB_S3_*: bucket settings for s3
func Open(ctx context.Context, driver Driver) (Store, error) {
	switch driver {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv(EnvFSRoot))
	case DriverS3:
		return infraS3.OpenFromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("blob: unknown driver %q", driver)
	}
}

// NewFilesystem returns a store writing under root.
func NewFilesystem(root string) (Store, error) {
	return fs.New(root)
}

// NewMemory returns a process-local store.
func NewMemory() Store { return memorystore.New() }

// NewS3 returns a bucket-backed store.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) {
	return infraS3.New(ctx, cfg)
}

// NewMockS3ForTests exposes the fake bucket to tests in other packages.
func NewMockS3ForTests() Store { return infraS3.NewMockForTests() }
