// Package storage provides temporary file handling and optional publishing
// of produced artifacts. It defines the Storage interface and
// implementations for local disk and S3.
package storage

import (
	"context"
	"io"
)

// Storage hands out scratch paths for intermediate frames and publishes
// finished images.
type Storage interface {
	// TempPath returns a fresh path inside the temporary directory for a
	// file named after hint with extension ext. The file is not created.
	// Two calls never return the same path.
	TempPath(hint, ext string) string

	// Open opens a local file for reading. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// CleanupTemp removes paths. Missing files are not an error; one
	// failure does not stop the others from being removed.
	CleanupTemp(ctx context.Context, paths []string) error

	// UploadToS3 stores data under key and returns the object URL, or
	// ErrS3NotConfigured when no bucket is configured.
	UploadToS3(ctx context.Context, key string, data io.Reader) (url string, err error)
}
