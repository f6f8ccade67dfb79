package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/maauso/framekit/internal/id"
)

// ErrS3NotConfigured is returned by UploadToS3 when no bucket is set up.
var ErrS3NotConfigured = errors.New("S3 storage is not configured")

// LocalStorage keeps intermediate frames in a private directory on disk.
type LocalStorage struct {
	tempDir string
}

// NewLocalStorage creates tempDir if needed. An empty tempDir means
// $TMPDIR/framekit.
func NewLocalStorage(tempDir string) (*LocalStorage, error) {
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "framekit")
	}
	if err := os.MkdirAll(tempDir, 0750); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	return &LocalStorage{tempDir: tempDir}, nil
}

// TempDir returns the directory temp paths are allocated in.
func (s *LocalStorage) TempDir() string {
	return s.tempDir
}

// TempPath names a fresh file in the temp directory. The file is not
// created; two calls never return the same path.
func (s *LocalStorage) TempPath(hint, ext string) string {
	return filepath.Join(s.tempDir, id.Generate(hint)+ext)
}

// Open returns a reader over the file at path. The caller closes it.
func (s *LocalStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	f, err := os.Open(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// CleanupTemp removes paths, ignoring ones that are already gone. Every
// path is attempted; failures are joined into the returned error.
func (s *LocalStorage) CleanupTemp(ctx context.Context, paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, fmt.Errorf("context cancelled: %w", err))...)
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove temp file %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// UploadToS3 always fails with ErrS3NotConfigured.
func (s *LocalStorage) UploadToS3(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "", ErrS3NotConfigured
}
