package framekit

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// Publish uploads the file at path to the configured S3 bucket under key
// and returns the object URL. An empty key uses the file's base name.
// Without S3 settings it returns ErrS3NotConfigured.
func (t *Toolkit) Publish(ctx context.Context, path, key string) (string, error) {
	if key == "" {
		key = filepath.Base(path)
	}

	r, err := t.store.Open(ctx, path)
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", path, err)
	}
	defer func() { _ = r.Close() }()

	url, err := t.store.UploadToS3(ctx, key, r)
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", path, err)
	}

	t.logger.Info("published file",
		slog.String("path", path),
		slog.String("url", url),
	)
	return url, nil
}
