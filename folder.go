package framekit

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// CreateSubfolder creates parent/name, including missing parents, unless
// it already exists. Both cases succeed and return the path.
func (t *Toolkit) CreateSubfolder(parent, name string) (string, error) {
	path := filepath.Join(parent, name)

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		t.logger.Info("subfolder already exists", slog.String("path", path))
		return path, nil
	case err == nil:
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, path)
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("stat subfolder: %w", err)
	}

	if err := os.MkdirAll(path, 0750); err != nil {
		return "", fmt.Errorf("create subfolder: %w", err)
	}

	t.logger.Info("subfolder created", slog.String("path", path))
	return path, nil
}
