package framekit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/maauso/framekit/internal/media"
)

// imageExtensions are the extensions GetImageFilename accepts.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".gif":  true,
}

// ConvertPNGToJPG re-encodes the PNG at path as a JPEG next to it, with the
// same base name and a .jpg extension. Transparency is flattened onto the
// configured background color. The source file is left in place.
// It returns the path of the new file.
func (t *Toolkit) ConvertPNGToJPG(path string) (string, error) {
	format, err := media.SniffFormat(path)
	if err != nil {
		return "", err
	}
	if format != media.FormatPNG {
		return "", fmt.Errorf("%w: %s is %s", ErrNotPNG, path, format)
	}

	img, _, err := t.codec.Open(path)
	if err != nil {
		return "", err
	}

	output := strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
	if err := t.codec.Save(media.Flatten(img, t.background), output); err != nil {
		return "", err
	}

	t.logger.Info("converted image",
		slog.String("source", path),
		slog.String("output", output),
	)
	return output, nil
}

// DirectoryOutcome tells what ProcessImageInDirectory did.
type DirectoryOutcome int

const (
	// OutcomeFailed accompanies a non-nil error.
	OutcomeFailed DirectoryOutcome = iota
	// OutcomeSkipped means the directory did not hold exactly one entry.
	OutcomeSkipped
	// OutcomeConverted means a PNG was converted to JPEG.
	OutcomeConverted
	// OutcomeAlreadyJPEG means the single file was already a JPEG.
	OutcomeAlreadyJPEG
)

func (o DirectoryOutcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeConverted:
		return "converted"
	case OutcomeAlreadyJPEG:
		return "already_jpeg"
	default:
		return "failed"
	}
}

// DirectoryResult is the result of ProcessImageInDirectory.
type DirectoryResult struct {
	Outcome DirectoryOutcome
	// Path is the single entry, empty when skipped.
	Path string
	// Output is the resulting JPEG: the converted file or Path itself.
	Output string
	// Entries is the number of directory entries seen.
	Entries int
}

// ProcessImageInDirectory makes sure the only file in dir is a JPEG.
//
// A directory with zero or several entries is left alone and reported as
// OutcomeSkipped with a nil error. A single ".png" file is converted with
// ConvertPNGToJPG; a ".jpg" or ".jpeg" file needs nothing. Any other
// extension, including other raster types such as ".bmp", fails with
// ErrNotImageFile. Extensions are matched case-sensitively and contents
// are not inspected.
func (t *Toolkit) ProcessImageInDirectory(dir string) (DirectoryResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return DirectoryResult{}, fmt.Errorf("read directory: %w", err)
	}

	if len(entries) != 1 {
		t.logger.Info("directory must contain exactly one file, skipping",
			slog.String("dir", dir),
			slog.Int("entries", len(entries)),
		)
		return DirectoryResult{Outcome: OutcomeSkipped, Entries: len(entries)}, nil
	}

	name := entries[0].Name()
	path := filepath.Join(dir, name)
	result := DirectoryResult{Path: path, Entries: 1}

	switch {
	case strings.HasSuffix(name, ".png"):
		output, err := t.ConvertPNGToJPG(path)
		if err != nil {
			return result, err
		}
		result.Outcome = OutcomeConverted
		result.Output = output
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
		t.logger.Info("no conversion needed", slog.String("path", path))
		result.Outcome = OutcomeAlreadyJPEG
		result.Output = path
	default:
		return result, fmt.Errorf("%w: %s", ErrNotImageFile, path)
	}

	return result, nil
}

// GetImageFilename returns the name, without extension, of the first
// entry in dir whose extension is .jpg, .jpeg, .png, .bmp, .tiff or .gif
// (case-insensitive). Entries are visited in name order. It returns
// ErrNoImageFound when nothing matches.
func (t *Toolkit) GetImageFilename(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		// ".png" alone is a hidden file without extension.
		if stem == "" {
			continue
		}
		if imageExtensions[strings.ToLower(ext)] {
			return stem, nil
		}
	}

	return "", fmt.Errorf("%w in %s", ErrNoImageFound, dir)
}
