package media

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned when a file extension or encoded
// stream does not map to a supported raster format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is a raster encoding.
type Format int

// Supported raster formats.
const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatTIFF
	FormatBMP
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatTIFF:
		return "tiff"
	case FormatBMP:
		return "bmp"
	default:
		return "unknown"
	}
}

// FormatFromExt maps a file extension, with or without the leading dot,
// to a Format. Matching is case-insensitive.
func FormatFromExt(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "bmp":
		return FormatBMP, nil
	}
	return FormatUnknown, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

// SniffFormat identifies a file's raster format from its leading bytes,
// ignoring the extension. It returns FormatUnknown for anything else.
func SniffFormat(path string) (Format, error) {
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("sniff %s: %w", path, err)
	}
	if kind == filetype.Unknown {
		return FormatUnknown, nil
	}
	f, err := FormatFromExt(kind.Extension)
	if err != nil {
		return FormatUnknown, nil
	}
	return f, nil
}

// Codec decodes and encodes raster files. Encoders are picked from the
// destination file extension.
type Codec struct {
	jpegQuality int
}

// NewCodec creates a Codec. A quality outside 1..100 falls back to
// jpeg.DefaultQuality.
func NewCodec(jpegQuality int) *Codec {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = jpeg.DefaultQuality
	}
	return &Codec{jpegQuality: jpegQuality}
}

// JPEGQuality returns the quality used for JPEG output.
func (c *Codec) JPEGQuality() int {
	return c.jpegQuality
}

// Open decodes the image at path. The format is detected from content.
func (c *Codec) Open(path string) (image.Image, Format, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, name, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("decode image %s: %w", path, err)
	}
	format, err := FormatFromExt(name)
	if err != nil {
		return nil, FormatUnknown, err
	}
	return img, format, nil
}

// Save encodes img to path using the format implied by the extension.
// A partially written file is removed on failure.
func (c *Codec) Save(img image.Image, path string) error {
	format, err := FormatFromExt(filepath.Ext(path))
	if err != nil {
		return err
	}

	f, err := os.Create(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	bw := bufio.NewWriter(f)
	err = c.Write(bw, img, format)
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Write encodes img to w in the given format.
func (c *Codec) Write(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: c.jpegQuality})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatTIFF:
		return tiff.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Flatten composites img over an opaque background, dropping alpha.
// The result always has its origin at (0, 0).
func Flatten(img image.Image, background color.Color) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
