package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidImage builds a w x h image filled with c.
func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFormatFromExt(t *testing.T) {
	tests := []struct {
		ext  string
		want Format
	}{
		{".png", FormatPNG},
		{"PNG", FormatPNG},
		{".jpg", FormatJPEG},
		{".JPEG", FormatJPEG},
		{".gif", FormatGIF},
		{".tif", FormatTIFF},
		{".tiff", FormatTIFF},
		{".bmp", FormatBMP},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, err := FormatFromExt(tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, ext := range []string{"", ".webp", ".txt", ".mp4"} {
		_, err := FormatFromExt(ext)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, "ext %q", ext)
	}
}

func TestCodec_SaveOpen(t *testing.T) {
	dir := t.TempDir()
	codec := NewCodec(90)
	src := solidImage(40, 30, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	for _, name := range []string{"out.png", "out.jpg", "out.gif", "out.tiff", "out.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, codec.Save(src, path))

			img, format, err := codec.Open(path)
			require.NoError(t, err)

			want, _ := FormatFromExt(filepath.Ext(name))
			assert.Equal(t, want, format)
			assert.Equal(t, 40, img.Bounds().Dx())
			assert.Equal(t, 30, img.Bounds().Dy())
		})
	}
}

func TestCodec_SaveUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	err := NewCodec(0).Save(solidImage(2, 2, color.White), path)

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created")
}

func TestCodec_OpenFailures(t *testing.T) {
	dir := t.TempDir()
	codec := NewCodec(0)

	_, _, err := codec.Open(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0600))
	_, _, err = codec.Open(garbage)
	assert.Error(t, err)
}

func TestNewCodec_Quality(t *testing.T) {
	assert.Equal(t, 75, NewCodec(0).JPEGQuality())
	assert.Equal(t, 75, NewCodec(101).JPEGQuality())
	assert.Equal(t, 95, NewCodec(95).JPEGQuality())
}

func TestCodec_WriteJPEGQuality(t *testing.T) {
	// A noisy image makes the size difference between qualities obvious.
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7919 % 251)
	}

	var low, high bytes.Buffer
	require.NoError(t, NewCodec(10).Write(&low, img, FormatJPEG))
	require.NoError(t, NewCodec(100).Write(&high, img, FormatJPEG))
	assert.Less(t, low.Len(), high.Len())

	err := NewCodec(0).Write(&low, img, FormatUnknown)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestSniffFormat(t *testing.T) {
	dir := t.TempDir()
	codec := NewCodec(0)

	// A JPEG stored under a .png name is still a JPEG.
	disguised := filepath.Join(dir, "disguised.jpg")
	require.NoError(t, codec.Save(solidImage(4, 4, color.White), disguised))
	renamed := filepath.Join(dir, "disguised.png")
	require.NoError(t, os.Rename(disguised, renamed))

	f, err := SniffFormat(renamed)
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, f)

	realPNG := filepath.Join(dir, "real.png")
	require.NoError(t, codec.Save(solidImage(4, 4, color.White), realPNG))
	f, err = SniffFormat(realPNG)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("hello"), 0600))
	f, err = SniffFormat(text)
	require.NoError(t, err)
	assert.Equal(t, FormatUnknown, f)

	_, err = SniffFormat(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestFlatten(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 14, 12))
	img.Set(10, 10, color.NRGBA{R: 255, A: 255}) // opaque red
	img.Set(11, 10, color.NRGBA{G: 255, A: 0})   // fully transparent
	img.Set(12, 10, color.NRGBA{B: 255, A: 128}) // half blue

	out := Flatten(img, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	assert.Equal(t, image.Rect(0, 0, 4, 2), out.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(1, 0))

	half := out.RGBAAt(2, 0)
	assert.Equal(t, uint8(255), half.A)
	assert.Equal(t, uint8(255), half.B)
	assert.InDelta(t, 127, int(half.R), 2)
	assert.InDelta(t, 127, int(half.G), 2)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#000000", color.RGBA{A: 255}},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#12ab34", color.RGBA{R: 0x12, G: 0xab, B: 0x34, A: 255}},
		{"#12ab3400", color.RGBA{R: 0x12, G: 0xab, B: 0x34, A: 255}},
		{"f00f", color.RGBA{R: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "#12", "#zzzzzz", "black"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
