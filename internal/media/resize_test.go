package media

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	for _, name := range FilterNames() {
		f, err := ParseFilter(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, f.Name, name)
	}

	_, err := ParseFilter("bicubic")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "linear")
}

func TestFilterNames(t *testing.T) {
	assert.Equal(t, []string{"box", "catmullrom", "gaussian", "lanczos", "linear", "mitchell", "nearest"}, FilterNames())
}

func TestResize(t *testing.T) {
	src := solidImage(64, 48, color.RGBA{G: 200, A: 255})
	linear, err := ParseFilter("linear")
	require.NoError(t, err)

	t.Run("ignores aspect ratio", func(t *testing.T) {
		out, err := Resize(src, 320, 480, linear)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 320, 480), out.Bounds())

		c := out.RGBAAt(160, 240)
		assert.InDelta(t, 200, int(c.G), 2)
	})

	t.Run("downscale", func(t *testing.T) {
		out, err := Resize(src, 8, 3, linear)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 8, 3), out.Bounds())
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		for _, d := range [][2]int{{0, 10}, {10, 0}, {-1, 10}, {10, -1}} {
			_, err := Resize(src, d[0], d[1], linear)
			assert.ErrorIs(t, err, ErrInvalidDimensions, "w=%d h=%d", d[0], d[1])
		}
	})
}
