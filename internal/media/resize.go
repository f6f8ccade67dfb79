package media

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/transform"
)

// ErrInvalidDimensions is returned when the provided dimensions are not positive.
var ErrInvalidDimensions = errors.New("invalid dimensions: width and height must be positive")

var filters = map[string]transform.ResampleFilter{
	"nearest":    transform.NearestNeighbor,
	"box":        transform.Box,
	"linear":     transform.Linear,
	"gaussian":   transform.Gaussian,
	"mitchell":   transform.MitchellNetravali,
	"catmullrom": transform.CatmullRom,
	"lanczos":    transform.Lanczos,
}

// FilterNames returns the accepted resize filter names, sorted.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseFilter returns the resampling filter registered under name.
func ParseFilter(name string) (transform.ResampleFilter, error) {
	f, ok := filters[name]
	if !ok {
		return transform.ResampleFilter{}, fmt.Errorf("unknown resize filter %q (want one of %v)", name, FilterNames())
	}
	return f, nil
}

// Resize scales img to exactly w x h. The aspect ratio is not preserved.
func Resize(img image.Image, w, h int, filter transform.ResampleFilter) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, w, h)
	}
	return transform.Resize(img, w, h, filter), nil
}
