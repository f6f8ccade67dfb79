package media

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrDimensionMismatch is matched by DimensionMismatchError.
var ErrDimensionMismatch = errors.New("image dimensions do not match")

// DimensionMismatchError reports two images that cannot be joined side by
// side because their heights differ.
type DimensionMismatchError struct {
	LeftHeight  int
	RightHeight int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%v: left height %d, right height %d", ErrDimensionMismatch, e.LeftHeight, e.RightHeight)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// ConcatHorizontal places left and right next to each other. Both must
// have the same height; the result is (wl+wr) x h.
func ConcatHorizontal(left, right image.Image) (*image.RGBA, error) {
	lb, rb := left.Bounds(), right.Bounds()
	if lb.Dy() != rb.Dy() {
		return nil, &DimensionMismatchError{LeftHeight: lb.Dy(), RightHeight: rb.Dy()}
	}

	dst := image.NewRGBA(image.Rect(0, 0, lb.Dx()+rb.Dx(), lb.Dy()))
	draw.Draw(dst, image.Rect(0, 0, lb.Dx(), lb.Dy()), left, lb.Min, draw.Src)
	draw.Draw(dst, image.Rect(lb.Dx(), 0, dst.Bounds().Dx(), lb.Dy()), right, rb.Min, draw.Src)
	return dst, nil
}
