// Package imaging reduces cover art to terminal resolution and maps it to
// colored glyphs.
package imaging

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for pixel access outside the raster.
	ErrOutOfBounds = errors.New("pixel out of bounds")
	// ErrInvalidArgument is returned for impossible dimensions.
	ErrInvalidArgument = errors.New("invalid argument")
)

// RGB is one 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Raster is an owned RGB24 pixel buffer, row-major. len(pix) is always
// width*height*3.
type Raster struct {
	width  int
	height int
	pix    []byte
}

// NewRaster wraps pix as a width x height raster. pix is owned by the raster
// afterwards.
func NewRaster(width, height int, pix []byte) (*Raster, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidArgument, width, height)
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidArgument, len(pix), width, height)
	}
	return &Raster{width: width, height: height, pix: pix}, nil
}

// Blank returns a black raster of the given size.
func Blank(width, height int) *Raster {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Raster{width: width, height: height, pix: make([]byte, width*height*3)}
}

// Width returns the width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the height in pixels.
func (r *Raster) Height() int { return r.height }

// Empty reports whether the raster has no pixels, as after a failed decode.
func (r *Raster) Empty() bool { return r == nil || r.width == 0 || r.height == 0 }

// Bytes returns the underlying RGB24 buffer.
func (r *Raster) Bytes() []byte { return r.pix }

func (r *Raster) offset(x, y int) (int, error) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, r.width, r.height)
	}
	return (y*r.width + x) * 3, nil
}

// At returns the pixel at (x, y).
func (r *Raster) At(x, y int) (RGB, error) {
	off, err := r.offset(x, y)
	if err != nil {
		return RGB{}, err
	}
	return RGB{r.pix[off], r.pix[off+1], r.pix[off+2]}, nil
}

// Set writes the pixel at (x, y).
func (r *Raster) Set(x, y int, c RGB) error {
	off, err := r.offset(x, y)
	if err != nil {
		return err
	}
	r.pix[off], r.pix[off+1], r.pix[off+2] = c.R, c.G, c.B
	return nil
}

// at is the unchecked accessor used by the resamplers after they have
// clamped coordinates themselves.
func (r *Raster) at(x, y int) (uint8, uint8, uint8) {
	off := (y*r.width + x) * 3
	return r.pix[off], r.pix[off+1], r.pix[off+2]
}
