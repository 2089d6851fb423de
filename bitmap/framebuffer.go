// Package bitmap holds the monochrome label canvas.
//
// Pixels are stored column-major: each column is a packed bit vector of
// height bits, bit index = y, least significant byte = y 0. Printers and
// file writers want the opposite orientation, so ExportRowMajor transposes
// into row-major bytes where the least significant bit is the smallest x.
package bitmap

import (
	"errors"
	"fmt"
)

const unitBits = 8

var (
	// ErrOutOfBounds is returned for pixel coordinates outside the canvas.
	ErrOutOfBounds = errors.New("bitmap: coordinate out of bounds")

	// ErrZeroHeight is returned when constructing a canvas without rows.
	ErrZeroHeight = errors.New("bitmap: height must be positive")
)

// OutOfBoundsError reports the offending coordinate together with the canvas size.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("bitmap: pixel (%d,%d) outside %dx%d canvas", e.X, e.Y, e.Width, e.Height)
}

// Is lets errors.Is match ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// Framebuffer is a binary pixel grid with a fixed height and a width that
// only grows. It is not safe for concurrent use.
type Framebuffer struct {
	height int
	stride int // bytes per column
	cols   []byte
}

// New returns a zero-filled canvas of the given dimensions.
func New(height, width int) (*Framebuffer, error) {
	if height <= 0 {
		return nil, ErrZeroHeight
	}
	if width < 0 {
		width = 0
	}
	stride := (height + unitBits - 1) / unitBits
	return &Framebuffer{
		height: height,
		stride: stride,
		cols:   make([]byte, stride*width),
	}, nil
}

// Size returns the current width and the fixed height.
func (f *Framebuffer) Size() (width, height int) {
	return f.width(), f.height
}

func (f *Framebuffer) width() int { return len(f.cols) / f.stride }

// Grow appends zeroed columns until the canvas is at least width columns wide.
func (f *Framebuffer) Grow(width int) {
	if n := width - f.width(); n > 0 {
		f.cols = append(f.cols, make([]byte, n*f.stride)...)
	}
}

// Set writes a pixel. Columns up to and including x are appended when x is
// beyond the current width; rows never grow.
func (f *Framebuffer) Set(x, y int, on bool) error {
	if x < 0 || y < 0 || y >= f.height {
		return &OutOfBoundsError{X: x, Y: y, Width: f.width(), Height: f.height}
	}
	f.Grow(x + 1)
	idx := x*f.stride + y/unitBits
	mask := byte(1) << (y % unitBits)
	if on {
		f.cols[idx] |= mask
	} else {
		f.cols[idx] &^= mask
	}
	return nil
}

// Get reads a pixel.
func (f *Framebuffer) Get(x, y int) (bool, error) {
	w := f.width()
	if x < 0 || y < 0 || x >= w || y >= f.height {
		return false, &OutOfBoundsError{X: x, Y: y, Width: w, Height: f.height}
	}
	return f.bit(x, y), nil
}

func (f *Framebuffer) bit(x, y int) bool {
	return f.cols[x*f.stride+y/unitBits]&(1<<(y%unitBits)) != 0
}

// Column returns a copy of the packed bits of column x, or nil when x is
// outside the canvas.
func (f *Framebuffer) Column(x int) []byte {
	if x < 0 || x >= f.width() {
		return nil
	}
	out := make([]byte, f.stride)
	copy(out, f.cols[x*f.stride:(x+1)*f.stride])
	return out
}

// RowStride is the number of bytes per row in the row-major export.
func (f *Framebuffer) RowStride() int {
	return (f.width() + unitBits - 1) / unitBits
}

// ExportRowMajor transposes the canvas into row-major packed bytes:
// ceil(width/8) bytes per row, bit index = x mod 8.
func (f *Framebuffer) ExportRowMajor() []byte {
	w := f.width()
	rowStride := f.RowStride()
	out := make([]byte, rowStride*f.height)
	for x := 0; x < w; x++ {
		col := f.cols[x*f.stride : (x+1)*f.stride]
		for y := 0; y < f.height; y++ {
			if col[y/unitBits]&(1<<(y%unitBits)) == 0 {
				continue
			}
			out[y*rowStride+x/unitBits] |= 1 << (x % unitBits)
		}
	}
	return out
}

// FromRowMajor rebuilds a canvas from ExportRowMajor output.
func FromRowMajor(data []byte, width, height int) (*Framebuffer, error) {
	f, err := New(height, width)
	if err != nil {
		return nil, err
	}
	rowStride := f.RowStride()
	if len(data) != rowStride*height {
		return nil, fmt.Errorf("bitmap: row-major data has %d bytes, want %d for %dx%d", len(data), rowStride*height, width, height)
	}
	for y := 0; y < height; y++ {
		row := data[y*rowStride : (y+1)*rowStride]
		for x := 0; x < width; x++ {
			if row[x/unitBits]&(1<<(x%unitBits)) != 0 {
				f.cols[x*f.stride+y/unitBits] |= 1 << (y % unitBits)
			}
		}
	}
	return f, nil
}
