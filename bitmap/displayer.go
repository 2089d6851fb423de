package bitmap

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
)

// PixelSink is the write side of a canvas.
type PixelSink interface {
	Set(x, y int, on bool) error
	Size() (width, height int)
}

// Displayer exposes a PixelSink as a drivers.Displayer so tinyfont can draw
// into it. SetPixel cannot fail, so the first write error is kept and
// reported by Err; writes after a failure are dropped.
type Displayer struct {
	sink PixelSink
	err  error
}

var _ drivers.Displayer = (*Displayer)(nil)

// NewDisplayer wraps sink.
func NewDisplayer(sink PixelSink) *Displayer {
	return &Displayer{sink: sink}
}

// Size reports the sink size clamped to the int16 coordinate space.
func (d *Displayer) Size() (x, y int16) {
	w, h := d.sink.Size()
	return clamp16(w), clamp16(h)
}

// SetPixel turns a pixel on for any visible colour and off for transparent ones.
func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if d.err != nil {
		return
	}
	d.err = d.sink.Set(int(x), int(y), c.A != 0)
}

// Display is a no-op; the canvas has nothing to flush.
func (d *Displayer) Display() error { return d.err }

// Err returns the first write error.
func (d *Displayer) Err() error { return d.err }

func clamp16(v int) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(v)
}
