package glyph

import (
	"image/color"
	"math"

	"tinygo.org/x/tinyfont"

	"github.com/ByLCY/ptlabel/bitmap"
)

var ink = color.RGBA{A: 0xff}

type bitmapFace struct {
	font    tinyfont.Fonter
	metrics Metrics
}

// NewBitmap adapts a tinyfont bitmap font. tinyfont carries no font-wide
// ascent or descent, so they are taken from the glyph boxes of printable
// ASCII.
func NewBitmap(f tinyfont.Fonter) Face {
	ascent, descent := 0, 0
	for r := rune(0x21); r < 0x7f; r++ {
		info := f.GetGlyph(r).Info()
		if info.Height == 0 {
			continue
		}
		if a := -int(info.YOffset); a > ascent {
			ascent = a
		}
		if d := int(info.YOffset) + int(info.Height); d > descent {
			descent = d
		}
	}
	gap := int(f.GetYAdvance()) - ascent - descent
	if gap < 0 {
		gap = 0
	}
	return &bitmapFace{
		font: f,
		metrics: Metrics{
			Ascent:  float64(ascent),
			Descent: float64(descent),
			LineGap: float64(gap),
		},
	}
}

func (b *bitmapFace) Metrics() Metrics { return b.metrics }

func (b *bitmapFace) LineWidth(line string) int {
	_, outbox := tinyfont.LineWidth(b.font, line)
	return int(outbox)
}

func (b *bitmapFace) DrawLine(dst bitmap.PixelSink, x, baseline int, line string) error {
	// tinyfont works in int16; the pen must stay addressable up to the line end.
	if x < math.MinInt16 || x+b.LineWidth(line) > math.MaxInt16 ||
		baseline > math.MaxInt16 || baseline < math.MinInt16 {
		w, h := dst.Size()
		return &bitmap.OutOfBoundsError{X: x, Y: baseline, Width: w, Height: h}
	}
	d := bitmap.NewDisplayer(dst)
	tinyfont.WriteLine(d, b.font, int16(x), int16(baseline), line, ink)
	return d.Err()
}
