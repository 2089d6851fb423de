package glyph

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/ptlabel/bitmap"
)

// coverageThreshold is half of the 16-bit alpha range.
const coverageThreshold = 0xffff / 2

type outlineFace struct {
	face    font.Face
	metrics Metrics
}

// NewOutline adapts a golang.org/x/image font.Face. Any face works, scalable
// (opentype) or fixed (basicfont); line gap is whatever the recommended line
// height leaves after ascent and descent.
func NewOutline(face font.Face) Face {
	fm := face.Metrics()
	m := Metrics{
		Ascent:  fixedToFloat(fm.Ascent),
		Descent: fixedToFloat(fm.Descent),
	}
	if gap := fixedToFloat(fm.Height) - m.Ascent - m.Descent; gap > 0 {
		m.LineGap = gap
	}
	return &outlineFace{face: face, metrics: m}
}

func (o *outlineFace) Metrics() Metrics { return o.metrics }

func (o *outlineFace) LineWidth(line string) int {
	width := 0
	for _, r := range line {
		adv, _ := o.face.GlyphAdvance(r)
		width += adv.Ceil()
	}
	return width
}

func (o *outlineFace) DrawLine(dst bitmap.PixelSink, x, baseline int, line string) error {
	dot := fixed.P(0, baseline)
	prev := rune(-1)
	for _, r := range line {
		if prev >= 0 {
			dot.X += o.face.Kern(prev, r)
		}
		dr, mask, mp, adv, ok := o.face.Glyph(dot, r)
		if ok {
			if err := threshold(dst, x, dr, mask, mp); err != nil {
				return err
			}
		}
		dot.X += adv
		prev = r
	}
	return nil
}

// threshold writes every pixel of the glyph rectangle dr whose mask coverage
// exceeds one half. The mask is only valid until the next Glyph call.
func threshold(dst bitmap.PixelSink, x int, dr image.Rectangle, mask image.Image, mp image.Point) error {
	alpha, fast := mask.(*image.Alpha)
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		my := mp.Y + py - dr.Min.Y
		for px := dr.Min.X; px < dr.Max.X; px++ {
			mx := mp.X + px - dr.Min.X
			var a uint32
			if fast {
				a = uint32(alpha.AlphaAt(mx, my).A) * 0x101
			} else {
				_, _, _, a = mask.At(mx, my).RGBA()
			}
			if a <= coverageThreshold {
				continue
			}
			if err := dst.Set(x+px, py, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
