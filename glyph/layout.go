// Package glyph lays out and rasterizes multi-line text onto a binary canvas.
//
// The engine does not own the canvas. It measures a block of lines with the
// face's vertical metrics, places it at the top of the canvas or centred on
// it, and writes every glyph pixel whose coverage passes the threshold.
package glyph

import (
	"math"
	"strings"

	"github.com/ByLCY/ptlabel/bitmap"
)

// Metrics are vertical font metrics in pixels. Descent is the distance below
// the baseline and is positive.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Face is a font at a fixed pixel size.
type Face interface {
	Metrics() Metrics
	// LineWidth is the sum of the rounded-up advances of every rune in line.
	LineWidth(line string) int
	// DrawLine rasterizes line with its pen starting at x on the given
	// baseline, turning on every covered pixel in dst.
	DrawLine(dst bitmap.PixelSink, x, baseline int, line string) error
}

// Options controls placement of a text block.
type Options struct {
	VerticalCentre bool
	// Clip drops pixels that fall above or below the canvas. Without it
	// such a pixel fails the draw with bitmap.ErrOutOfBounds. Pixels left
	// of the canvas are always dropped.
	Clip bool
}

// Line is one laid out line.
type Line struct {
	Text  string
	Width int
}

// Block is the measured layout of a text value.
type Block struct {
	Lines      []Line
	Ascent     int // baseline offset from the top of each line
	LineHeight int
	Height     int // LineHeight*len(Lines) minus one trailing line gap
	Width      int // widest line
}

// Measure splits text on line breaks and computes per-line widths and the
// block height.
func Measure(face Face, text string) Block {
	m := face.Metrics()
	raw := strings.Split(text, "\n")

	b := Block{
		Lines:      make([]Line, 0, len(raw)),
		Ascent:     int(math.Ceil(m.Ascent)),
		LineHeight: int(math.Ceil(m.Ascent + m.Descent + m.LineGap)),
	}
	b.Height = b.LineHeight*len(raw) - int(math.Floor(m.LineGap))
	for _, s := range raw {
		s = strings.TrimSuffix(s, "\r")
		w := face.LineWidth(s)
		if w > b.Width {
			b.Width = w
		}
		b.Lines = append(b.Lines, Line{Text: s, Width: w})
	}
	return b
}

// StartY is the top row of a block of the given height. Both halves are
// truncated separately, so a block taller than the canvas gets a negative
// start.
func StartY(canvasHeight, blockHeight int, centre bool) int {
	if !centre {
		return 0
	}
	return canvasHeight/2 - blockHeight/2
}

// Draw renders text with its left edge at x and returns the horizontal
// advance, which is the widest line's width.
func Draw(dst bitmap.PixelSink, x int, text string, face Face, opts Options) (int, error) {
	b := Measure(face, text)
	_, height := dst.Size()
	top := StartY(height, b.Height, opts.VerticalCentre)

	target := &guard{dst: dst, clip: opts.Clip, height: height}
	for i, ln := range b.Lines {
		if ln.Text == "" {
			continue
		}
		baseline := top + i*b.LineHeight + b.Ascent
		if err := face.DrawLine(target, x, baseline, ln.Text); err != nil {
			return 0, err
		}
	}
	return b.Width, nil
}

// guard applies the overflow policy before writes reach the canvas.
type guard struct {
	dst    bitmap.PixelSink
	clip   bool
	height int
}

func (g *guard) Set(x, y int, on bool) error {
	// a negative left side bearing at x 0 lands here; never an error
	if x < 0 {
		return nil
	}
	if y < 0 || y >= g.height {
		if g.clip {
			return nil
		}
		w, h := g.dst.Size()
		return &bitmap.OutOfBoundsError{X: x, Y: y, Width: w, Height: h}
	}
	return g.dst.Set(x, y, on)
}

func (g *guard) Size() (int, int) { return g.dst.Size() }
