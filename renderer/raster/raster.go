// Package raster exports labels as PNG images.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/ByLCY/ptlabel/layout"
	"github.com/ByLCY/ptlabel/renderer"
)

// Renderer encodes the label with the given theme, each dot enlarged to
// Scale x Scale pixels.
type Renderer struct {
	Theme renderer.Theme
	Scale int
}

var _ renderer.Renderer = (*Renderer)(nil)

// New returns a renderer for the named theme.
func New(theme string, scale int) (*Renderer, error) {
	t, err := renderer.ThemeByName(theme)
	if err != nil {
		return nil, err
	}
	return &Renderer{Theme: t, Scale: scale}, nil
}

func (r *Renderer) Render(label *layout.Label) ([]byte, error) {
	if err := renderer.Check(label); err != nil {
		return nil, err
	}
	img, err := r.Image(label)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Image returns the themed, scaled image without encoding it.
func (r *Renderer) Image(label *layout.Label) (*image.Gray, error) {
	view := renderer.NewView(label.Canvas, r.Theme)
	if w, _ := view.Size(); w == 0 {
		return nil, renderer.ErrEmpty
	}
	src := view.Gray()
	scale := r.Scale
	if scale <= 1 {
		return src, nil
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}
