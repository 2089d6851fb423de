// Package raw exports labels as row-major monochrome bytes, the format the
// printer's transport consumes.
package raw

import (
	"github.com/ByLCY/ptlabel/layout"
	"github.com/ByLCY/ptlabel/renderer"
)

// Renderer writes height*ceil(width/8) bytes. Within a row, bit i (LSB
// first) of byte k is column 8*k+i.
type Renderer struct{}

var _ renderer.Renderer = Renderer{}

func (Renderer) Render(label *layout.Label) ([]byte, error) {
	if err := renderer.Check(label); err != nil {
		return nil, err
	}
	return label.Canvas.ExportRowMajor(), nil
}
