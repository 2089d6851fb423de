package canvasrenderer

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/ptlabel/layout"
	"github.com/ByLCY/ptlabel/renderer"
)

const mmPerInch = 25.4

// Renderer draws labels into a single-page PDF via github.com/tdewolff/canvas.
// The page has the label's physical size at DPI dots per inch.
type Renderer struct {
	DPI     float64
	Theme   renderer.Theme
	Creator string
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a PDF renderer at the given print resolution.
func NewRenderer(dpi float64) *Renderer {
	return &Renderer{DPI: dpi, Theme: renderer.Light, Creator: "ptlabel"}
}

// PageSize 返回页面尺寸（毫米）。
func (r *Renderer) PageSize(label *layout.Label) (width, height float64) {
	w, h := label.Canvas.Size()
	dpmm := r.dpmm()
	return float64(w) / dpmm, float64(h) / dpmm
}

func (r *Renderer) dpmm() float64 {
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 180
	}
	return dpi / mmPerInch
}

// Render renders the label into a PDF byte slice.
func (r *Renderer) Render(label *layout.Label) ([]byte, error) {
	if err := renderer.Check(label); err != nil {
		return nil, err
	}
	view := renderer.NewView(label.Canvas, r.Theme)
	if w, _ := view.Size(); w == 0 {
		return nil, renderer.ErrEmpty
	}

	width, height := r.PageSize(label)
	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	writer.SetInfo(label.Name, "", "", "", r.Creator)

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	// 图像左下角与页面原点重合，每个点对应 1/DPI 英寸
	ctx.DrawImage(0, 0, view.Gray(), canvas.DPMM(r.dpmm()))
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}
