// Package layout 按顺序把绘制操作合成到单色标签画布上。
//
// Compositor 维护唯一的状态：水平光标。文本操作交给 glyph 排版引擎并按最宽行前移，
// Pad 只前移并撑开画布；没有渲染实现的操作返回 ErrUnsupportedOperation。
package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/ptlabel/bitmap"
	"github.com/ByLCY/ptlabel/config"
	"github.com/ByLCY/ptlabel/fonts"
	"github.com/ByLCY/ptlabel/glyph"
)

// Placement 记录一个已应用操作的位置。
type Placement struct {
	Index   int  `json:"index"`
	Kind    Kind `json:"kind"`
	X       int  `json:"x"`
	Advance int  `json:"advance"`
}

// Label 是一次渲染任务的结果。出错时仍然返回，Complete 为 false，
// Canvas 停留在最后一个成功操作之后的状态。
type Label struct {
	Name       string
	Canvas     *bitmap.Framebuffer
	Cursor     int
	Placements []Placement
	Complete   bool
}

// Applied 返回成功应用的操作数。
func (l *Label) Applied() int { return len(l.Placements) }

// Compositor 负责单个标签的合成，不可并发使用。
type Compositor struct {
	cfg   config.Config
	fonts *fonts.Registry
	faces map[faceKey]glyph.Face
}

type faceKey struct {
	name string
	size float64
}

// New 创建合成器；reg 为 nil 时使用 fonts.Default()。
func New(cfg config.Config, reg *fonts.Registry) (*Compositor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = fonts.Default()
	}
	return &Compositor{cfg: cfg, fonts: reg, faces: map[faceKey]glyph.Face{}}, nil
}

// Render 依次应用 ops。任一操作失败即停止，返回未完成的 Label 与错误。
func (c *Compositor) Render(ops []Op) (*Label, error) {
	fb, err := bitmap.New(c.cfg.Y, c.cfg.MinX)
	if err != nil {
		return nil, err
	}
	label := &Label{Canvas: fb, Placements: make([]Placement, 0, len(ops))}
	log := Logger()

	for i, op := range ops {
		if op == nil {
			return label, fmt.Errorf("layout: 操作 #%d 为空", i)
		}
		adv, err := c.apply(label, i, op)
		if err != nil {
			w, h := fb.Size()
			log.Warn("label render stopped", "index", i, "kind", op.Kind().String(), "width", w, "height", h, "error", err)
			return label, fmt.Errorf("layout: 操作 #%d (%s) 失败: %w", i, op.Kind(), err)
		}
		label.Placements = append(label.Placements, Placement{Index: i, Kind: op.Kind(), X: label.Cursor, Advance: adv})
		log.Debug("applied op", "index", i, "kind", op.Kind().String(), "x", label.Cursor, "advance", adv)
		label.Cursor += adv
	}
	label.Complete = true
	return label, nil
}

// Render 是 New + Render 的便捷写法。
func Render(cfg config.Config, reg *fonts.Registry, ops []Op) (*Label, error) {
	c, err := New(cfg, reg)
	if err != nil {
		return nil, err
	}
	return c.Render(ops)
}

func (c *Compositor) apply(label *Label, index int, op Op) (int, error) {
	if !Supported(op.Kind()) {
		return 0, &UnsupportedOperationError{Index: index, Kind: op.Kind()}
	}
	switch op := op.(type) {
	case Text:
		return c.text(label, op)
	case Pad:
		if room := c.cfg.MaxX - label.Cursor; room < 0 || op.Columns > uint(room) {
			return 0, &WidthExceededError{Width: saturatingAdd(label.Cursor, op.Columns), Max: c.cfg.MaxX}
		}
		n := int(op.Columns)
		return n, c.extend(label.Canvas, label.Cursor+n)
	default:
		return 0, &UnsupportedOperationError{Index: index, Kind: op.Kind()}
	}
}

func (c *Compositor) text(label *Label, op Text) (int, error) {
	face, err := c.face(op.Opts)
	if err != nil {
		return 0, err
	}
	// 先按排版宽度检查 max_x，避免绘制一半再失败
	if w := glyph.Measure(face, op.Value).Width; label.Cursor+w > c.cfg.MaxX {
		return 0, &WidthExceededError{Width: label.Cursor + w, Max: c.cfg.MaxX}
	}
	dst := boundedCanvas{fb: label.Canvas, max: c.cfg.MaxX}
	adv, err := glyph.Draw(dst, label.Cursor, op.Value, face, glyph.Options{
		VerticalCentre: op.Opts.VerticalCentre,
		Clip:           c.cfg.Clip,
	})
	if err != nil {
		return 0, err
	}
	return adv, c.extend(label.Canvas, label.Cursor+adv)
}

// saturatingAdd 返回 cursor+n，溢出时截断为 math.MaxInt，仅用于错误信息。
func saturatingAdd(cursor int, n uint) int {
	if n > uint(math.MaxInt-cursor) {
		return math.MaxInt
	}
	return cursor + int(n)
}

// extend 撑开画布到 width 列，使后续内容从正确的偏移开始。
func (c *Compositor) extend(fb *bitmap.Framebuffer, width int) error {
	if width > c.cfg.MaxX {
		return &WidthExceededError{Width: width, Max: c.cfg.MaxX}
	}
	fb.Grow(width)
	return nil
}

func (c *Compositor) face(opts TextOptions) (glyph.Face, error) {
	key := faceKey{name: opts.Font, size: opts.PointSize}
	if key.name == "" {
		key.name = c.cfg.Font
	}
	if key.size <= 0 {
		key.size = c.cfg.PointSize
	}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	face, err := c.fonts.Face(key.name, key.size)
	if err != nil {
		return nil, err
	}
	c.faces[key] = face
	return face, nil
}

// boundedCanvas 拒绝 max_x 之外的写入。
type boundedCanvas struct {
	fb  *bitmap.Framebuffer
	max int
}

func (b boundedCanvas) Set(x, y int, on bool) error {
	if x >= b.max {
		return &WidthExceededError{Width: x + 1, Max: b.max}
	}
	return b.fb.Set(x, y, on)
}

func (b boundedCanvas) Size() (int, int) { return b.fb.Size() }
