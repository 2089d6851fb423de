// Package renderer 定义标签导出接口以及只读的像素视图。
package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ByLCY/ptlabel/bitmap"
	"github.com/ByLCY/ptlabel/layout"
)

// Renderer 将渲染完成的标签输出为最终文件，例如原始位图、PNG 或 PDF。
type Renderer interface {
	Render(label *layout.Label) ([]byte, error)
}

var (
	// ErrIncomplete 表示标签在某个操作处失败，只有部分内容。
	ErrIncomplete = errors.New("renderer: label is incomplete")
	// ErrEmpty 表示画布宽度为 0，无法生成图像。
	ErrEmpty = errors.New("renderer: label canvas is empty")
)

// Check 确认标签可以导出。
func Check(label *layout.Label) error {
	switch {
	case label == nil || label.Canvas == nil:
		return fmt.Errorf("渲染结果为空")
	case !label.Complete:
		return fmt.Errorf("%w: 已应用 %d 个操作", ErrIncomplete, label.Applied())
	}
	return nil
}

// Theme 是预览与图像导出的配色。
type Theme struct {
	Ink   color.Gray
	Paper color.Gray
}

var (
	Light = Theme{Ink: color.Gray{Y: 0x00}, Paper: color.Gray{Y: 0xff}}
	Dark  = Theme{Ink: color.Gray{Y: 0xff}, Paper: color.Gray{Y: 0x00}}
)

// ThemeByName 返回 light 或 dark 配色。
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Theme{}, fmt.Errorf("未知的配色 %q", name)
	}
}

// View 是帧缓冲的只读像素视图，同时实现 image.Image。
type View struct {
	fb     *bitmap.Framebuffer
	theme  Theme
	width  int
	height int
}

var _ image.Image = (*View)(nil)

// NewView 创建视图；视图尺寸固定为创建时的画布尺寸。
func NewView(fb *bitmap.Framebuffer, theme Theme) *View {
	w, h := fb.Size()
	return &View{fb: fb, theme: theme, width: w, height: h}
}

// Size 返回视图的宽与高。
func (v *View) Size() (int, int) { return v.width, v.height }

// Pixel 报告 (x, y) 是否着墨；矩形外返回 false。
func (v *View) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return false
	}
	on, err := v.fb.Get(x, y)
	return err == nil && on
}

// Each 按行优先顺序遍历整个矩形内的每个像素。
func (v *View) Each(fn func(x, y int, on bool)) {
	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			fn(x, y, v.Pixel(x, y))
		}
	}
}

func (v *View) ColorModel() color.Model { return color.GrayModel }

func (v *View) Bounds() image.Rectangle { return image.Rect(0, 0, v.width, v.height) }

func (v *View) At(x, y int) color.Color {
	if v.Pixel(x, y) {
		return v.theme.Ink
	}
	return v.theme.Paper
}

// Gray 将视图复制为 *image.Gray。
func (v *View) Gray() *image.Gray {
	img := image.NewGray(v.Bounds())
	v.Each(func(x, y int, on bool) {
		if on {
			img.SetGray(x, y, v.theme.Ink)
		} else {
			img.SetGray(x, y, v.theme.Paper)
		}
	})
	return img
}
