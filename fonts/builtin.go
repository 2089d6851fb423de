// Package fonts 提供标签渲染使用的字体注册表与内置字体。
package fonts

import (
	"sync"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// DefaultFont 是未指定字体时使用的矢量等宽字体。
const DefaultFont = "mono"

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
})

// Default 返回进程级注册表，内置字体已注册，解析仍是惰性的。
func Default() *Registry { return defaultRegistry() }

// RegisterBuiltins 注册内置字体：
//   - mono / regular / bold: Go 字体（矢量）
//   - 7x13: basicfont 固定点阵
//   - tomthumb / freemono / freemono-bold: tinyfont 点阵
func RegisterBuiltins(r *Registry) {
	r.Register("mono", Outline("mono", gomono.TTF))
	r.Register("regular", Outline("regular", goregular.TTF))
	r.Register("bold", Outline("bold", gobold.TTF))
	r.Register("7x13", Fixed(basicfont.Face7x13))
	r.Register("tomthumb", Bitmap(&tinyfont.TomThumb))
	r.Register("freemono", Bitmap(&freemono.Regular9pt7b))
	r.Register("freemono-bold", Bitmap(&freemono.Bold9pt7b))
}
