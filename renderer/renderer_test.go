package renderer

import (
	"errors"
	"image/color"
	"testing"

	"github.com/ByLCY/ptlabel/bitmap"
	"github.com/ByLCY/ptlabel/layout"
)

func canvasWith(t *testing.T, w, h int, on ...[2]int) *bitmap.Framebuffer {
	t.Helper()
	fb, err := bitmap.New(h, w)
	if err != nil {
		t.Fatalf("bitmap.New: %v", err)
	}
	for _, p := range on {
		if err := fb.Set(p[0], p[1], true); err != nil {
			t.Fatalf("Set%v: %v", p, err)
		}
	}
	return fb
}

func TestViewPixels(t *testing.T) {
	fb := canvasWith(t, 10, 9, [2]int{0, 0}, [2]int{9, 8}, [2]int{3, 4})
	v := NewView(fb, Light)

	if w, h := v.Size(); w != 10 || h != 9 {
		t.Fatalf("size = %dx%d", w, h)
	}
	for _, p := range [][2]int{{0, 0}, {9, 8}, {3, 4}} {
		if !v.Pixel(p[0], p[1]) {
			t.Fatalf("pixel %v should be on", p)
		}
	}
	for _, p := range [][2]int{{1, 0}, {-1, 0}, {10, 0}, {0, 9}} {
		if v.Pixel(p[0], p[1]) {
			t.Fatalf("pixel %v should be off", p)
		}
	}

	count, total := 0, 0
	lastY := 0
	v.Each(func(x, y int, on bool) {
		if y < lastY {
			t.Fatalf("Each must walk rows in order")
		}
		lastY = y
		total++
		if on {
			count++
		}
	})
	if total != 90 || count != 3 {
		t.Fatalf("Each visited %d pixels (%d on), want 90 (3 on)", total, count)
	}
}

func TestViewThemes(t *testing.T) {
	fb := canvasWith(t, 2, 1, [2]int{0, 0})

	light := NewView(fb, Light)
	if light.At(0, 0) != (color.Gray{Y: 0}) || light.At(1, 0) != (color.Gray{Y: 0xff}) {
		t.Fatalf("light theme colours wrong")
	}
	dark := NewView(fb, Dark).Gray()
	if dark.GrayAt(0, 0).Y != 0xff || dark.GrayAt(1, 0).Y != 0 {
		t.Fatalf("dark theme colours wrong")
	}

	if _, err := ThemeByName("sepia"); err == nil {
		t.Fatalf("unknown theme should fail")
	}
	if th, err := ThemeByName(""); err != nil || th != Light {
		t.Fatalf("empty theme should be light")
	}
}

func TestCheck(t *testing.T) {
	fb := canvasWith(t, 1, 1)
	if err := Check(&layout.Label{Canvas: fb, Complete: true}); err != nil {
		t.Fatalf("complete label: %v", err)
	}
	if err := Check(&layout.Label{Canvas: fb}); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
	if err := Check(nil); err == nil {
		t.Fatalf("nil label should fail")
	}
}
