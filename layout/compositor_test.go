package layout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/ByLCY/ptlabel/bitmap"
	"github.com/ByLCY/ptlabel/config"
	"github.com/ByLCY/ptlabel/fonts"
)

// testConfig 使用 7x13 点阵字体：ascent 11，descent 2，行高 13，每字 7 列。
func testConfig() config.Config {
	cfg := config.Default()
	cfg.MinX = 0
	cfg.MaxX = 200
	cfg.Y = 16
	cfg.Font = "7x13"
	cfg.PointSize = 13
	return cfg
}

func testRegistry() *fonts.Registry {
	reg := fonts.NewRegistry()
	reg.Register("7x13", fonts.Fixed(basicfont.Face7x13))
	return reg
}

func leftmost(t *testing.T, fb *bitmap.Framebuffer) int {
	t.Helper()
	w, h := fb.Size()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if on, _ := fb.Get(x, y); on {
				return x
			}
		}
	}
	return -1
}

func TestPadThenText(t *testing.T) {
	label, err := Render(testConfig(), testRegistry(), []Op{Pad{Columns: 5}, Text{Value: "A"}})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if !label.Complete {
		t.Fatalf("标签应为完成状态")
	}
	if x := leftmost(t, label.Canvas); x < 5 {
		t.Fatalf("最左侧像素 x=%d，应不小于 pad 宽度 5", x)
	}
	if w, _ := label.Canvas.Size(); w != 12 {
		t.Fatalf("画布宽度 = %d，期望 5+7=12", w)
	}
	if label.Cursor != 12 {
		t.Fatalf("光标 = %d，期望 12", label.Cursor)
	}
	want := []Placement{
		{Index: 0, Kind: KindPad, X: 0, Advance: 5},
		{Index: 1, Kind: KindText, X: 5, Advance: 7},
	}
	if len(label.Placements) != len(want) {
		t.Fatalf("placements = %+v", label.Placements)
	}
	for i, p := range want {
		if label.Placements[i] != p {
			t.Fatalf("placement %d = %+v，期望 %+v", i, label.Placements[i], p)
		}
	}
}

func TestPadAloneGrowsCanvas(t *testing.T) {
	label, err := Render(testConfig(), testRegistry(), []Op{Pad{Columns: 9}})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if w, _ := label.Canvas.Size(); w != 9 {
		t.Fatalf("画布宽度 = %d，期望 9", w)
	}
	if x := leftmost(t, label.Canvas); x != -1 {
		t.Fatalf("pad 不应绘制像素，x=%d", x)
	}
}

func TestMinWidthIsInitialWidth(t *testing.T) {
	cfg := testConfig()
	cfg.MinX = 32
	label, err := Render(cfg, testRegistry(), []Op{Text{Value: "A"}})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if w, _ := label.Canvas.Size(); w != 32 {
		t.Fatalf("宽度 = %d，期望 min_x 32", w)
	}
	if label.Cursor != 7 {
		t.Fatalf("光标 = %d，期望 7", label.Cursor)
	}

	label, err = Render(cfg, testRegistry(), []Op{Text{Value: "A"}, Pad{Columns: 30}})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if w, _ := label.Canvas.Size(); w != 37 {
		t.Fatalf("宽度 = %d，期望 37", w)
	}
}

func TestBarcodeIsUnsupported(t *testing.T) {
	ops := []Op{Text{Value: "A"}, Barcode{Symbology: "qr", Value: "x"}, Text{Value: "B"}}
	label, err := Render(testConfig(), testRegistry(), ops)
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("err = %v，期望 ErrUnsupportedOperation", err)
	}
	var ue *UnsupportedOperationError
	if !errors.As(err, &ue) || ue.Index != 1 || ue.Kind != KindBarcode {
		t.Fatalf("错误详情不符: %#v", ue)
	}
	if label == nil {
		t.Fatalf("出错时仍应返回部分结果")
	}
	if label.Complete {
		t.Fatalf("标签不应为完成状态")
	}
	if label.Applied() != 1 {
		t.Fatalf("已应用操作数 = %d，期望 1", label.Applied())
	}
	if w, _ := label.Canvas.Size(); w != 7 {
		t.Fatalf("画布应保留第一个操作后的状态，宽度 = %d", w)
	}
	if x := leftmost(t, label.Canvas); x < 0 {
		t.Fatalf("第一个文本应已绘制")
	}
}

func TestWidthExceeded(t *testing.T) {
	cfg := testConfig()
	cfg.MaxX = 10

	cases := []struct {
		name string
		ops  []Op
	}{
		{"pad", []Op{Pad{Columns: 11}}},
		{"text", []Op{Text{Value: "AAA"}}},
		{"pad then text", []Op{Pad{Columns: 8}, Text{Value: "A"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label, err := Render(cfg, testRegistry(), tc.ops)
			if !errors.Is(err, ErrWidthExceeded) {
				t.Fatalf("err = %v，期望 ErrWidthExceeded", err)
			}
			if w, _ := label.Canvas.Size(); w > cfg.MaxX {
				t.Fatalf("宽度 %d 超过 max_x", w)
			}
		})
	}

	if _, err := Render(cfg, testRegistry(), []Op{Pad{Columns: 10}}); err != nil {
		t.Fatalf("恰好等于 max_x 应该成功: %v", err)
	}
}

func TestOverflowStrictAndClip(t *testing.T) {
	cfg := testConfig()
	cfg.Y = 8
	_, err := Render(cfg, testRegistry(), []Op{Text{Value: "A"}})
	if !errors.Is(err, bitmap.ErrOutOfBounds) {
		t.Fatalf("严格模式下 err = %v，期望 ErrOutOfBounds", err)
	}

	cfg.Clip = true
	label, err := Render(cfg, testRegistry(), []Op{Text{Value: "A"}})
	if err != nil {
		t.Fatalf("裁剪模式不应失败: %v", err)
	}
	if label.Cursor != 7 {
		t.Fatalf("裁剪后仍按字形宽度前移，光标 = %d", label.Cursor)
	}
}

func TestCursorIsMonotonic(t *testing.T) {
	ops := []Op{Text{Value: "AB"}, Pad{Columns: 0}, Text{Value: ""}, Pad{Columns: 3}, Text{Value: "x\nyyy"}}
	cfg := testConfig()
	cfg.Clip = true
	label, err := Render(cfg, testRegistry(), ops)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	prev := 0
	for _, p := range label.Placements {
		if p.X < prev {
			t.Fatalf("光标回退: %+v", label.Placements)
		}
		prev = p.X + p.Advance
	}
	if label.Cursor != 14+0+0+3+21 {
		t.Fatalf("光标 = %d", label.Cursor)
	}
}

func TestFontErrorsPropagate(t *testing.T) {
	_, err := Render(testConfig(), testRegistry(), []Op{Text{Value: "A", Opts: TextOptions{Font: "nope"}}})
	if !errors.Is(err, fonts.ErrUnknownFont) {
		t.Fatalf("err = %v，期望 ErrUnknownFont", err)
	}

	reg := testRegistry()
	reg.Register("broken", fonts.Outline("broken", []byte("not a font")))
	_, err = Render(testConfig(), reg, []Op{Text{Value: "A", Opts: TextOptions{Font: "broken"}}})
	if !errors.Is(err, fonts.ErrFontLoad) {
		t.Fatalf("err = %v，期望 ErrFontLoad", err)
	}
}

func TestNilOpAndInvalidConfig(t *testing.T) {
	if _, err := Render(testConfig(), testRegistry(), []Op{nil}); err == nil {
		t.Fatalf("空操作应返回错误")
	}
	cfg := testConfig()
	cfg.Y = 0
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("y=0 的配置应被拒绝")
	}
}

func TestDefaultRegistry(t *testing.T) {
	cfg := config.Default()
	label, err := Render(cfg, nil, []Op{Text{Value: "Hi"}})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if label.Cursor <= 0 {
		t.Fatalf("默认字体应产生正的前移量")
	}
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities()
	if len(caps) != 2 || caps[0] != KindText || caps[1] != KindPad {
		t.Fatalf("capabilities = %v", caps)
	}
	if Supported(KindBarcode) {
		t.Fatalf("条码不应被支持")
	}
}

func TestDebugJSON(t *testing.T) {
	label, err := Render(testConfig(), testRegistry(), []Op{Pad{Columns: 2}, Text{Value: "A"}})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	label.Name = "shelf"
	data, err := DebugJSON(label)
	if err != nil {
		t.Fatalf("DebugJSON: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"name": "shelf"`, `"kind": "pad"`, `"kind": "text"`, `"width": 9`, `"complete": true`} {
		if !strings.Contains(out, want) {
			t.Fatalf("调试输出缺少 %s:\n%s", want, out)
		}
	}
}

func TestPadNeverMovesCursorBack(t *testing.T) {
	cfg := testConfig()
	cases := []struct {
		name string
		pad  uint
	}{
		{"max uint", math.MaxUint64},
		{"max int", math.MaxInt},
		{"max int + 1", uint(math.MaxInt) + 1},
		{"one past max_x", uint(cfg.MaxX - 3 + 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ops := []Op{Pad{Columns: 3}, Pad{Columns: tc.pad}, Text{Value: "A"}}
			label, err := Render(cfg, testRegistry(), ops)
			if !errors.Is(err, ErrWidthExceeded) {
				t.Fatalf("err = %v，期望 ErrWidthExceeded", err)
			}
			var we *WidthExceededError
			if !errors.As(err, &we) || we.Width <= cfg.MaxX {
				t.Fatalf("错误宽度应超过上限: %#v", we)
			}
			if label.Cursor != 3 || label.Applied() != 1 || label.Complete {
				t.Fatalf("光标 = %d，已应用 = %d，complete = %v", label.Cursor, label.Applied(), label.Complete)
			}
			if w, _ := label.Canvas.Size(); w != 3 {
				t.Fatalf("画布宽度 = %d，期望 3", w)
			}
		})
	}

	label, err := Render(cfg, testRegistry(), []Op{Pad{Columns: 3}, Pad{Columns: uint(cfg.MaxX - 3)}})
	if err != nil {
		t.Fatalf("恰好填满 max_x 应该成功: %v", err)
	}
	if label.Cursor != cfg.MaxX {
		t.Fatalf("光标 = %d，期望 %d", label.Cursor, cfg.MaxX)
	}
}

func TestTextWiderThanMaxIsRejectedBeforeDrawing(t *testing.T) {
	cfg := testConfig()
	cfg.MaxX = 10
	label, err := Render(cfg, testRegistry(), []Op{Text{Value: "AAA"}})
	if !errors.Is(err, ErrWidthExceeded) {
		t.Fatalf("err = %v，期望 ErrWidthExceeded", err)
	}
	if x := leftmost(t, label.Canvas); x != -1 {
		t.Fatalf("超宽文本不应留下像素，x=%d", x)
	}
}

// 左侧支承为负的字形（如 j）在光标 0 处不应导致失败。
func TestNegativeBearingAtCursorZero(t *testing.T) {
	for _, name := range []string{"regular", "bold", "mono"} {
		cfg := config.Default()
		cfg.Font = name
		for _, text := range []string{"j", "jump"} {
			label, err := Render(cfg, nil, []Op{Text{Value: text}})
			if err != nil {
				t.Fatalf("%s %q: 渲染失败: %v", name, text, err)
			}
			if x := leftmost(t, label.Canvas); x < 0 {
				t.Fatalf("%s %q: 没有绘制像素", name, text)
			}
		}
	}
}
