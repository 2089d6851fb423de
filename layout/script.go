package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/ptlabel/binding"
	"github.com/ByLCY/ptlabel/config"
	"github.com/ByLCY/ptlabel/dsl"
	"github.com/ByLCY/ptlabel/fonts"
)

// Job 是由脚本构建出的渲染任务：标签名、生效配置与操作序列。
type Job struct {
	Name   string
	Config config.Config
	Ops    []Op
}

// Render 渲染任务并把标签名写入结果。
func (j *Job) Render(reg *fonts.Registry) (*Label, error) {
	label, err := Render(j.Config, reg, j.Ops)
	if label != nil {
		label.Name = j.Name
	}
	return label, err
}

// FromScript 将脚本转换为任务。label 上的属性覆盖 base 配置；data 非空时文本中的
// ${path} 占位符必须全部可解析。
func FromScript(s *dsl.Script, data any, base config.Config) (*Job, error) {
	if s == nil {
		return nil, fmt.Errorf("layout: 脚本为空")
	}
	cfg, err := applyLabelAttrs(base, s.Attrs)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	job := &Job{Name: string(s.Name), Config: cfg, Ops: make([]Op, 0, len(s.Statements))}
	for _, st := range s.Statements {
		op, err := convertStatement(st, data, cfg)
		if err != nil {
			return nil, fmt.Errorf("layout: %s: %s: %w", positionOf(st.Pos), st.Kind(), err)
		}
		job.Ops = append(job.Ops, op)
	}
	return job, nil
}

func applyLabelAttrs(cfg config.Config, attrs []*dsl.Attribute) (config.Config, error) {
	// dpi 先行，其余长度按它换算
	for _, a := range attrs {
		if a.Key != "dpi" {
			continue
		}
		v, err := strconv.ParseFloat(a.Value.Raw(), 64)
		if err != nil {
			return cfg, attrError(a, err)
		}
		cfg.PrintDPI = v
	}
	for _, a := range attrs {
		var err error
		switch a.Key {
		case "dpi":
		case "height", "y":
			cfg.Y, err = dots(a, cfg.PrintDPI)
		case "min", "min_x":
			cfg.MinX, err = dots(a, cfg.PrintDPI)
		case "max", "max_x":
			cfg.MaxX, err = dots(a, cfg.PrintDPI)
		case "font":
			cfg.Font, err = required(a)
		case "size":
			cfg.PointSize, err = pixelSize(a, cfg.PrintDPI)
		case "centre", "center", "vcentre":
			cfg.VerticalCentre, err = flag(a)
		case "clip":
			cfg.Clip, err = flag(a)
		default:
			err = fmt.Errorf("未知的 label 属性 %q", a.Key)
		}
		if err != nil {
			return cfg, attrError(a, err)
		}
	}
	return cfg, nil
}

func convertStatement(st *dsl.Statement, data any, cfg config.Config) (Op, error) {
	switch {
	case st.Text != nil:
		return convertText(st.Text, data, cfg)
	case st.Pad != nil:
		l, err := ParseLength(st.Pad.Amount)
		if err != nil {
			return nil, err
		}
		n := math.Round(l.Dots(cfg.PrintDPI))
		switch {
		case n < 0:
			return nil, fmt.Errorf("pad 不能为负数: %s", st.Pad.Amount)
		case n > float64(cfg.MaxX):
			return nil, &WidthExceededError{Width: saturatingFloat(n), Max: cfg.MaxX}
		}
		return Pad{Columns: uint(n)}, nil
	case st.Barcode != nil:
		value, err := bind(string(st.Barcode.Value), data)
		if err != nil {
			return nil, err
		}
		return Barcode{Symbology: st.Barcode.Symbology, Value: value}, nil
	default:
		return nil, fmt.Errorf("未知语句")
	}
}

func convertText(st *dsl.TextStatement, data any, cfg config.Config) (Op, error) {
	value, err := bind(string(st.Value), data)
	if err != nil {
		return nil, err
	}
	op := Text{
		Value: value,
		Opts: TextOptions{
			Font:           cfg.Font,
			PointSize:      cfg.PointSize,
			VerticalCentre: cfg.VerticalCentre,
		},
	}
	for _, a := range st.Attrs {
		switch a.Key {
		case "font":
			op.Opts.Font, err = required(a)
		case "size":
			op.Opts.PointSize, err = pixelSize(a, cfg.PrintDPI)
		case "centre", "center", "vcentre":
			op.Opts.VerticalCentre, err = flag(a)
		case "top":
			var top bool
			top, err = flag(a)
			op.Opts.VerticalCentre = !top
		default:
			err = fmt.Errorf("未知的 text 属性 %q", a.Key)
		}
		if err != nil {
			return nil, attrError(a, err)
		}
	}
	return op, nil
}

func saturatingFloat(v float64) int {
	if v >= math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

func bind(text string, data any) (string, error) {
	if data == nil {
		return text, nil
	}
	return binding.Resolve(text, data)
}

func attrError(a *dsl.Attribute, err error) error {
	return fmt.Errorf("%s: 属性 %s: %w", positionOf(a.Pos), a.Key, err)
}

func positionOf(pos lexer.Position) string {
	if pos.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

func required(a *dsl.Attribute) (string, error) {
	v := strings.TrimSpace(a.Value.Raw())
	if v == "" {
		return "", fmt.Errorf("缺少取值")
	}
	return v, nil
}

func flag(a *dsl.Attribute) (bool, error) {
	if a.Value == nil {
		return true, nil
	}
	return strconv.ParseBool(a.Value.Raw())
}

func dots(a *dsl.Attribute, dpi float64) (int, error) {
	raw, err := required(a)
	if err != nil {
		return 0, err
	}
	l, err := ParseLength(raw)
	if err != nil {
		return 0, err
	}
	return int(math.Round(l.Dots(dpi))), nil
}

// pixelSize 将字号换算为每 em 像素数：无单位即像素，pt/mm 等按 dpi 换算。
func pixelSize(a *dsl.Attribute, dpi float64) (float64, error) {
	raw, err := required(a)
	if err != nil {
		return 0, err
	}
	l, err := ParseLength(raw)
	if err != nil {
		return 0, err
	}
	px := l.Dots(dpi)
	if px <= 0 {
		return 0, fmt.Errorf("字号必须为正数")
	}
	return px, nil
}
