package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// 本文件定义脚本中的长度单位，以及按打印分辨率换算为点（列/像素）的规则。

// Unit 表示长度在脚本中书写时的单位。
type Unit int

const (
	UnitDot Unit = iota // 无单位或 px：直接是点数
	UnitMM              // 毫米
	UnitCM              // 厘米
	UnitIN              // 英寸
	UnitPT              // 磅（1/72 英寸）
)

// pt 与 mm 的换算常数。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length 保留数值与原始单位。
type Length struct {
	Value float64
	Unit  Unit
}

// Inches 将物理单位换算为英寸；UnitDot 没有物理尺寸，返回 false。
func (l Length) Inches() (float64, bool) {
	switch l.Unit {
	case UnitMM:
		return l.Value / 25.4, true
	case UnitCM:
		return l.Value / 2.54, true
	case UnitIN:
		return l.Value, true
	case UnitPT:
		return l.Value / 72, true
	default:
		return 0, false
	}
}

// Dots 按打印分辨率 dpi 换算为点数。
func (l Length) Dots(dpi float64) float64 {
	if in, ok := l.Inches(); ok {
		return in * dpi
	}
	return l.Value
}

// ParseLength 解析 "12"、"12px"、"2.5mm"、"10pt" 等写法。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("layout: 长度为空")
	}
	unit := UnitDot
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitDot}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("layout: 无法解析长度 %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
