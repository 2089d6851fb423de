package layout

// 本文件定义标签的绘制操作。Op 是封闭的和类型：只有本包内的类型可以实现它。

// Kind 标识操作种类。
type Kind int

const (
	KindText Kind = iota
	KindPad
	KindBarcode
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPad:
		return "pad"
	case KindBarcode:
		return "barcode"
	default:
		return "unknown"
	}
}

// MarshalText 让 Kind 在调试 JSON 中以名称输出。
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Op 是一个绘制操作。
type Op interface {
	Kind() Kind
	isOp()
}

// TextOptions 控制文本的字体与垂直位置。
type TextOptions struct {
	Font           string  // 空值时使用配置中的默认字体
	PointSize      float64 // 每 em 像素数；<=0 时使用配置中的默认值，点阵字体忽略
	VerticalCentre bool
}

// Text 绘制一段文本，\n 分行。
type Text struct {
	Value string
	Opts  TextOptions
}

// Pad 在不绘制的情况下前移光标。
type Pad struct {
	Columns uint
}

// Barcode 是条码/二维码操作，目前没有渲染实现。
type Barcode struct {
	Symbology string
	Value     string
}

func (Text) Kind() Kind    { return KindText }
func (Pad) Kind() Kind     { return KindPad }
func (Barcode) Kind() Kind { return KindBarcode }

func (Text) isOp()    {}
func (Pad) isOp()     {}
func (Barcode) isOp() {}

// Supported 报告该种类的操作是否有渲染实现。
func Supported(k Kind) bool {
	switch k {
	case KindText, KindPad:
		return true
	default:
		return false
	}
}

// Capabilities 返回所有可渲染的操作种类。
func Capabilities() []Kind {
	var out []Kind
	for _, k := range []Kind{KindText, KindPad, KindBarcode} {
		if Supported(k) {
			out = append(out, k)
		}
	}
	return out
}
