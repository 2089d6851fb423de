package fonts

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"tinygo.org/x/tinyfont"

	"github.com/ByLCY/ptlabel/glyph"
)

// FilePrefix 前缀的字体名按文件路径按需加载，例如 "file:fonts/Terminess-Mono.ttf"。
const FilePrefix = "file:"

var (
	// ErrFontLoad 表示字体数据缺失或无法解析。
	ErrFontLoad = errors.New("fonts: 字体加载失败")
	// ErrUnknownFont 表示注册表中没有该名称的字体。
	ErrUnknownFont = errors.New("fonts: 未知字体")
)

// LoadError 记录加载失败的字体名称与底层错误。
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("fonts: 加载字体 %s 失败: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is 使 errors.Is(err, ErrFontLoad) 成立。
func (e *LoadError) Is(target error) bool { return target == ErrFontLoad }

// Kind 区分矢量字体与点阵字体。
type Kind int

const (
	KindOutline Kind = iota
	KindBitmap
)

func (k Kind) String() string {
	switch k {
	case KindOutline:
		return "outline"
	case KindBitmap:
		return "bitmap"
	default:
		return "unknown"
	}
}

// Source 描述一个字体来源。解析只在第一次使用时发生一次，之后只读共享。
type Source interface {
	Kind() Kind
	// Face 返回指定像素字号的新字面。字面本身不可并发使用，每个渲染任务各自持有。
	Face(size float64) (glyph.Face, error)
}

type outlineSource struct {
	name string
	load func() ([]byte, error)

	once sync.Once
	font *opentype.Font
	err  error
}

// Outline 返回基于内存 TTF/OTF 数据的矢量字体来源。
func Outline(name string, data []byte) Source {
	return &outlineSource{name: name, load: func() ([]byte, error) { return data, nil }}
}

// OutlineFile 返回基于文件的矢量字体来源，文件在第一次使用时读取。
func OutlineFile(path string) Source {
	return &outlineSource{name: path, load: func() ([]byte, error) { return os.ReadFile(path) }}
}

func (s *outlineSource) Kind() Kind { return KindOutline }

func (s *outlineSource) parse() (*opentype.Font, error) {
	s.once.Do(func() {
		data, err := s.load()
		if err != nil {
			s.err = &LoadError{Name: s.name, Err: err}
			return
		}
		if len(data) == 0 {
			s.err = &LoadError{Name: s.name, Err: errors.New("字体数据为空")}
			return
		}
		f, err := opentype.Parse(data)
		if err != nil {
			s.err = &LoadError{Name: s.name, Err: err}
			return
		}
		s.font = f
	})
	return s.font, s.err
}

func (s *outlineSource) Face(size float64) (glyph.Face, error) {
	f, err := s.parse()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("fonts: 字号必须为正数: %g", size)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // 72 DPI 下字号即每 em 像素数
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &LoadError{Name: s.name, Err: err}
	}
	return glyph.NewOutline(face), nil
}

type fixedSource struct {
	face font.Face
}

// Fixed 包装固定尺寸的 font.Face（例如 basicfont），忽略字号。
func Fixed(face font.Face) Source { return fixedSource{face: face} }

func (s fixedSource) Kind() Kind { return KindBitmap }

func (s fixedSource) Face(float64) (glyph.Face, error) { return glyph.NewOutline(s.face), nil }

type bitmapSource struct {
	font tinyfont.Fonter
}

// Bitmap 包装 tinyfont 点阵字体，忽略字号。
func Bitmap(f tinyfont.Fonter) Source { return bitmapSource{font: f} }

func (s bitmapSource) Kind() Kind { return KindBitmap }

func (s bitmapSource) Face(float64) (glyph.Face, error) { return glyph.NewBitmap(s.font), nil }

// Registry 按名称保存字体来源，可在多个渲染任务之间共享。
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
}

// NewRegistry 创建空注册表。
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register 注册或替换一个字体来源。
func (r *Registry) Register(name string, src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = src
}

// Lookup 返回名称对应的来源；file: 前缀的名称在第一次查找时注册。
func (r *Registry) Lookup(name string) (Source, error) {
	r.mu.RLock()
	src, ok := r.sources[name]
	r.mu.RUnlock()
	if ok {
		return src, nil
	}
	if path, isFile := strings.CutPrefix(name, FilePrefix); isFile && path != "" {
		r.mu.Lock()
		defer r.mu.Unlock()
		if src, ok := r.sources[name]; ok {
			return src, nil
		}
		src = OutlineFile(path)
		r.sources[name] = src
		return src, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFont, name)
}

// Face 查找字体并创建指定字号的字面。
func (r *Registry) Face(name string, size float64) (glyph.Face, error) {
	src, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return src.Face(size)
}

// Names 返回已注册的字体名（排序后）。
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
