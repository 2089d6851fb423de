package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ByLCY/ptlabel/binding"
	"github.com/ByLCY/ptlabel/config"
	"github.com/ByLCY/ptlabel/dsl"
	"github.com/ByLCY/ptlabel/fonts"
	"github.com/ByLCY/ptlabel/layout"
	"github.com/ByLCY/ptlabel/preview"
	"github.com/ByLCY/ptlabel/renderer"
	canvasrenderer "github.com/ByLCY/ptlabel/renderer/canvas"
	"github.com/ByLCY/ptlabel/renderer/raster"
	"github.com/ByLCY/ptlabel/renderer/raw"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		input      string
		output     string
		debug      string
		configPath string
		dataText   string
		dataFile   string
		fontName   string
		size       float64
		centre     bool
		clip       bool
		minX       int
		maxX       int
		height     int
		gap        int
		scale      int
		showWindow bool
		verbose    bool
		listFonts  bool
	)

	pflag.StringVarP(&input, "in", "i", "", "标签脚本路径；为空时使用命令行参数中的文本")
	pflag.StringVarP(&output, "out", "o", "", "输出路径，按扩展名选择格式：.png / .pdf / .bin")
	pflag.StringVar(&debug, "debug", "", "布局调试 JSON 输出路径")
	pflag.StringVarP(&configPath, "config", "c", "", "YAML 配置文件路径")
	pflag.StringVar(&dataText, "data", "", "绑定到脚本的 JSON/YAML 数据")
	pflag.StringVar(&dataFile, "data-file", "", "绑定数据文件路径（JSON 或 YAML）")
	pflag.StringVarP(&fontName, "font", "f", "", "默认字体名，或 file:<路径>")
	pflag.Float64VarP(&size, "size", "s", 0, "默认字号（每 em 像素数）")
	pflag.BoolVar(&centre, "centre", false, "文本垂直居中")
	pflag.BoolVar(&clip, "clip", false, "裁剪超出画布的像素而不是报错")
	pflag.IntVar(&minX, "min-x", 0, "画布初始宽度（列）")
	pflag.IntVar(&maxX, "max-x", 0, "画布最大宽度（列）")
	pflag.IntVarP(&height, "height", "y", 0, "画布高度（点）")
	pflag.IntVar(&gap, "gap", 8, "命令行文本之间的间隔（列）")
	pflag.IntVar(&scale, "scale", 1, "PNG 与预览窗口的放大倍数")
	pflag.BoolVarP(&showWindow, "preview", "p", false, "在窗口中预览")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	pflag.BoolVar(&listFonts, "list-fonts", false, "列出内置字体")
	pflag.Parse()

	if verbose {
		layout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	reg := fonts.Default()
	if listFonts {
		for _, name := range reg.Names() {
			fmt.Println(name)
		}
		return 0
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		return 1
	}
	flags := pflag.CommandLine
	if flags.Changed("font") {
		cfg.Font = fontName
	}
	if flags.Changed("size") {
		cfg.PointSize = size
	}
	if flags.Changed("centre") {
		cfg.VerticalCentre = centre
	}
	if flags.Changed("clip") {
		cfg.Clip = clip
	}
	if flags.Changed("min-x") {
		cfg.MinX = minX
	}
	if flags.Changed("max-x") {
		cfg.MaxX = maxX
	}
	if flags.Changed("height") {
		cfg.Y = height
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "配置无效: %v\n", err)
		return 1
	}

	data, err := loadData(dataText, dataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "解析数据失败: %v\n", err)
		return 1
	}

	var job *layout.Job
	if input != "" {
		job, err = scriptJob(input, data, cfg)
	} else {
		job, err = textJob(pflag.Args(), gap, data, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "构建标签失败: %v\n", err)
		return 1
	}

	label, renderErr := job.Render(reg)
	if debug != "" && label != nil {
		if err := writeDebug(label, debug); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if renderErr != nil {
		fmt.Fprintf(os.Stderr, "渲染标签失败: %v\n", renderErr)
		return 1
	}
	w, h := label.Canvas.Size()
	fmt.Printf("已渲染标签：%d×%d 点\n", w, h)

	if output != "" {
		if err := export(label, job.Config, output, scale); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("已写入：%s\n", output)
	}

	if showWindow {
		theme, err := renderer.ThemeByName(job.Config.Theme)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		title := label.Name
		if title == "" {
			title = "ptlabel"
		}
		if err := preview.Show(renderer.NewView(label.Canvas, theme), title, scale); err != nil {
			fmt.Fprintf(os.Stderr, "预览失败: %v\n", err)
			return 1
		}
	}
	return 0
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadData(text, path string) (any, error) {
	switch {
	case text != "" && path != "":
		return nil, fmt.Errorf("--data 与 --data-file 只能指定一个")
	case text != "":
		return binding.Decode([]byte(text))
	case path != "":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return binding.Decode(raw)
	}
	return nil, nil
}

// scriptJob 解析脚本文件并构建任务。
func scriptJob(path string, data any, cfg config.Config) (*layout.Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开脚本 %s: %w", path, err)
	}
	defer file.Close()

	script, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析脚本失败: %w", err)
	}
	return layout.FromScript(script, data, cfg)
}

// textJob 把命令行文本依次排成一行，文本之间以 gap 列隔开。字面量 \n 视为换行。
func textJob(args []string, gap int, data any, cfg config.Config) (*layout.Job, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("没有提供文本，也没有指定 --in")
	}
	if gap < 0 {
		return nil, fmt.Errorf("--gap 不能为负数")
	}
	job := &layout.Job{Config: cfg}
	for i, arg := range args {
		text := strings.ReplaceAll(arg, `\n`, "\n")
		if data != nil {
			var err error
			if text, err = binding.Resolve(text, data); err != nil {
				return nil, err
			}
		}
		if i > 0 && gap > 0 {
			job.Ops = append(job.Ops, layout.Pad{Columns: uint(gap)})
		}
		job.Ops = append(job.Ops, layout.Text{Value: text, Opts: layout.TextOptions{VerticalCentre: cfg.VerticalCentre}})
	}
	return job, nil
}

// rendererFor 按扩展名选择导出格式。
func rendererFor(path string, cfg config.Config, scale int) (renderer.Renderer, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		r, err := raster.New(cfg.Theme, scale)
		if err != nil {
			return nil, err
		}
		return r, nil
	case ".pdf":
		theme, err := renderer.ThemeByName(cfg.Theme)
		if err != nil {
			return nil, err
		}
		r := canvasrenderer.NewRenderer(cfg.PrintDPI)
		r.Theme = theme
		return r, nil
	case ".bin", ".raw":
		return raw.Renderer{}, nil
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", ext)
	}
}

func export(label *layout.Label, cfg config.Config, path string, scale int) error {
	r, err := rendererFor(path, cfg, scale)
	if err != nil {
		return err
	}
	out, err := r.Render(label)
	if err != nil {
		return fmt.Errorf("导出失败: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}

func writeDebug(label *layout.Label, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(label, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
