// Package binding 将数据绑定到标签文本中的 ${path.to.value} 占位符。
package binding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// UnresolvedError 列出无法解析的占位符路径。
type UnresolvedError struct {
	Paths []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("binding: 无法解析占位符 %s", strings.Join(e.Paths, ", "))
}

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	out, _ := replace(text, data)
	return out
}

// Resolve 与 Interpolate 相同，但任何无法解析的占位符都会返回 *UnresolvedError。
func Resolve(text string, data any) (string, error) {
	out, missing := replace(text, data)
	if len(missing) > 0 {
		return "", &UnresolvedError{Paths: missing}
	}
	return out, nil
}

func replace(text string, data any) (string, []string) {
	var missing []string
	out := exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			missing = append(missing, match)
			return match
		}
		if val, ok := Lookup(data, path); ok {
			return format(val)
		}
		missing = append(missing, path)
		return match
	})
	return out, missing
}

// Lookup 按 a.b[0].c 形式的路径在 JSON/YAML 解码结果中取值。
func Lookup(data any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := parseSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			m, isMap := current.(map[string]any)
			if !isMap {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, isArr := current.([]any)
			if !isArr || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// parseSegment 拆分 name[0][1]，下标非法时返回 false。
func parseSegment(segment string) (string, []int, bool) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil, segment != ""
	}
	name, rest := segment[:i], segment[i:]
	var indexes []int
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case float64:
		// JSON 数字统一解码为 float64，整数值不输出小数部分
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Decode 解析 JSON 或 YAML 数据文档，供 Interpolate/Resolve 使用。
func Decode(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var out any
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &out); err == nil {
			return out, nil
		}
		// 不是合法 JSON 时交给 YAML（YAML 的流式写法同样以 { 或 [ 开头）
	}
	if err := yaml.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("binding: 解析数据失败: %w", err)
	}
	return out, nil
}
