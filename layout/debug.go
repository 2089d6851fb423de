package layout

import (
	"encoding/json"
	"os"
)

type debugLabel struct {
	Name       string      `json:"name,omitempty"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Cursor     int         `json:"cursor"`
	Complete   bool        `json:"complete"`
	Placements []Placement `json:"placements"`
}

// WriteDebugJSON 将标签的尺寸、光标与各操作位置输出为 JSON，便于调试。
func WriteDebugJSON(label *Label, path string) error {
	if label == nil {
		return nil
	}
	data, err := DebugJSON(label)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DebugJSON 返回 WriteDebugJSON 写出的内容。
func DebugJSON(label *Label) ([]byte, error) {
	out := debugLabel{
		Name:       label.Name,
		Cursor:     label.Cursor,
		Complete:   label.Complete,
		Placements: label.Placements,
	}
	if label.Canvas != nil {
		out.Width, out.Height = label.Canvas.Size()
	}
	return json.MarshalIndent(out, "", "  ")
}
