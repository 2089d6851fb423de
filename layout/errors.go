package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOperation 表示操作种类没有渲染实现（例如条码）。
	ErrUnsupportedOperation = errors.New("layout: unsupported operation")
	// ErrWidthExceeded 表示画布宽度将超过 max_x。
	ErrWidthExceeded = errors.New("layout: canvas width exceeded")
)

// UnsupportedOperationError 记录不支持的操作位置与种类。
type UnsupportedOperationError struct {
	Index int
	Kind  Kind
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("layout: 操作 #%d (%s) 暂不支持", e.Index, e.Kind)
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupportedOperation }

// WidthExceededError 记录所需宽度与上限。
type WidthExceededError struct {
	Width int
	Max   int
}

func (e *WidthExceededError) Error() string {
	return fmt.Sprintf("layout: 画布宽度 %d 超过上限 %d", e.Width, e.Max)
}

func (e *WidthExceededError) Is(target error) bool { return target == ErrWidthExceeded }
