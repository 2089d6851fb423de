//go:build !cgo

// Package preview shows a rendered label in a desktop window.
package preview

import (
	"errors"
	"image"
)

func Show(_ image.Image, _ string, _ int) error {
	return errors.New("preview requires cgo (build/run with CGO_ENABLED=1)")
}
