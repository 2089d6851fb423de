//go:build cgo

// Package preview shows a rendered label in a desktop window.
package preview

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Show opens a window displaying img, each dot drawn scale x scale pixels
// large. It blocks until the window is closed or Escape is pressed.
func Show(img image.Image, title string, scale int) error {
	b := img.Bounds()
	if b.Empty() {
		return errors.New("preview: image is empty")
	}
	if scale < 1 {
		scale = 1
	}
	g := &labelGame{src: img, width: b.Dx(), height: b.Dy()}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width*scale, g.height*scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

type labelGame struct {
	src    image.Image
	img    *ebiten.Image
	width  int
	height int
}

func (g *labelGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *labelGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImageFromImage(g.src)
	}
	screen.DrawImage(g.img, nil)
}

func (g *labelGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
