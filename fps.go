package dither

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows FPS, TPS and the current grid size in the top-right
// corner, clear of host captions on the left.
// The text is redrawn about twice a second.
const fpsMargin = 4

type fpsOverlay struct {
	img        *ebiten.Image
	sinceDraw  float64
	op         ebiten.DrawImageOptions
	background color.RGBA
}

func newFPSOverlay() *fpsOverlay {
	// 110x48 fits three lines of DebugPrint text.
	return &fpsOverlay{
		img:        ebiten.NewImage(110, 48),
		sinceDraw:  1, // redraw on the first update
		background: color.RGBA{0, 0, 0, 128},
	}
}

func (o *fpsOverlay) Update(dt, grid float64) {
	o.sinceDraw += dt
	if o.sinceDraw < 0.5 {
		return
	}
	o.sinceDraw = 0

	o.img.Clear()
	o.img.Fill(o.background)
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nGrid: %.0f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), grid))
}

func (o *fpsOverlay) Draw(screen *ebiten.Image) {
	x, y := o.position(screen.Bounds().Dx())
	o.op.GeoM.Reset()
	o.op.GeoM.Translate(x, y)
	screen.DrawImage(o.img, &o.op)
}

// position returns the top-left corner of the overlay on a screen of the
// given width. Narrow screens pin it to the left margin.
func (o *fpsOverlay) position(screenW int) (x, y float64) {
	x = float64(screenW - o.img.Bounds().Dx() - fpsMargin)
	if x < fpsMargin {
		x = fpsMargin
	}
	return x, fpsMargin
}

func (o *fpsOverlay) Dispose() {
	o.img.Deallocate()
}
