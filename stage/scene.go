package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/dither"
)

// Scene draws the ring text behind the textured plane. It implements
// dither.Scene for a *Camera; other cameras draw nothing.
type Scene struct {
	Plane *Plane
	// Rings may be nil.
	Rings *RingText

	fitW, fitH float64
}

// NewScene groups a plane and optional rings.
func NewScene(plane *Plane, rings *RingText) *Scene {
	return &Scene{Plane: plane, Rings: rings}
}

// Draw implements dither.Scene.
func (s *Scene) Draw(dst *ebiten.Image, cam dither.Camera) {
	c, ok := cam.(*Camera)
	if !ok || c == nil {
		return
	}
	vp := c.Viewport()
	if vp.Empty() {
		return
	}
	s.fit(vp.Width, vp.Height)

	if s.Rings != nil {
		s.Rings.Draw(dst, c)
	}
	if s.Plane != nil {
		s.Plane.Draw(dst, c)
	}
}

// fit resizes the plane and rings when the viewport changes.
func (s *Scene) fit(w, h float64) {
	if w == s.fitW && h == s.fitH {
		return
	}
	s.fitW, s.fitH = w, h
	if s.Plane != nil {
		s.Plane.FitTo(w, h)
	}
	if s.Rings != nil {
		s.Rings.Layout(w, h)
	}
}
