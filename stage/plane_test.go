package stage

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPlaneAspect(t *testing.T) {
	p := NewPlane(ebiten.NewImage(200, 100))
	if p.Aspect() != 2 {
		t.Errorf("Aspect = %v, want 2", p.Aspect())
	}
	if p.RotationY != DefaultPlaneRotation {
		t.Errorf("RotationY = %v, want %v", p.RotationY, DefaultPlaneRotation)
	}
}

func TestPlaneFitTo(t *testing.T) {
	p := NewPlane(ebiten.NewImage(16, 16))
	tests := []struct {
		w, h, want float64
	}{
		{400, 300, 0.75},
		{1600, 1200, 3},
		{50, 50, 0.2}, // floor
	}
	for _, tt := range tests {
		p.FitTo(tt.w, tt.h)
		if !approxEqual(p.Scale, tt.want, epsilon) {
			t.Errorf("FitTo(%v, %v): Scale = %v, want %v", tt.w, tt.h, p.Scale, tt.want)
		}
	}
}

func TestPlaneCorners(t *testing.T) {
	p := NewPlane(ebiten.NewImage(200, 100))
	p.RotationY = 0
	p.Scale = 2
	c := p.Corners()
	if !approxEqual(c[0].X(), -2, epsilon) || !approxEqual(c[0].Y(), 1, epsilon) {
		t.Errorf("top-left = %v, want (-2,1,0)", c[0])
	}
	if !approxEqual(c[2].X(), 2, epsilon) || !approxEqual(c[2].Y(), -1, epsilon) {
		t.Errorf("bottom-right = %v, want (2,-1,0)", c[2])
	}

	p.RotationY = DefaultPlaneRotation
	c = p.Corners()
	if approxEqual(c[1].Z(), 0, epsilon) {
		t.Error("rotated plane should have depth at its edges")
	}
}

func TestPlaneDrawProjectsCenter(t *testing.T) {
	p := NewPlane(ebiten.NewImage(32, 32))
	cam := newTestCamera()
	dst := ebiten.NewImage(1000, 700)
	p.Draw(dst, cam)

	center := (planeCells/2)*(planeCells+1) + planeCells/2
	v := p.verts[center]
	if !approxEqual(float64(v.DstX), 500, 1e-3) || !approxEqual(float64(v.DstY), 350, 1e-3) {
		t.Errorf("center vertex = (%f,%f), want (500,350)", v.DstX, v.DstY)
	}
	if len(p.indices) != planeCells*planeCells*6 {
		t.Errorf("indices = %d, want %d", len(p.indices), planeCells*planeCells*6)
	}
}

func TestPatternImageSize(t *testing.T) {
	img := PatternImage(64, 40)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 40 {
		t.Errorf("bounds = %v, want 64x40", b)
	}
}
