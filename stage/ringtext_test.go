package stage

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/dither"
)

func newTestRings(t *testing.T) *RingText {
	t.Helper()
	rt, err := NewRingText("DITHER")
	if err != nil {
		t.Fatalf("NewRingText: %v", err)
	}
	return rt
}

func TestRingLayout(t *testing.T) {
	rt := newTestRings(t)
	tests := []struct {
		w, h     float64
		ringSize float64
		font     float64
		count    int
	}{
		{1200, 800, 140, 120, 10},
		{600, 900, 70, 60, 14},
		{1920, 1080, 224, 192, 10},
	}
	for _, tt := range tests {
		rt.Layout(tt.w, tt.h)
		if !approxEqual(rt.RingSize(), tt.ringSize, epsilon) {
			t.Errorf("%vx%v: RingSize = %v, want %v", tt.w, tt.h, rt.RingSize(), tt.ringSize)
		}
		if rt.FontSize() != tt.font {
			t.Errorf("%vx%v: FontSize = %v, want %v", tt.w, tt.h, rt.FontSize(), tt.font)
		}
		if rt.Len() != tt.count {
			t.Errorf("%vx%v: Len = %d, want %d", tt.w, tt.h, rt.Len(), tt.count)
		}
	}
}

func TestRingBounds(t *testing.T) {
	rt := newTestRings(t)
	rt.Layout(600, 400)
	inner, outer := rt.RingBounds(2)
	if !approxEqual(inner, 140, epsilon) || !approxEqual(outer, 210, epsilon) {
		t.Errorf("ring 2 = [%v, %v], want [140, 210]", inner, outer)
	}
}

func TestRingIntroWaitsForDelay(t *testing.T) {
	rt := newTestRings(t)
	rt.Layout(1200, 800)
	rt.Update(1.9)
	depth, spin, _ := rt.RingState(0)
	if depth != introDepth || spin != math.Pi {
		t.Errorf("before delay: depth %v spin %v, want %v, π", depth, spin, introDepth)
	}

	rt.Update(0.2) // ring 0 is 0.1s in, ring 1 has not started
	depth, spin, _ = rt.RingState(0)
	if depth >= introDepth || spin >= math.Pi {
		t.Errorf("ring 0 should be moving: depth %v spin %v", depth, spin)
	}
	depth, _, _ = rt.RingState(1)
	if depth != introDepth {
		t.Errorf("ring 1 depth = %v, want %v", depth, introDepth)
	}
}

func TestRingIntroCompletes(t *testing.T) {
	rt := newTestRings(t)
	rt.Layout(1200, 800)
	last := introDelay + introStagger*float64(rt.Len()-1) + introDepthTime
	for elapsed := 0.0; elapsed <= last+0.5; elapsed += 0.25 {
		rt.Update(0.25)
	}
	if !rt.IntroDone() {
		t.Fatal("intro should be done")
	}
	for i := 0; i < rt.Len(); i++ {
		depth, spin, _ := rt.RingState(i)
		if depth != 0 || spin != 0 {
			t.Errorf("ring %d: depth %v spin %v, want 0, 0", i, depth, spin)
		}
	}
}

func TestRingFollowLag(t *testing.T) {
	rt := newTestRings(t)
	rt.SkipIntro()
	rt.Layout(1200, 800)
	if !rt.IntroDone() {
		t.Fatal("SkipIntro before Layout should still finish every ring")
	}

	rt.SetPointer(dither.Vec2{X: 100, Y: -50})
	rt.Update(0.05)

	want := dither.Vec2{X: -30, Y: 15}
	_, _, off0 := rt.RingState(0)
	if !approxEqual(off0.X, want.X, 1e-9) || !approxEqual(off0.Y, want.Y, 1e-9) {
		t.Errorf("ring 0 offset = %+v, want %+v", off0, want)
	}
	_, _, off1 := rt.RingState(1)
	if approxEqual(off1.X, want.X, 1e-4) || off1 == (dither.Vec2{}) {
		t.Errorf("ring 1 offset = %+v, want partway", off1)
	}

	rt.Update(0.2)
	_, _, off1 = rt.RingState(1)
	if !approxEqual(off1.X, want.X, 1e-4) || !approxEqual(off1.Y, want.Y, 1e-4) {
		t.Errorf("ring 1 offset after lag = %+v, want %+v", off1, want)
	}
	_, _, offLast := rt.RingState(rt.Len() - 1)
	if approxEqual(offLast.X, want.X, 1e-4) {
		t.Error("outer ring should still be catching up")
	}
}

func TestRingLayoutKeepsFinishedIntro(t *testing.T) {
	rt := newTestRings(t)
	rt.Layout(1200, 800)
	rt.SkipIntro()
	rt.Layout(600, 1200)
	if !rt.IntroDone() {
		t.Error("rings added by a resize should start finished")
	}
}

func TestRingDraw(t *testing.T) {
	rt := newTestRings(t)
	rt.SkipIntro()
	cam := newTestCamera()
	rt.Layout(800, 600)
	dst := ebiten.NewImage(1000, 700)
	rt.Draw(dst, cam)
	if rt.layer == nil || rt.layer.Bounds().Dx() != 800 {
		t.Error("Draw should allocate a layer the size of the viewport")
	}
	rt.Dispose()
	if rt.layer != nil {
		t.Error("Dispose should release the layer")
	}
}
