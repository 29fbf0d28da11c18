package dither

import "testing"

func TestInjectPathMinFrames(t *testing.T) {
	s := newTestSurface(FullWindow, 100, 100)
	s.InjectPath(0, 0, 100, 100, 1) // should clamp to 2
	if s.Pending() != 2 {
		t.Fatalf("expected 2 queued events (clamped), got %d", s.Pending())
	}
	if last := s.injectQueue[1]; last.x != 100 || last.y != 100 {
		t.Errorf("path should end at (100,100), got (%v,%v)", last.x, last.y)
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := newTestSurface(FullWindow, 100, 100)

	s.InjectMove(10, 20)
	s.InjectResize(300, 200)
	s.InjectLeave()

	if s.Pending() != 3 {
		t.Fatalf("expected 3 events, got %d", s.Pending())
	}
	if s.injectQueue[0].kind != syntheticMove || s.injectQueue[0].x != 10 {
		t.Error("first event should be move at (10,20)")
	}
	if s.injectQueue[1].kind != syntheticResize || s.injectQueue[1].width != 300 {
		t.Error("second event should be resize to 300x200")
	}
	if s.injectQueue[2].kind != syntheticLeave {
		t.Error("third event should be leave")
	}
}

func TestProcessInjected(t *testing.T) {
	s := newTestSurface(FullWindow, 100, 100)
	var ctxs []PointerContext
	s.OnPointerEnter(func(ctx PointerContext) { ctxs = append(ctxs, ctx) })

	s.InjectMove(50, 40)
	if !s.processInjected() {
		t.Error("expected processInjected to consume an event")
	}
	if len(ctxs) != 1 || ctxs[0].X != 50 || ctxs[0].Y != 40 {
		t.Errorf("enter contexts = %+v, want one at (50,40)", ctxs)
	}
	if s.Pending() != 0 {
		t.Errorf("queue should be empty, got %d", s.Pending())
	}
}

func TestProcessInjectedEmptyQueue(t *testing.T) {
	s := newTestSurface(FullWindow, 100, 100)
	if s.processInjected() {
		t.Error("should not consume when queue is empty")
	}
}

func TestInjectResizeRelayouts(t *testing.T) {
	s := newTestSurface(SurfaceLayout{WidthRatio: 1, HeightRatio: 0.5}, 100, 100)
	s.InjectResize(200, 400)
	s.Poll()
	if b := s.Bounds(); b != (Rect{X: 0, Y: 100, Width: 200, Height: 200}) {
		t.Errorf("Bounds = %+v after resize", b)
	}
}

func TestInjectAfterTeardown(t *testing.T) {
	s := newTestSurface(FullWindow, 100, 100)
	s.Teardown()
	s.InjectMove(1, 1)
	s.InjectLeave()
	s.InjectResize(10, 10)
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after Teardown, want 0", s.Pending())
	}
}

func TestInjectedMoveHoldsAgainstRealCursor(t *testing.T) {
	s := newTestSurface(FullWindow, 100, 100)
	s.cursorFn = func() (int, int) { return -10, -10 }
	s.InjectMove(50, 50)
	for i := 0; i < 4; i++ {
		s.Poll()
	}
	if !s.Inside() || !s.Synthetic() {
		t.Fatalf("inside %v synthetic %v, want the injected pointer to hold", s.Inside(), s.Synthetic())
	}

	s.ReleaseSynthetic()
	s.Poll()
	if s.Inside() {
		t.Error("real cursor should take over after ReleaseSynthetic")
	}
}

func TestInjectedResizeHoldsAgainstWindow(t *testing.T) {
	s := newTestSurface(FullWindow, 100, 100)
	if w, h := s.ScreenSize(100, 100); w != 100 || h != 100 {
		t.Errorf("ScreenSize before inject = %d,%d", w, h)
	}
	s.InjectResize(300, 200)
	s.Poll()
	if w, h := s.ScreenSize(100, 100); w != 300 || h != 200 {
		t.Errorf("ScreenSize = %d,%d, want 300,200", w, h)
	}
	s.ReleaseSynthetic()
	if w, h := s.ScreenSize(100, 100); w != 100 || h != 100 {
		t.Errorf("ScreenSize after release = %d,%d, want window size", w, h)
	}
}
