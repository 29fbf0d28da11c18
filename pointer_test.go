package dither

import "testing"

func TestPointerTrackerStartsOutside(t *testing.T) {
	tr := NewPointerTracker()
	if tr.Snapshot().InsideSurface {
		t.Error("new tracker should be outside")
	}
}

func TestPointerTrackerEnterMoveLeave(t *testing.T) {
	tr := NewPointerTracker()
	b := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tr.OnEnter(b)
	tr.OnMove(30, 40)
	s := tr.Snapshot()
	if !s.InsideSurface || s.Bounds != b || s.Position != (Vec2{30, 40}) {
		t.Errorf("after enter+move: %+v", s)
	}

	tr.OnLeave()
	s = tr.Snapshot()
	if s.InsideSurface {
		t.Error("after leave: still inside")
	}
	if s.Bounds != b || s.Position != (Vec2{30, 40}) {
		t.Errorf("leave should retain position and bounds, got %+v", s)
	}
}

func TestPointerTrackerMoveIgnoredOutside(t *testing.T) {
	tr := NewPointerTracker()
	tr.OnEnter(square200)
	tr.OnMove(100, 100)
	tr.OnLeave()
	tr.OnMove(9999, 9999)

	s := tr.Snapshot()
	if s.Position != (Vec2{100, 100}) {
		t.Errorf("Position = %+v, want {100 100}", s.Position)
	}
	if got := ComputeGrid(s, DefaultGridRange); got != 1 {
		t.Errorf("ComputeGrid after leave = %v, want 1", got)
	}
}

func TestPointerTrackerSnapshotIsCopy(t *testing.T) {
	tr := NewPointerTracker()
	tr.OnEnter(square200)
	s := tr.Snapshot()
	s.Bounds.Width = 1
	if tr.Snapshot().Bounds.Width != 200 {
		t.Error("mutating a snapshot changed the tracker")
	}
}

func TestPointerTrackerBindAndDestroy(t *testing.T) {
	s := newTestSurface(FullWindow, 200, 200)
	tr := NewPointerTracker()
	tr.Bind(s)
	if s.ListenerCount() != 3 {
		t.Fatalf("ListenerCount = %d, want 3", s.ListenerCount())
	}

	s.InjectMove(100, 100)
	s.Poll()
	if got := ComputeGrid(tr.Snapshot(), DefaultGridRange); got != 20 {
		t.Errorf("grid at center = %v, want 20", got)
	}

	tr.Destroy()
	tr.Destroy()
	if s.ListenerCount() != 0 {
		t.Errorf("ListenerCount after Destroy = %d, want 0", s.ListenerCount())
	}

	before := tr.Snapshot()
	s.InjectMove(150, 100)
	s.Poll()
	s.InjectLeave()
	s.Poll()
	tr.OnEnter(Rect{Width: 5, Height: 5})
	if tr.Snapshot() != before {
		t.Errorf("destroyed tracker mutated: %+v -> %+v", before, tr.Snapshot())
	}
	if !tr.IsDestroyed() {
		t.Error("IsDestroyed = false")
	}
}
