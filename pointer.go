package dither

// PointerState is a consistent view of the pointer relative to the
// interactive surface. Bounds are retained after the pointer leaves and must
// only be trusted while InsideSurface is true.
type PointerState struct {
	InsideSurface bool
	Position      Vec2
	Bounds        Rect
}

// PointerTracker records whether the pointer is over the surface, where it
// last was, and the surface rectangle captured on entry. Every write replaces
// the whole state in a single assignment so a reader never sees a bounds and
// position pair from different events.
type PointerTracker struct {
	state     PointerState
	handles   []CallbackHandle
	destroyed bool
}

// NewPointerTracker creates a tracker with the pointer outside the surface.
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// OnEnter marks the pointer as inside the surface and stores its bounds.
func (t *PointerTracker) OnEnter(bounds Rect) {
	if t.destroyed {
		return
	}
	next := t.state
	next.InsideSurface = true
	next.Bounds = bounds
	t.state = next
}

// OnLeave marks the pointer as outside the surface. Position and bounds are
// kept as they were.
func (t *PointerTracker) OnLeave() {
	if t.destroyed {
		return
	}
	next := t.state
	next.InsideSurface = false
	t.state = next
}

// OnMove records a new pointer position. Moves while the pointer is outside
// the surface are ignored.
func (t *PointerTracker) OnMove(x, y float64) {
	if t.destroyed || !t.state.InsideSurface {
		return
	}
	next := t.state
	next.Position = Vec2{X: x, Y: y}
	t.state = next
}

// Snapshot returns a copy of the current state.
func (t *PointerTracker) Snapshot() PointerState {
	return t.state
}

// Bind subscribes the tracker to a surface's pointer events. The
// subscriptions are removed by Destroy.
func (t *PointerTracker) Bind(s *Surface) {
	if t.destroyed || s == nil {
		return
	}
	t.handles = append(t.handles,
		s.OnPointerEnter(func(ctx PointerContext) { t.OnEnter(ctx.Bounds) }),
		s.OnPointerLeave(func(PointerContext) { t.OnLeave() }),
		s.OnPointerMove(func(ctx PointerContext) { t.OnMove(ctx.X, ctx.Y) }),
	)
}

// Destroy removes all surface subscriptions. Later calls on the tracker are
// no-ops. Safe to call more than once.
func (t *PointerTracker) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	for _, h := range t.handles {
		h.Remove()
	}
	t.handles = nil
}

// IsDestroyed reports whether Destroy has been called.
func (t *PointerTracker) IsDestroyed() bool {
	return t.destroyed
}
