package dither

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EventType identifies a kind of surface event.
type EventType uint8

const (
	EventPointerEnter EventType = iota // pointer moved onto the surface
	EventPointerLeave                  // pointer moved off the surface
	EventPointerMove                   // pointer moved anywhere in the window
	EventResize                        // surface rectangle changed size
)

// String returns a short name for logging.
func (e EventType) String() string {
	switch e {
	case EventPointerEnter:
		return "enter"
	case EventPointerLeave:
		return "leave"
	case EventPointerMove:
		return "move"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// PointerContext carries pointer event data. X and Y are window coordinates;
// Bounds is the surface rectangle at the time of the event.
type PointerContext struct {
	X, Y   float64
	Bounds Rect
}

// ResizeContext carries the new surface size.
type ResizeContext struct {
	Width, Height int
	Bounds        Rect
}

// PointerEvent is the flattened form of every surface event, forwarded to an
// optional EventSink.
type PointerEvent struct {
	Type   EventType
	X, Y   float64
	Bounds Rect
	Width  int
	Height int
}

// EventSink receives every event a Surface dispatches. Used to bridge surface
// input into an ECS world.
type EventSink interface {
	EmitEvent(event PointerEvent)
}

// SurfaceLayout positions the interactive surface inside the window as a
// centered rectangle sized by the given fractions of the window.
type SurfaceLayout struct {
	WidthRatio  float64 `yaml:"widthRatio"`
	HeightRatio float64 `yaml:"heightRatio"`
}

// FullWindow covers the whole window.
var FullWindow = SurfaceLayout{WidthRatio: 1, HeightRatio: 1}

// Bounds returns the surface rectangle for a window of the given size.
func (l SurfaceLayout) Bounds(screenW, screenH int) Rect {
	wr, hr := l.WidthRatio, l.HeightRatio
	if wr <= 0 || wr > 1 {
		wr = 1
	}
	if hr <= 0 || hr > 1 {
		hr = 1
	}
	w := float64(screenW) * wr
	h := float64(screenH) * hr
	return Rect{
		X:      float64(int((float64(screenW) - w) / 2)),
		Y:      float64(int((float64(screenH) - h) / 2)),
		Width:  float64(int(w)),
		Height: float64(int(h)),
	}
}

// --- Callback lists ---

type listener[T any] struct {
	id uint32
	fn func(T)
}

// listeners is an ordered callback list. Removal keeps registration order.
type listeners[T any] []listener[T]

func (l *listeners[T]) add(id uint32, fn func(T)) {
	*l = append(*l, listener[T]{id: id, fn: fn})
}

func (l *listeners[T]) remove(id uint32) {
	s := *l
	for i := range s {
		if s[i].id != id {
			continue
		}
		*l = append(s[:i], s[i+1:]...)
		s[len(s)-1] = listener[T]{}
		return
	}
}

func (l listeners[T]) call(v T) {
	for _, e := range l {
		e.fn(v)
	}
}

type callbacks struct {
	enter, leave, move listeners[PointerContext]
	resize             listeners[ResizeContext]
	lastID             uint32
}

func (c *callbacks) len() int {
	return len(c.enter) + len(c.leave) + len(c.move) + len(c.resize)
}

func (c *callbacks) nextID() uint32 {
	c.lastID++
	return c.lastID
}

// CallbackHandle removes a registered surface callback.
type CallbackHandle struct {
	id    uint32
	cbs   *callbacks
	event EventType
}

// Remove unregisters the callback. Removing twice is a no-op.
func (h CallbackHandle) Remove() {
	if h.cbs == nil {
		return
	}
	switch h.event {
	case EventPointerEnter:
		h.cbs.enter.remove(h.id)
	case EventPointerLeave:
		h.cbs.leave.remove(h.id)
	case EventPointerMove:
		h.cbs.move.remove(h.id)
	case EventResize:
		h.cbs.resize.remove(h.id)
	}
}

// --- Surface ---

// Surface is the interactive rectangle the pointer is tracked against. Each
// frame Poll turns the cursor position (or one queued synthetic event) into
// enter, leave and move callbacks; SetScreenSize turns window layout changes
// into resize callbacks. Callbacks run synchronously on the caller's
// goroutine.
type Surface struct {
	Layout SurfaceLayout

	bounds       Rect
	screenW      int
	screenH      int
	inside       bool
	hasCursor    bool
	lastX, lastY float64

	cbs         callbacks
	sink        EventSink
	injectQueue []syntheticEvent
	cursorFn    func() (int, int)
	destroyed   bool

	// Set by the first synthetic event; cleared by ReleaseSynthetic.
	synthetic        bool
	forcedW, forcedH int
}

// NewSurface creates a surface that reads the real cursor on every Poll.
func NewSurface(layout SurfaceLayout) *Surface {
	return &Surface{
		Layout:   layout,
		cursorFn: ebiten.CursorPosition,
	}
}

// Bounds returns the current surface rectangle in window coordinates.
func (s *Surface) Bounds() Rect {
	return s.bounds
}

// Inside reports whether the pointer is currently over the surface.
func (s *Surface) Inside() bool {
	return s.inside
}

// ListenerCount returns the number of registered callbacks.
func (s *Surface) ListenerCount() int {
	return s.cbs.len()
}

// SetEventSink forwards every dispatched event to sink. Pass nil to stop.
func (s *Surface) SetEventSink(sink EventSink) {
	s.sink = sink
}

// OnPointerEnter registers a callback for the pointer moving onto the surface.
func (s *Surface) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	id := s.cbs.nextID()
	s.cbs.enter.add(id, fn)
	return CallbackHandle{id: id, cbs: &s.cbs, event: EventPointerEnter}
}

// OnPointerLeave registers a callback for the pointer moving off the surface.
func (s *Surface) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	id := s.cbs.nextID()
	s.cbs.leave.add(id, fn)
	return CallbackHandle{id: id, cbs: &s.cbs, event: EventPointerLeave}
}

// OnPointerMove registers a callback for pointer movement. Moves are reported
// for the whole window, not only over the surface.
func (s *Surface) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	id := s.cbs.nextID()
	s.cbs.move.add(id, fn)
	return CallbackHandle{id: id, cbs: &s.cbs, event: EventPointerMove}
}

// OnResize registers a callback for surface size changes.
func (s *Surface) OnResize(fn func(ResizeContext)) CallbackHandle {
	id := s.cbs.nextID()
	s.cbs.resize.add(id, fn)
	return CallbackHandle{id: id, cbs: &s.cbs, event: EventResize}
}

// Poll processes one queued synthetic event if any, otherwise the real
// cursor position. Once a synthetic event has been processed the real cursor
// is ignored until ReleaseSynthetic. Call once per Update.
func (s *Surface) Poll() {
	if s.destroyed {
		return
	}
	if s.processInjected() || s.synthetic {
		return
	}
	if s.cursorFn == nil {
		return
	}
	cx, cy := s.cursorFn()
	s.pointerAt(float64(cx), float64(cy))
}

// SetScreenSize recomputes the surface rectangle for a window of the given
// size and fires resize callbacks when the surface size changes. If the
// pointer is over the surface its bounds are refreshed with a new enter.
func (s *Surface) SetScreenSize(screenW, screenH int) {
	if s.destroyed {
		return
	}
	if screenW == s.screenW && screenH == s.screenH {
		return
	}
	s.screenW, s.screenH = screenW, screenH
	s.bounds = s.Layout.Bounds(screenW, screenH)
	s.fireResize(int(s.bounds.Width), int(s.bounds.Height))

	if !s.hasCursor {
		return
	}
	if s.inside {
		s.inside = false
		if !s.contains(s.lastX, s.lastY) {
			s.fireLeave(s.lastX, s.lastY)
			return
		}
	}
	if s.contains(s.lastX, s.lastY) {
		s.inside = true
		s.fireEnter(s.lastX, s.lastY)
	}
}

// Teardown removes every registered callback and stops event processing.
// Safe to call more than once.
func (s *Surface) Teardown() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.cbs = callbacks{lastID: s.cbs.lastID}
	s.injectQueue = nil
	s.sink = nil
}

func (s *Surface) contains(x, y float64) bool {
	return !s.bounds.Empty() && s.bounds.Contains(x, y)
}

// pointerAt runs the enter/leave/move state machine for a cursor position.
func (s *Surface) pointerAt(x, y float64) {
	inside := s.contains(x, y)
	moved := !s.hasCursor || x != s.lastX || y != s.lastY
	s.hasCursor = true
	s.lastX, s.lastY = x, y

	if inside && !s.inside {
		s.inside = true
		s.fireEnter(x, y)
	} else if !inside && s.inside {
		s.inside = false
		s.fireLeave(x, y)
	}
	if moved {
		s.fireMove(x, y)
	}
}

// leave handles the pointer exiting the window entirely.
func (s *Surface) leave() {
	if !s.inside {
		return
	}
	s.inside = false
	s.fireLeave(s.lastX, s.lastY)
}

// --- Event dispatch ---

func (s *Surface) fireEnter(x, y float64) {
	s.cbs.enter.call(PointerContext{X: x, Y: y, Bounds: s.bounds})
	s.emit(PointerEvent{Type: EventPointerEnter, X: x, Y: y, Bounds: s.bounds})
}

func (s *Surface) fireLeave(x, y float64) {
	s.cbs.leave.call(PointerContext{X: x, Y: y, Bounds: s.bounds})
	s.emit(PointerEvent{Type: EventPointerLeave, X: x, Y: y, Bounds: s.bounds})
}

func (s *Surface) fireMove(x, y float64) {
	s.cbs.move.call(PointerContext{X: x, Y: y, Bounds: s.bounds})
	s.emit(PointerEvent{Type: EventPointerMove, X: x, Y: y, Bounds: s.bounds})
}

func (s *Surface) fireResize(w, h int) {
	s.cbs.resize.call(ResizeContext{Width: w, Height: h, Bounds: s.bounds})
	s.emit(PointerEvent{Type: EventResize, Bounds: s.bounds, Width: w, Height: h})
}

func (s *Surface) emit(e PointerEvent) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(e)
}
