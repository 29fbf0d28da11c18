package dither

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticLeave
	syntheticResize
)

// syntheticEvent represents a single injected surface event. Pointer
// coordinates are window coordinates, the same space as the real cursor.
type syntheticEvent struct {
	kind          syntheticKind
	x, y          float64
	width, height int
}

// InjectMove queues a cursor position. It is processed exactly like a real
// cursor reading: entering or leaving the surface fires enter/leave, and a
// changed position fires move. The event is consumed on the next Poll.
func (s *Surface) InjectMove(x, y float64) {
	if s.destroyed {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectLeave queues the pointer leaving the window. Fires leave if the
// pointer was over the surface; the last position is kept.
func (s *Surface) InjectLeave() {
	if s.destroyed {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticLeave})
}

// InjectResize queues a window size change. Once processed, the size holds
// against real window sizes passed through ScreenSize until ReleaseSynthetic.
func (s *Surface) InjectResize(screenW, screenH int) {
	if s.destroyed {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticResize, width: screenW, height: screenH})
}

// InjectPath queues a straight cursor path from (fromX, fromY) to (toX, toY)
// over the given number of frames (minimum 2).
func (s *Surface) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Pending returns the number of queued synthetic events.
func (s *Surface) Pending() int {
	return len(s.injectQueue)
}

// processInjected pops one event from the inject queue and applies it.
// Returns true if an event was consumed (the real cursor should be skipped).
func (s *Surface) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	s.synthetic = true

	switch evt.kind {
	case syntheticMove:
		s.pointerAt(evt.x, evt.y)
	case syntheticLeave:
		s.leave()
	case syntheticResize:
		s.forcedW, s.forcedH = evt.width, evt.height
		s.SetScreenSize(evt.width, evt.height)
	}
	return true
}

// Synthetic reports whether injected input currently owns the surface.
func (s *Surface) Synthetic() bool {
	return s.synthetic
}

// ScreenSize returns the size the surface should be laid out for given the
// real window size: an injected resize while synthetic input holds,
// otherwise the window size.
func (s *Surface) ScreenSize(windowW, windowH int) (int, int) {
	if s.synthetic && s.forcedW > 0 && s.forcedH > 0 {
		return s.forcedW, s.forcedH
	}
	return windowW, windowH
}

// ReleaseSynthetic hands the surface back to the real cursor and window
// size. The next Poll and SetScreenSize take effect as usual.
func (s *Surface) ReleaseSynthetic() {
	s.synthetic = false
	s.forcedW, s.forcedH = 0, 0
}
