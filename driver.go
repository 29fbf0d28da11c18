package dither

// FrameState is the FrameDriver's lifecycle state.
type FrameState uint8

const (
	// StateUninitialized means no tick has run yet.
	StateUninitialized FrameState = iota
	// StateAwaitingSceneCamera means the pipeline exists but the host has not
	// supplied both a scene and a camera.
	StateAwaitingSceneCamera
	// StateReady means the pass chain is built and frames are rendered.
	StateReady
)

func (s FrameState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAwaitingSceneCamera:
		return "awaiting-scene-camera"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// FrameDriver runs the per-frame work: it creates the pipeline on the first
// tick, rebuilds the pass chain when the host swaps scene or camera, maps the
// pointer to a grid size and renders. Tick never blocks or fails; a missing
// scene or camera just skips the frame.
type FrameDriver struct {
	pipeline *EffectPipeline
	tracker  *PointerTracker
	grids    GridRange

	state  FrameState
	scene  Scene
	camera Camera
	grid   float64

	width, height int
	sized         bool

	handles   []CallbackHandle
	destroyed bool
}

// NewFrameDriver creates a driver over p, reading pointer state from t and
// mapping it into r. An invalid range falls back to DefaultGridRange.
func NewFrameDriver(p *EffectPipeline, t *PointerTracker, r GridRange) *FrameDriver {
	if r.Validate() != nil {
		r = DefaultGridRange
	}
	return &FrameDriver{pipeline: p, tracker: t, grids: r, grid: r.Min}
}

// Tick advances the driver by one frame. rend is the output the pipeline
// draws onto; scene and cam are the host's current scene and camera, either
// of which may be nil.
func (d *FrameDriver) Tick(rend Renderer, scene Scene, cam Camera) {
	if d.destroyed || d.pipeline == nil || !present(rend) {
		return
	}

	if d.state == StateUninitialized {
		d.pipeline.EnsureInitialized(rend)
		if !d.sized {
			if t := rend.Target(); t != nil {
				b := t.Bounds()
				d.width, d.height = b.Dx(), b.Dy()
			}
		}
		d.pipeline.Resize(d.width, d.height)
		d.setState(StateAwaitingSceneCamera)
	} else {
		d.pipeline.EnsureInitialized(rend)
	}

	if !present(scene) || !present(cam) {
		d.scene, d.camera = nil, nil
		d.setState(StateAwaitingSceneCamera)
		return
	}

	var ps PointerState
	if d.tracker != nil {
		ps = d.tracker.Snapshot()
	}
	d.grid = ComputeGrid(ps, d.grids)
	d.pipeline.UpdateParameter(d.grid)

	if !sameValue(scene, d.scene) || !sameValue(cam, d.camera) || !d.pipeline.Configured() {
		d.pipeline.Configure(scene, cam)
		d.scene, d.camera = scene, cam
	}
	d.setState(StateReady)
	d.pipeline.Render()
}

// Resize records a new surface size and forwards it to the pipeline.
func (d *FrameDriver) Resize(width, height int) {
	if d.destroyed {
		return
	}
	d.width, d.height = width, height
	d.sized = true
	if d.pipeline != nil {
		d.pipeline.Resize(width, height)
	}
}

// Bind subscribes the driver to a surface's resize events and takes the
// surface's current size if it has one.
func (d *FrameDriver) Bind(s *Surface) {
	if d.destroyed || s == nil {
		return
	}
	d.handles = append(d.handles, s.OnResize(func(ctx ResizeContext) {
		d.Resize(ctx.Width, ctx.Height)
	}))
	if b := s.Bounds(); !b.Empty() {
		d.Resize(int(b.Width), int(b.Height))
	}
}

// State returns the current lifecycle state.
func (d *FrameDriver) State() FrameState {
	return d.state
}

// Grid returns the grid size computed on the last ready tick.
func (d *FrameDriver) Grid() float64 {
	return d.grid
}

// Range returns the grid range the driver maps into.
func (d *FrameDriver) Range() GridRange {
	return d.grids
}

// Pipeline returns the driven pipeline.
func (d *FrameDriver) Pipeline() *EffectPipeline {
	return d.pipeline
}

// Teardown removes surface subscriptions and tears down the pipeline. Safe
// to call more than once.
func (d *FrameDriver) Teardown() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	for _, h := range d.handles {
		h.Remove()
	}
	d.handles = nil
	if d.pipeline != nil {
		d.pipeline.Teardown()
	}
	d.scene, d.camera = nil, nil
}

func (d *FrameDriver) setState(s FrameState) {
	if d.state == s {
		return
	}
	Logger().Debug("dither: frame state", "from", d.state, "to", s)
	d.state = s
}
