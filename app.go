package dither

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HostUpdater is implemented by scene hosts that animate. Update is called
// once per tick with the latest pointer state.
type HostUpdater interface {
	Update(dt float64, pointer PointerState)
}

// OverlayDrawer is implemented by scene hosts that draw undithered content
// around the surface, such as captions. surface is the surface rectangle in
// screen coordinates.
type OverlayDrawer interface {
	DrawOverlay(screen *ebiten.Image, surface Rect)
}

// RunConfig configures Run and NewApp.
type RunConfig struct {
	Config Config
	// Script, when set, plays synthetic input from the first frame.
	Script *ScriptRunner
	// ExitWhenScriptDone stops the game once the script has finished and its
	// screenshots are written.
	ExitWhenScriptDone bool
	// Prefs stores the window size and fullscreen flag. Nil disables it.
	Prefs *PrefsStore
	// Sink receives every surface event.
	Sink EventSink
}

// screenTarget renders onto the part of the screen covered by the surface.
type screenTarget struct {
	screen *ebiten.Image
	sub    *ebiten.Image
	bounds Rect
}

func (t *screenTarget) set(screen *ebiten.Image, b Rect) {
	if screen == t.screen && b == t.bounds {
		return
	}
	t.screen, t.bounds = screen, b
	if screen == nil || b.Empty() {
		t.sub = nil
		return
	}
	t.sub = screen.SubImage(image.Rect(
		int(b.X), int(b.Y),
		int(b.X+b.Width), int(b.Y+b.Height),
	)).(*ebiten.Image)
}

func (t *screenTarget) Target() *ebiten.Image {
	return t.sub
}

// App implements ebiten.Game: it polls the surface, runs the optional script,
// updates the host and drives the dithering pipeline each frame.
type App struct {
	cfg  Config
	host SceneHost

	surface *Surface
	tracker *PointerTracker
	driver  *FrameDriver
	target  screenTarget
	shots   *Screenshotter
	script  *ScriptRunner
	exit    bool
	prefs   *PrefsStore
	fps     *fpsOverlay

	// interactive enables keyboard shortcuts; off in headless use.
	interactive bool
	stats       debugStats
	closed      bool
}

// NewApp wires a surface, pointer tracker and frame driver for host.
func NewApp(host SceneHost, rc RunConfig) *App {
	cfg := rc.Config
	if err := cfg.Validate(); err != nil {
		Logger().Warn("dither: invalid config, using defaults", "err", err)
		cfg = DefaultConfig()
	}

	a := &App{
		cfg:     cfg,
		host:    host,
		surface: NewSurface(cfg.Surface),
		tracker: NewPointerTracker(),
		shots:   NewScreenshotter(cfg.ScreenshotDir),
		script:  rc.Script,
		exit:    rc.ExitWhenScriptDone,
		prefs:   rc.Prefs,
	}
	a.driver = NewFrameDriver(NewEffectPipeline(cfg.PipelineOptions()), a.tracker, cfg.Grid)
	a.tracker.Bind(a.surface)
	a.driver.Bind(a.surface)
	if rc.Sink != nil {
		a.surface.SetEventSink(rc.Sink)
	}
	if cfg.ShowFPS {
		a.fps = newFPSOverlay()
	}
	return a
}

// Surface returns the interactive surface.
func (a *App) Surface() *Surface { return a.surface }

// Tracker returns the pointer tracker.
func (a *App) Tracker() *PointerTracker { return a.tracker }

// Driver returns the frame driver.
func (a *App) Driver() *FrameDriver { return a.driver }

// Config returns the effective configuration.
func (a *App) Config() Config { return a.cfg }

// Screenshot queues a labeled screenshot of the next drawn frame.
func (a *App) Screenshot(label string) {
	a.shots.Queue(label)
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if a.closed {
		return ebiten.Termination
	}
	start := time.Now()
	dt := 1.0 / float64(ebiten.TPS())

	if a.script != nil {
		// The script finished on an earlier frame, whose Draw already
		// captured its final state.
		if a.script.Done() && a.surface.Pending() == 0 && a.surface.Synthetic() {
			a.surface.ReleaseSynthetic()
		}
		a.script.Step(a.surface, a.shots)
		if a.exit && a.script.Done() && a.shots.Pending() == 0 && a.surface.Pending() == 0 {
			return ebiten.Termination
		}
	}
	a.surface.Poll()

	if a.interactive {
		a.handleKeys()
	}
	if u, ok := a.host.(HostUpdater); ok {
		u.Update(dt, a.tracker.Snapshot())
	}
	if a.fps != nil {
		a.fps.Update(dt, a.driver.Grid())
	}
	a.stats.updateTime = time.Since(start)
	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	if a.closed {
		return
	}
	start := time.Now()
	screen.Fill(a.cfg.ClearColor.toRGBA())

	bounds := a.surface.Bounds()
	a.target.set(screen, bounds)
	a.driver.Tick(&a.target, a.host.Scene(), a.host.Camera())

	if o, ok := a.host.(OverlayDrawer); ok {
		o.DrawOverlay(screen, bounds)
	}
	if a.fps != nil {
		a.fps.Draw(screen)
	}
	a.shots.Flush(screen)

	if a.cfg.Debug {
		a.stats.drawTime = time.Since(start)
		a.stats.state = a.driver.State()
		a.stats.grid = a.driver.Grid()
		a.stats.pointer = a.tracker.Snapshot()
		a.stats.pipeline = a.driver.Pipeline().Stats()
		debugLog(a.stats)
	}
}

// Layout implements ebiten.Game. The surface follows the window size, or the
// size of an injected resize while a script drives the surface; Ebitengine
// scales that screen into the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := a.surface.ScreenSize(outsideWidth, outsideHeight)
	a.surface.SetScreenSize(w, h)
	if a.prefs != nil && !ebiten.IsFullscreen() {
		a.prefs.SetWindowSize(outsideWidth, outsideHeight)
	}
	return w, h
}

func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		on := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(on)
		if a.prefs != nil {
			a.prefs.SetFullscreen(on)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		a.Screenshot("manual")
	}
}

// Close tears down the driver, tracker and surface, and saves preferences.
// Safe to call more than once.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.driver.Teardown()
	a.tracker.Destroy()
	a.surface.Teardown()
	if a.fps != nil {
		a.fps.Dispose()
	}
	if a.prefs != nil {
		return a.prefs.Save()
	}
	return nil
}

// closeAndLog closes a and logs a failure to save preferences.
func (a *App) closeAndLog() {
	if err := a.Close(); err != nil {
		Logger().Warn("dither: window preferences not saved", "err", err)
	}
}

// Run opens a window for host and blocks until it closes.
func Run(host SceneHost, rc RunConfig) error {
	a := NewApp(host, rc)
	a.interactive = true
	defer a.closeAndLog()

	w := a.cfg.Window
	width, height := w.Width, w.Height
	if a.prefs != nil {
		p := a.prefs.Prefs()
		if p.WindowWidth > 0 && p.WindowHeight > 0 {
			width, height = p.WindowWidth, p.WindowHeight
		}
		ebiten.SetFullscreen(p.Fullscreen)
	}
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(width, height)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	Logger().Info("dither: running", "width", width, "height", height)
	return ebiten.RunGame(a)
}
