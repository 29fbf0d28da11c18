package stage

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/dither"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Footer animation, in seconds and pixels.
const (
	footerSize     = 20.0
	footerDelay    = 0.3
	footerDuration = 1.2
	footerRise     = 50.0
	captionSize    = 16.0
	captionMargin  = 16.0
	resetDuration  = 0.6
)

// Input is the pointer and keyboard state the host reacts to.
type Input interface {
	// Drag reports whether the primary button is held and the cursor position.
	Drag() (pressed bool, x, y int)
	// ResetView reports whether the view reset was requested this tick.
	ResetView() bool
}

type ebitenInput struct{}

func (ebitenInput) Drag() (bool, int, int) {
	x, y := ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y
}

func (ebitenInput) ResetView() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

// Options configures NewHost.
type Options struct {
	// Text is repeated in the rings. Empty disables the rings.
	Text string
	// Footer is drawn below the surface. Empty draws nothing.
	Footer string
	// Caption is drawn in the top-left corner of the window.
	Caption string
	// TexturePath is an image file for the plane, decoded in the background.
	// The host has no scene until it is ready. Empty uses PatternImage.
	TexturePath string
	// SkipIntro starts the rings and footer in their final positions.
	SkipIntro bool
	// Input overrides the mouse and keyboard. Nil reads Ebitengine's input.
	Input Input
}

type textureResult struct {
	img image.Image
	err error
}

// Host supplies the stage scene and camera to dither. It implements
// dither.SceneHost, dither.HostUpdater and dither.OverlayDrawer.
type Host struct {
	opts   Options
	camera *Camera
	rings  *RingText
	scene  *Scene
	input  Input

	loading <-chan textureResult

	dragging     bool
	dragX, dragY int

	overlayFace *text.GoTextFace
	captionFace *text.GoTextFace
	footer      footerAnim
	textOp      text.DrawOptions
}

// footerAnim fades, scales and raises the footer into place.
type footerAnim struct {
	tween    *gween.Tween
	elapsed  float64
	progress float64
	done     bool
}

func (f *footerAnim) update(dt float64) {
	if f.done {
		return
	}
	f.elapsed += dt
	if f.elapsed < footerDelay {
		return
	}
	step := dt
	if f.elapsed-dt < footerDelay {
		step = f.elapsed - footerDelay
	}
	val, done := f.tween.Update(float32(step))
	f.progress, f.done = float64(val), done
}

func (f *footerAnim) finish() {
	f.progress, f.done = 1, true
}

// NewHost builds the stage. With a TexturePath the scene appears once the
// image has been decoded; a file that fails to load falls back to the
// generated pattern.
func NewHost(opts Options) (*Host, error) {
	src, err := DefaultFaceSource()
	if err != nil {
		return nil, err
	}
	h := &Host{
		opts:        opts,
		camera:      NewCamera(),
		input:       opts.Input,
		overlayFace: &text.GoTextFace{Source: src, Size: footerSize},
		captionFace: &text.GoTextFace{Source: src, Size: captionSize},
		footer:      footerAnim{tween: gween.New(0, 1, footerDuration, ease.OutExpo)},
	}
	if h.input == nil {
		h.input = ebitenInput{}
	}
	if opts.Text != "" {
		h.rings, err = NewRingText(opts.Text)
		if err != nil {
			return nil, err
		}
		if opts.SkipIntro {
			h.rings.SkipIntro()
		}
	}
	if opts.SkipIntro {
		h.footer.finish()
	}

	if opts.TexturePath == "" {
		h.setTexture(PatternImage(640, 400))
		return h, nil
	}
	ch := make(chan textureResult, 1)
	h.loading = ch
	go func() {
		img, err := decodeTexture(opts.TexturePath)
		ch <- textureResult{img: img, err: err}
	}()
	return h, nil
}

func decodeTexture(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stage: open texture: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("stage: decode texture %q: %w", path, err)
	}
	return img, nil
}

func (h *Host) setTexture(img *ebiten.Image) {
	h.scene = NewScene(NewPlane(img), h.rings)
}

// Ready reports whether the scene is loaded.
func (h *Host) Ready() bool { return h.scene != nil }

// Scene implements dither.SceneHost. It is nil until the texture is loaded.
func (h *Host) Scene() dither.Scene {
	if h.scene == nil {
		return nil
	}
	return h.scene
}

// Camera implements dither.SceneHost. It is nil until the texture is loaded.
func (h *Host) Camera() dither.Camera {
	if h.scene == nil {
		return nil
	}
	return h.camera
}

// OrbitCamera returns the stage camera.
func (h *Host) OrbitCamera() *Camera { return h.camera }

// Rings returns the ring text, or nil when disabled.
func (h *Host) Rings() *RingText { return h.rings }

// Update implements dither.HostUpdater.
func (h *Host) Update(dt float64, pointer dither.PointerState) {
	h.pollTexture()
	h.updateDrag(pointer)
	if h.input.ResetView() {
		h.camera.OrbitTo(0, 0, resetDuration, ease.OutExpo)
	}
	h.camera.Update(float32(dt))

	if h.rings != nil {
		if !pointer.Bounds.Empty() {
			c := pointer.Bounds.Center()
			h.rings.SetPointer(dither.Vec2{X: pointer.Position.X - c.X, Y: pointer.Position.Y - c.Y})
		}
		h.rings.Update(dt)
	}
	h.footer.update(dt)
}

func (h *Host) pollTexture() {
	if h.loading == nil {
		return
	}
	select {
	case res := <-h.loading:
		h.loading = nil
		if res.err != nil {
			dither.Logger().Warn("stage: texture unavailable, using pattern", "err", res.err)
			h.setTexture(PatternImage(640, 400))
			return
		}
		h.setTexture(ebiten.NewImageFromImage(res.img))
		dither.Logger().Info("stage: texture loaded", "path", h.opts.TexturePath)
	default:
	}
}

// updateDrag orbits the camera while the button is held over the surface.
// A full surface height of drag turns the camera by π.
func (h *Host) updateDrag(pointer dither.PointerState) {
	pressed, x, y := h.input.Drag()
	if !pressed {
		h.dragging = false
		return
	}
	if !h.dragging {
		h.dragging = pointer.InsideSurface
		h.dragX, h.dragY = x, y
		return
	}
	if pointer.Bounds.Height <= 0 {
		return
	}
	k := math.Pi / pointer.Bounds.Height
	h.camera.Orbit(-float64(x-h.dragX)*k, float64(y-h.dragY)*k)
	h.dragX, h.dragY = x, y
}

// DrawOverlay implements dither.OverlayDrawer. The caption sits in the
// top-left corner and the footer is centered in the space below the surface.
func (h *Host) DrawOverlay(screen *ebiten.Image, surface dither.Rect) {
	if h.opts.Caption != "" {
		h.textOp.GeoM.Reset()
		h.textOp.GeoM.Translate(captionMargin, captionMargin)
		h.textOp.ColorScale.Reset()
		h.textOp.ColorScale.ScaleWithColor(ColorLightGray)
		h.textOp.PrimaryAlign = text.AlignStart
		h.textOp.SecondaryAlign = text.AlignStart
		text.Draw(screen, h.opts.Caption, h.captionFace, &h.textOp)
	}

	if h.opts.Footer == "" || h.footer.progress <= 0 {
		return
	}
	p := h.footer.progress
	x, y := h.footerAnchor(screen, surface)
	h.textOp.GeoM.Reset()
	h.textOp.GeoM.Scale(p, p)
	h.textOp.GeoM.Translate(x, y+(1-p)*footerRise)
	h.textOp.ColorScale.Reset()
	h.textOp.ColorScale.ScaleWithColor(ColorLightGray)
	h.textOp.ColorScale.ScaleAlpha(float32(p))
	h.textOp.PrimaryAlign = text.AlignCenter
	h.textOp.SecondaryAlign = text.AlignCenter
	text.Draw(screen, h.opts.Footer, h.overlayFace, &h.textOp)
}

// footerAnchor returns the footer center. Without room below the surface the
// footer sits near the bottom of the surface instead.
func (h *Host) footerAnchor(screen *ebiten.Image, surface dither.Rect) (x, y float64) {
	b := screen.Bounds()
	x = surface.X + surface.Width/2
	bottom := surface.Y + surface.Height
	if room := float64(b.Max.Y) - bottom; room >= footerSize*2 {
		return x, bottom + room/2
	}
	return x, bottom - footerSize*2
}

// FooterProgress returns the footer animation progress in [0, 1].
func (h *Host) FooterProgress() float64 { return h.footer.progress }

// Dispose frees the ring images.
func (h *Host) Dispose() {
	if h.rings != nil {
		h.rings.Dispose()
	}
}
