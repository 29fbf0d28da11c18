package stage

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/dither"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/gofont/goregular"
)

// Ring layout and intro timing, in pixels and seconds.
const (
	referenceWidth = 1200.0
	fontPerRef     = 120.0
	ringPerRef     = 140.0

	introDepth       = 1500.0
	introDepthTime   = 4.0
	introSpinTime    = 2.0
	introDelay       = 2.0
	introStagger     = 0.15
	followFactor     = 0.3
	followLagPerRing = 0.2
)

// ColorLightGray is the default ring text color.
var ColorLightGray = color.RGBA{211, 211, 211, 255}

// maskBlend keeps the destination where the source has alpha.
var maskBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorZero,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

var (
	defaultSourceOnce sync.Once
	defaultSource     *text.GoTextFaceSource
	defaultSourceErr  error
)

// DefaultFaceSource returns the Go Regular font, parsed once.
func DefaultFaceSource() (*text.GoTextFaceSource, error) {
	defaultSourceOnce.Do(func() {
		defaultSource, defaultSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if defaultSourceErr != nil {
			defaultSourceErr = fmt.Errorf("stage: failed to parse font: %w", defaultSourceErr)
		}
	})
	return defaultSource, defaultSourceErr
}

// ring is one annulus of RingText.
type ring struct {
	index        int
	inner, outer float64
	delay        float64

	depth, spin           float64
	depthTween, spinTween *gween.Tween
	depthDone, spinDone   bool
	started               bool

	offset    dither.Vec2 // current follow offset in pixels
	goal      dither.Vec2
	followX   *gween.Tween
	followY   *gween.Tween
	following bool
}

func newRing(index int, size float64) ring {
	r := ring{
		index: index,
		inner: float64(index) * size,
		outer: float64(index)*size + size,
		delay: introDelay + float64(index)*introStagger,
		depth: introDepth,
		spin:  math.Pi,
	}
	r.depthTween = gween.New(introDepth, 0, introDepthTime, ease.InOutExpo)
	r.spinTween = gween.New(math.Pi, 0, introSpinTime, ease.OutExpo)
	return r
}

func (r *ring) introDone() bool { return r.depthDone && r.spinDone }

func (r *ring) finishIntro() {
	r.started, r.depthDone, r.spinDone = true, true, true
	r.depth, r.spin = 0, 0
}

// updateIntro advances the intro. elapsed is the time since the intro began.
func (r *ring) updateIntro(elapsed, dt float64) {
	if r.introDone() || elapsed < r.delay {
		return
	}
	if !r.started {
		r.started = true
		dt = elapsed - r.delay
	}
	if !r.depthDone {
		val, done := r.depthTween.Update(float32(dt))
		r.depth, r.depthDone = float64(val), done
	}
	if !r.spinDone {
		val, done := r.spinTween.Update(float32(dt))
		r.spin, r.spinDone = float64(val), done
	}
}

// updateFollow moves the offset toward goal over a lag that grows with the
// ring index. The tween restarts whenever goal changes.
func (r *ring) updateFollow(goal dither.Vec2, dt float64) {
	lag := float32(followLagPerRing * float64(r.index))
	if goal != r.goal {
		r.goal = goal
		if lag <= 0 {
			r.offset, r.following = goal, false
			return
		}
		r.followX = gween.New(float32(r.offset.X), float32(goal.X), lag, ease.OutQuad)
		r.followY = gween.New(float32(r.offset.Y), float32(goal.Y), lag, ease.OutQuad)
		r.following = true
	}
	if !r.following {
		return
	}
	x, doneX := r.followX.Update(float32(dt))
	y, doneY := r.followY.Update(float32(dt))
	r.offset = dither.Vec2{X: float64(x), Y: float64(y)}
	if doneX && doneY {
		r.following = false
	}
}

// RingText repeats a line of text inside concentric rings. Each ring flies in
// from depth while spinning, staggered outward; afterwards every ring's text
// drifts away from the pointer, outer rings lagging behind inner ones.
type RingText struct {
	Text  string
	Color color.Color

	face     *text.GoTextFace
	rings    []ring
	width    float64
	height   float64
	ringSize float64

	elapsed   float64
	skipIntro bool
	pointer   dither.Vec2 // pointer offset from the center, in pixels

	layer  *ebiten.Image
	mask   *ebiten.Image
	textOp text.DrawOptions
	maskOp ebiten.DrawImageOptions
	outOp  ebiten.DrawImageOptions
}

// NewRingText creates rings showing s in Go Regular.
func NewRingText(s string) (*RingText, error) {
	src, err := DefaultFaceSource()
	if err != nil {
		return nil, err
	}
	rt := &RingText{
		Text:  s,
		Color: ColorLightGray,
		face:  &text.GoTextFace{Source: src},
	}
	rt.textOp.PrimaryAlign = text.AlignCenter
	rt.textOp.SecondaryAlign = text.AlignCenter
	rt.maskOp.Blend = maskBlend
	return rt, nil
}

// RingSize returns the width of each ring in pixels.
func (rt *RingText) RingSize() float64 { return rt.ringSize }

// FontSize returns the text size in pixels.
func (rt *RingText) FontSize() float64 { return rt.face.Size }

// Len returns the number of rings.
func (rt *RingText) Len() int { return len(rt.rings) }

// RingBounds returns the inner and outer radius of ring i.
func (rt *RingText) RingBounds(i int) (inner, outer float64) {
	return rt.rings[i].inner, rt.rings[i].outer
}

// Layout sizes the rings for an area of the given size. Rings that already
// finished their intro stay finished.
func (rt *RingText) Layout(width, height float64) {
	if width == rt.width && height == rt.height {
		return
	}
	rt.width, rt.height = width, height
	rt.face.Size = math.Max(1, math.Round(width/referenceWidth*fontPerRef))
	rt.ringSize = width / referenceWidth * ringPerRef
	if rt.ringSize <= 0 {
		rt.rings = rt.rings[:0]
		return
	}

	n := int(math.Ceil(math.Max(width, height)/rt.ringSize + 1))
	finished := rt.skipIntro || (len(rt.rings) > 0 && rt.IntroDone())
	old := rt.rings
	rt.rings = make([]ring, n)
	for i := range rt.rings {
		var r ring
		if i < len(old) {
			r = old[i]
			r.inner = float64(i) * rt.ringSize
			r.outer = r.inner + rt.ringSize
		} else {
			r = newRing(i, rt.ringSize)
			if finished {
				r.finishIntro()
			}
		}
		rt.rings[i] = r
	}
}

// SkipIntro puts every ring in its final position.
func (rt *RingText) SkipIntro() {
	rt.skipIntro = true
	for i := range rt.rings {
		rt.rings[i].finishIntro()
	}
}

// IntroDone reports whether every ring has finished its intro.
func (rt *RingText) IntroDone() bool {
	for i := range rt.rings {
		if !rt.rings[i].introDone() {
			return false
		}
	}
	return true
}

// SetPointer sets the pointer position relative to the center of the area.
func (rt *RingText) SetPointer(offset dither.Vec2) {
	rt.pointer = offset
}

// Update advances the intro and the pointer follow by dt seconds.
func (rt *RingText) Update(dt float64) {
	rt.elapsed += dt
	goal := dither.Vec2{X: -followFactor * rt.pointer.X, Y: -followFactor * rt.pointer.Y}
	for i := range rt.rings {
		r := &rt.rings[i]
		if !r.introDone() {
			r.updateIntro(rt.elapsed, dt)
			continue
		}
		r.updateFollow(goal, dt)
	}
}

// RingState reports ring i's depth, spin and follow offset.
func (rt *RingText) RingState(i int) (depth, spin float64, offset dither.Vec2) {
	r := &rt.rings[i]
	return r.depth, r.spin, r.offset
}

// Draw renders every ring into the viewport of cam on dst. Rings deeper than
// the eye's focal length shrink toward the center.
func (rt *RingText) Draw(dst *ebiten.Image, cam *Camera) {
	vp := cam.Viewport()
	if vp.Empty() || len(rt.rings) == 0 || rt.Text == "" {
		return
	}
	w, h := int(vp.Width), int(vp.Height)
	rt.ensureImages(w, h)

	cx, cy := vp.Width/2, vp.Height/2
	focal := cam.FocalLength()

	rt.textOp.ColorScale.Reset()
	rt.textOp.ColorScale.ScaleWithColor(rt.Color)
	rt.outOp.GeoM.Reset()
	rt.outOp.GeoM.Translate(vp.X, vp.Y)

	for i := range rt.rings {
		r := &rt.rings[i]
		scale := focal / (focal + r.depth)

		rt.layer.Clear()
		rt.textOp.GeoM.Reset()
		rt.textOp.GeoM.Rotate(r.spin)
		rt.textOp.GeoM.Scale(scale, scale)
		rt.textOp.GeoM.Translate(cx+r.offset.X*scale, cy+r.offset.Y*scale)
		text.Draw(rt.layer, rt.Text, rt.face, &rt.textOp)

		rt.mask.Clear()
		radius := (r.inner + r.outer) / 2
		vector.StrokeCircle(rt.mask, float32(cx), float32(cy), float32(radius),
			float32(rt.ringSize), color.White, true)
		rt.layer.DrawImage(rt.mask, &rt.maskOp)

		dst.DrawImage(rt.layer, &rt.outOp)
	}
}

func (rt *RingText) ensureImages(w, h int) {
	if rt.layer != nil {
		b := rt.layer.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		rt.layer.Deallocate()
		rt.mask.Deallocate()
	}
	rt.layer = ebiten.NewImage(w, h)
	rt.mask = ebiten.NewImage(w, h)
}

// Dispose frees the offscreen images.
func (rt *RingText) Dispose() {
	if rt.layer != nil {
		rt.layer.Deallocate()
		rt.mask.Deallocate()
		rt.layer, rt.mask = nil, nil
	}
}
