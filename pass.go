package dither

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Pass is one stage of a Composer's chain. Render reads the previous stage's
// output from src and writes its own output to dst. dst may be a sub-image
// whose origin is not (0, 0).
type Pass interface {
	Render(src, dst *ebiten.Image)
	// Dispose releases resources held by the pass. Called once when the pass
	// is removed from its composer.
	Dispose()
}

// --- RenderPass ---

// RenderPass draws a scene through a camera. It ignores its input and
// starts the chain from a cleared buffer.
type RenderPass struct {
	ClearColor Color

	scene    Scene
	camera   Camera
	disposed bool
}

// NewRenderPass creates a base pass for the given scene and camera.
func NewRenderPass(scene Scene, cam Camera, clear Color) *RenderPass {
	return &RenderPass{ClearColor: clear, scene: scene, camera: cam}
}

// Scene returns the scene this pass draws.
func (p *RenderPass) Scene() Scene { return p.scene }

// Camera returns the camera this pass draws through.
func (p *RenderPass) Camera() Camera { return p.camera }

// Render clears dst, points the camera at it and draws the scene.
func (p *RenderPass) Render(_, dst *ebiten.Image) {
	if p.disposed || p.scene == nil || p.camera == nil {
		return
	}
	dst.Fill(p.ClearColor.toRGBA())
	b := dst.Bounds()
	p.camera.SetViewport(Rect{
		X:      float64(b.Min.X),
		Y:      float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	})
	p.scene.Draw(dst, p.camera)
}

// Dispose drops the scene and camera references.
func (p *RenderPass) Dispose() {
	p.disposed = true
	p.scene = nil
	p.camera = nil
}

// --- EffectPass ---

// EffectPass runs a GridEffect over the previous stage's output.
type EffectPass struct {
	effect   GridEffect
	disposed bool
}

// NewEffectPass wraps an effect in a pass.
func NewEffectPass(effect GridEffect) *EffectPass {
	return &EffectPass{effect: effect}
}

// Effect returns the wrapped effect, or nil after Dispose.
func (p *EffectPass) Effect() GridEffect { return p.effect }

// Render applies the effect from src into dst.
func (p *EffectPass) Render(src, dst *ebiten.Image) {
	if p.disposed || p.effect == nil {
		return
	}
	p.effect.Apply(src, dst)
}

// Dispose drops the effect.
func (p *EffectPass) Dispose() {
	p.disposed = true
	p.effect = nil
}
