package stage

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/dither"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OrbitLimit bounds yaw and pitch in both directions, in radians.
const OrbitLimit = math.Pi / 4

// orbitAnim holds active orbit tweens for yaw and pitch.
type orbitAnim struct {
	tweenYaw   *gween.Tween
	tweenPitch *gween.Tween
	doneYaw    bool
	donePitch  bool
}

// Camera is a perspective camera orbiting the origin. It implements
// dither.Camera.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Distance from the eye to the origin.
	Distance  float64
	Near, Far float64

	yaw, pitch float64
	viewport   dither.Rect

	viewProj mgl64.Mat4
	// FOV and Distance the cached matrix was built with.
	builtFOV, builtDist float64
	dirty               bool

	orbit *orbitAnim
}

// NewCamera returns a camera four units in front of the origin with a 45°
// field of view.
func NewCamera() *Camera {
	return &Camera{
		FOV:      45,
		Distance: 4,
		Near:     0.1,
		Far:      100,
		dirty:    true,
	}
}

// SetViewport implements dither.Camera.
func (c *Camera) SetViewport(viewport dither.Rect) {
	if viewport != c.viewport {
		c.viewport = viewport
		c.dirty = true
	}
}

// Viewport returns the rectangle last passed to SetViewport.
func (c *Camera) Viewport() dither.Rect { return c.viewport }

// Aspect returns the viewport width over height, or 1 for an empty viewport.
func (c *Camera) Aspect() float64 {
	if c.viewport.Empty() {
		return 1
	}
	return c.viewport.Width / c.viewport.Height
}

// Yaw returns the rotation about the vertical axis in radians.
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the elevation in radians.
func (c *Camera) Pitch() float64 { return c.pitch }

// Orbit rotates the camera by the given deltas, cancelling any OrbitTo
// animation. Angles are clamped to ±OrbitLimit.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.orbit = nil
	c.setAngles(c.yaw+dYaw, c.pitch+dPitch)
}

// OrbitTo animates yaw and pitch to the given angles over duration seconds.
func (c *Camera) OrbitTo(yaw, pitch float64, duration float32, easeFn ease.TweenFunc) {
	yaw, pitch = clampOrbit(yaw), clampOrbit(pitch)
	c.orbit = &orbitAnim{
		tweenYaw:   gween.New(float32(c.yaw), float32(yaw), duration, easeFn),
		tweenPitch: gween.New(float32(c.pitch), float32(pitch), duration, easeFn),
	}
}

// Animating reports whether an OrbitTo animation is running.
func (c *Camera) Animating() bool { return c.orbit != nil }

// Update advances the orbit animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.orbit == nil {
		return
	}
	yaw, pitch := c.yaw, c.pitch
	if !c.orbit.doneYaw {
		val, done := c.orbit.tweenYaw.Update(dt)
		yaw = float64(val)
		c.orbit.doneYaw = done
	}
	if !c.orbit.donePitch {
		val, done := c.orbit.tweenPitch.Update(dt)
		pitch = float64(val)
		c.orbit.donePitch = done
	}
	if c.orbit.doneYaw && c.orbit.donePitch {
		c.orbit = nil
	}
	c.setAngles(yaw, pitch)
}

func (c *Camera) setAngles(yaw, pitch float64) {
	yaw, pitch = clampOrbit(yaw), clampOrbit(pitch)
	if yaw != c.yaw || pitch != c.pitch {
		c.yaw, c.pitch = yaw, pitch
		c.dirty = true
	}
}

func clampOrbit(a float64) float64 {
	return math.Max(-OrbitLimit, math.Min(OrbitLimit, a))
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() mgl64.Vec3 {
	sy, cy := math.Sincos(c.yaw)
	sp, cp := math.Sincos(c.pitch)
	return mgl64.Vec3{sy * cp, sp, cy * cp}.Mul(c.Distance)
}

// ViewProjection returns the combined view and projection matrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	if c.dirty || c.FOV != c.builtFOV || c.Distance != c.builtDist {
		view := mgl64.LookAtV(c.Eye(), mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
		proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect(), c.Near, c.Far)
		c.viewProj = proj.Mul4(view)
		c.builtFOV, c.builtDist = c.FOV, c.Distance
		c.dirty = false
	}
	return c.viewProj
}

// FocalLength returns the distance in pixels from the eye to a screen-aligned
// plane on which one world unit covers one pixel.
func (c *Camera) FocalLength() float64 {
	return c.viewport.Height / 2 / math.Tan(mgl64.DegToRad(c.FOV)/2)
}

// Project maps a world-space point to viewport coordinates. ok is false for
// points behind the eye.
func (c *Camera) Project(p mgl64.Vec3) (screen dither.Vec2, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return dither.Vec2{}, false
	}
	ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
	return dither.Vec2{
		X: c.viewport.X + (ndcX+1)/2*c.viewport.Width,
		Y: c.viewport.Y + (1-ndcY)/2*c.viewport.Height,
	}, true
}
