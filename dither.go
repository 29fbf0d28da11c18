package dither

import (
	"image/color"
	"math"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// ColorWhite is the default clear color of the base render pass.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. X and Y are the left and top edges.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// HalfDiagonal returns the distance from the center to any corner.
func (r Rect) HalfDiagonal() float64 {
	return math.Hypot(r.Width/2, r.Height/2)
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Scene is anything the base render pass can draw. Implementations are
// compared by identity, so they must be pointer types.
type Scene interface {
	// Draw renders the scene into dst as seen through cam.
	Draw(dst *ebiten.Image, cam Camera)
}

// Camera is the view the base render pass hands to a Scene. Implementations
// are compared by identity, so they must be pointer types.
type Camera interface {
	// SetViewport tells the camera the screen-space rectangle it renders into,
	// in the coordinates of the destination image.
	SetViewport(viewport Rect)
}

// SceneHost supplies the current scene and camera on every tick. Either may be
// nil while the host is still loading.
type SceneHost interface {
	Scene() Scene
	Camera() Camera
}

// Renderer is the output surface the final pass draws onto. Like Scene and
// Camera it is compared by identity.
type Renderer interface {
	Target() *ebiten.Image
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// present reports whether v holds something usable. A typed nil pointer,
// map, slice, func or chan stored in an interface counts as absent.
func present(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// sameValue is a == b for interface values that never panics. Values whose
// dynamic type is not comparable are never the same.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.ValueOf(a).Comparable() {
		return false
	}
	return a == b
}
