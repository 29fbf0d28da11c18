package dither

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridEffect is a post-processing effect driven by a single grid-size
// parameter.
type GridEffect interface {
	// Apply renders src into dst with the effect.
	Apply(src, dst *ebiten.Image)
	// SetGridSize updates the effect parameter. Must not allocate.
	SetGridSize(size float64)
	// GridSize returns the current parameter.
	GridSize() float64
}

// --- Kage shader source ---
// The shader uses //kage:unit pixels. Ebitengine uses premultiplied alpha;
// the shader un-premultiplies before thresholding and re-premultiplies output.

// ditherShaderSrc is an ordered (4x4 Bayer) dither over square cells of
// Params.x * Params.y pixels. Each cell samples the source at its center and
// thresholds against the Bayer value for the cell's position. Params.z > 0
// thresholds luminance (black and white output) instead of each channel.
// A grid size of 1 or less passes the source through unchanged.
const ditherShaderSrc = `//kage:unit pixels
package main

// x: grid size, y: pixel size ratio, z: grayscale flag, w: unused.
var Params vec4

func bayer2(p vec2) float {
	return 2*mod(p.x+p.y, 2) + p.y
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if Params.x <= 1 {
		return c
	}
	cell := max(Params.x*Params.y, 1)
	origin := imageSrc0Origin()
	cellPos := floor((src - origin) / cell)
	s := imageSrc0At(origin + (cellPos+0.5)*cell)
	if s.a == 0 {
		return vec4(0)
	}
	straight := s.rgb / s.a
	p := mod(cellPos, 4)
	t := (4*bayer2(mod(p, 2)) + bayer2(floor(p/2)) + 0.5) / 16
	rgb := step(vec3(t), straight)
	if Params.z > 0 {
		lum := dot(straight, vec3(0.299, 0.587, 0.114))
		rgb = vec3(step(t, lum))
	}
	return vec4(rgb*s.a, s.a)
}
`

// --- Lazy shader compilation (Draw runs on one goroutine) ---

var ditherShader *ebiten.Shader

func ensureDitherShader() *ebiten.Shader {
	if ditherShader == nil {
		s, err := ebiten.NewShader([]byte(ditherShaderSrc))
		if err != nil {
			panic("dither: failed to compile dithering shader: " + err.Error())
		}
		ditherShader = s
	}
	return ditherShader
}

// --- DitherEffect ---

// DitherEffectOptions configures a DitherEffect.
type DitherEffectOptions struct {
	// GridSize is the initial cell size in grid units.
	GridSize float64
	// PixelSizeRatio scales grid units to screen pixels. Zero means 1.
	PixelSizeRatio float64
	// Grayscale thresholds luminance instead of each color channel.
	Grayscale bool
}

// DitherEffect applies a screen-space ordered dither using a Kage shader.
type DitherEffect struct {
	gridSize       float64
	pixelSizeRatio float64
	grayscale      bool
	uniforms       map[string]any
	paramsF32      [4]float32 // persistent buffer
	paramsSlice    []float32  // persistent slice header pointing into paramsF32
	shaderOp       ebiten.DrawRectShaderOptions
}

// NewDitherEffect creates a dithering effect. The shader is compiled on the
// first Apply.
func NewDitherEffect(opts DitherEffectOptions) *DitherEffect {
	ratio := opts.PixelSizeRatio
	if ratio <= 0 {
		ratio = 1
	}
	f := &DitherEffect{
		pixelSizeRatio: ratio,
		grayscale:      opts.Grayscale,
		uniforms:       make(map[string]any, 1),
	}
	f.paramsSlice = f.paramsF32[:]
	f.uniforms["Params"] = f.paramsSlice
	f.paramsF32[1] = float32(ratio)
	if opts.Grayscale {
		f.paramsF32[2] = 1
	}
	f.SetGridSize(opts.GridSize)
	return f
}

// SetGridSize updates the cell size. Writes in-place into the persistent
// uniform buffer, so it is safe to call every frame.
func (f *DitherEffect) SetGridSize(size float64) {
	f.gridSize = size
	f.paramsF32[0] = float32(size)
}

// GridSize returns the current cell size in grid units.
func (f *DitherEffect) GridSize() float64 { return f.gridSize }

// PixelSizeRatio returns the grid-unit to pixel scale.
func (f *DitherEffect) PixelSizeRatio() float64 { return f.pixelSizeRatio }

// Grayscale reports whether luminance thresholding is enabled.
func (f *DitherEffect) Grayscale() bool { return f.grayscale }

// Apply renders the dithered src into dst. dst may be a sub-image; drawing is
// offset to its origin.
func (f *DitherEffect) Apply(src, dst *ebiten.Image) {
	shader := ensureDitherShader()
	bounds := src.Bounds()
	origin := dst.Bounds().Min
	f.shaderOp.GeoM.Reset()
	f.shaderOp.GeoM.Translate(float64(origin.X), float64(origin.Y))
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}
