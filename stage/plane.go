package stage

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// planeCells is the number of grid cells per side. Subdividing keeps the
// affine texture mapping of each triangle close to perspective-correct.
const planeCells = 8

// DefaultPlaneRotation is the plane's rotation about the Y axis in radians.
const DefaultPlaneRotation = 0.15

// Plane is a textured quad one unit tall, as wide as its image's aspect
// ratio, centered on the origin.
type Plane struct {
	// RotationY is the rotation about the vertical axis in radians.
	RotationY float64
	// Scale is a uniform scale; see FitTo.
	Scale float64

	img     *ebiten.Image
	aspect  float64
	local   []mgl64.Vec3 // untransformed vertex positions
	verts   []ebiten.Vertex
	indices []uint16
	op      ebiten.DrawTrianglesOptions
}

// NewPlane creates a plane textured with img.
func NewPlane(img *ebiten.Image) *Plane {
	b := img.Bounds()
	imgW, imgH := float64(b.Dx()), float64(b.Dy())
	aspect := 1.0
	if imgH > 0 {
		aspect = imgW / imgH
	}

	vcols := planeCells + 1
	p := &Plane{
		RotationY: DefaultPlaneRotation,
		Scale:     1,
		img:       img,
		aspect:    aspect,
		local:     make([]mgl64.Vec3, vcols*vcols),
		verts:     make([]ebiten.Vertex, vcols*vcols),
		indices:   make([]uint16, planeCells*planeCells*6),
	}
	for r := 0; r < vcols; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			u := float64(c) / planeCells
			v := float64(r) / planeCells
			p.local[idx] = mgl64.Vec3{(u - 0.5) * aspect, 0.5 - v, 0}
			p.verts[idx] = ebiten.Vertex{
				SrcX: float32(float64(b.Min.X) + u*imgW),
				SrcY: float32(float64(b.Min.Y) + v*imgH),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			}
		}
	}
	ii := 0
	for r := 0; r < planeCells; r++ {
		for c := 0; c < planeCells; c++ {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			p.indices[ii+0] = tl
			p.indices[ii+1] = bl
			p.indices[ii+2] = tr
			p.indices[ii+3] = tr
			p.indices[ii+4] = bl
			p.indices[ii+5] = br
			ii += 6
		}
	}
	p.op.Filter = ebiten.FilterLinear
	return p
}

// Image returns the plane's texture.
func (p *Plane) Image() *ebiten.Image { return p.img }

// Aspect returns the texture's width over height.
func (p *Plane) Aspect() float64 { return p.aspect }

// FitTo sets Scale for a surface of the given size in pixels.
func (p *Plane) FitTo(width, height float64) {
	p.Scale = math.Max(0.2, math.Min(width, height)/800*2)
}

// Model returns the plane's model matrix.
func (p *Plane) Model() mgl64.Mat4 {
	return mgl64.HomogRotate3DY(p.RotationY).Mul4(mgl64.Scale3D(p.Scale, p.Scale, p.Scale))
}

// Corners returns the world-space corners in the order top-left, top-right,
// bottom-right, bottom-left.
func (p *Plane) Corners() [4]mgl64.Vec3 {
	m := p.Model()
	hw := p.aspect / 2
	return [4]mgl64.Vec3{
		mgl64.TransformCoordinate(mgl64.Vec3{-hw, 0.5, 0}, m),
		mgl64.TransformCoordinate(mgl64.Vec3{hw, 0.5, 0}, m),
		mgl64.TransformCoordinate(mgl64.Vec3{hw, -0.5, 0}, m),
		mgl64.TransformCoordinate(mgl64.Vec3{-hw, -0.5, 0}, m),
	}
}

// Draw projects the plane through cam and draws it onto dst. Nothing is
// drawn if any vertex falls behind the eye.
func (p *Plane) Draw(dst *ebiten.Image, cam *Camera) {
	m := p.Model()
	for i, lp := range p.local {
		s, ok := cam.Project(mgl64.TransformCoordinate(lp, m))
		if !ok {
			return
		}
		p.verts[i].DstX = float32(s.X)
		p.verts[i].DstY = float32(s.Y)
	}
	dst.DrawTriangles(p.verts, p.indices, p.img, &p.op)
}

// PatternImage generates a grayscale texture of soft concentric bands over a
// diagonal gradient. Smooth tones like these show the dithering well.
func PatternImage(width, height int) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	cx, cy := float64(width)/2, float64(height)/2
	maxR := math.Hypot(cx, cy)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			r := math.Hypot(dx, dy) / maxR
			bands := 0.5 + 0.5*math.Cos(r*math.Pi*6)
			ramp := (float64(x)/float64(width) + float64(y)/float64(height)) / 2
			v := 0.15 + 0.7*(0.6*bands*(1-r)+0.4*ramp)
			g := uint8(math.Max(0, math.Min(1, v))*255 + 0.5)
			img.SetRGBA(x, y, color.RGBA{g, g, g, 255})
		}
	}
	return ebiten.NewImageFromImage(img)
}
