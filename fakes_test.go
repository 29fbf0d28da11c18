package dither

import "github.com/hajimehoshi/ebiten/v2"

type fakeScene struct {
	draws int
}

func (s *fakeScene) Draw(_ *ebiten.Image, _ Camera) { s.draws++ }

type fakeCamera struct {
	viewports []Rect
}

func (c *fakeCamera) SetViewport(v Rect) { c.viewports = append(c.viewports, v) }

type fakeEffect struct {
	size    float64
	applies int
	sets    int
}

func (e *fakeEffect) Apply(_, _ *ebiten.Image) { e.applies++ }
func (e *fakeEffect) SetGridSize(size float64) { e.size = size; e.sets++ }
func (e *fakeEffect) GridSize() float64         { return e.size }

type fakeRenderer struct {
	img *ebiten.Image
}

func (r *fakeRenderer) Target() *ebiten.Image { return r.img }

// fakeEffects records every effect a pipeline builds.
type fakeEffects struct {
	built []*fakeEffect
}

func (f *fakeEffects) New(gridSize float64) GridEffect {
	e := &fakeEffect{size: gridSize}
	f.built = append(f.built, e)
	return e
}

func (f *fakeEffects) last() *fakeEffect {
	if len(f.built) == 0 {
		return nil
	}
	return f.built[len(f.built)-1]
}

// recordPass records how it was called.
type recordPass struct {
	name     string
	log      *[]string
	srcs     []*ebiten.Image
	dsts     []*ebiten.Image
	disposed int
}

func (p *recordPass) Render(src, dst *ebiten.Image) {
	p.srcs = append(p.srcs, src)
	p.dsts = append(p.dsts, dst)
	if p.log != nil {
		*p.log = append(*p.log, p.name)
	}
}

func (p *recordPass) Dispose() { p.disposed++ }

func newTestPipeline() (*EffectPipeline, *fakeEffects) {
	fx := &fakeEffects{}
	p := NewEffectPipeline(PipelineOptions{Param: 1, NewEffect: fx.New})
	return p, fx
}
