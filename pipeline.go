package dither

// PipelineOptions configures an EffectPipeline.
type PipelineOptions struct {
	// ClearColor fills the base pass before the scene draws. Zero value means
	// ColorWhite.
	ClearColor Color
	// PixelSizeRatio scales grid units to pixels. Zero means 1.
	PixelSizeRatio float64
	// Grayscale selects luminance thresholding in the dithering effect.
	Grayscale bool
	// Param is the initial grid size used before the first UpdateParameter.
	Param float64
	// NewEffect builds the effect for each pass chain. Nil means a
	// DitherEffect built from the options above.
	NewEffect func(gridSize float64) GridEffect
}

// PipelineStats counts pipeline activity since creation.
type PipelineStats struct {
	Configures    int // Configure calls that reached the identity check
	Rebuilds      int // pass chains built
	PassesRemoved int // passes disposed by rebuilds and teardown
	Frames        int // Render calls that executed the chain
}

// EffectPipeline owns the Composer and its pass chain: a base scene pass
// followed by one effect pass. All methods are no-ops after Teardown.
type EffectPipeline struct {
	opts PipelineOptions

	renderer Renderer
	composer *Composer

	scene  Scene
	camera Camera
	effect GridEffect
	param  float64

	width, height int
	stats         PipelineStats
	destroyed     bool
}

// NewEffectPipeline creates an uninitialized pipeline.
func NewEffectPipeline(opts PipelineOptions) *EffectPipeline {
	if opts.ClearColor == (Color{}) {
		opts.ClearColor = ColorWhite
	}
	if opts.PixelSizeRatio <= 0 {
		opts.PixelSizeRatio = 1
	}
	if opts.NewEffect == nil {
		ratio, gray := opts.PixelSizeRatio, opts.Grayscale
		opts.NewEffect = func(gridSize float64) GridEffect {
			return NewDitherEffect(DitherEffectOptions{
				GridSize:       gridSize,
				PixelSizeRatio: ratio,
				Grayscale:      gray,
			})
		}
	}
	return &EffectPipeline{opts: opts, param: opts.Param}
}

// EnsureInitialized builds the composer for r. Calls with the same renderer
// are no-ops. A different renderer replaces the composer, and the pass chain
// is rebuilt on the next Configure.
func (p *EffectPipeline) EnsureInitialized(r Renderer) {
	if p.destroyed || !present(r) {
		return
	}
	if p.composer != nil && sameValue(p.renderer, r) {
		return
	}
	if p.composer != nil {
		p.stats.PassesRemoved += len(p.composer.Passes())
		p.composer.Dispose()
		p.scene, p.camera, p.effect = nil, nil, nil
	}
	p.renderer = r
	p.composer = NewComposer()
	p.composer.SetSize(p.width, p.height)
	Logger().Info("dither: pipeline initialized", "width", p.width, "height", p.height)
}

// Initialized reports whether a composer exists.
func (p *EffectPipeline) Initialized() bool {
	return p.composer != nil && !p.destroyed
}

// Configure rebuilds the pass chain when scene or cam differ from the last
// configured pair. Nil arguments and an uninitialized pipeline are ignored.
func (p *EffectPipeline) Configure(scene Scene, cam Camera) {
	if p.destroyed || p.composer == nil || !present(scene) || !present(cam) {
		return
	}
	p.stats.Configures++
	if sameValue(scene, p.scene) && sameValue(cam, p.camera) {
		return
	}

	p.stats.PassesRemoved += p.composer.RemoveAllPasses()
	p.effect = p.opts.NewEffect(p.param)
	p.composer.AddPass(NewRenderPass(scene, cam, p.opts.ClearColor))
	p.composer.AddPass(NewEffectPass(p.effect))
	p.scene, p.camera = scene, cam
	p.stats.Rebuilds++
	Logger().Debug("dither: pass chain rebuilt", "rebuilds", p.stats.Rebuilds, "grid", p.param)
}

// Configured reports whether a pass chain is in place.
func (p *EffectPipeline) Configured() bool {
	return !p.destroyed && p.composer != nil && p.scene != nil && p.camera != nil
}

// UpdateParameter pushes a new grid size into the live effect. Does not
// rebuild the chain and does not allocate.
func (p *EffectPipeline) UpdateParameter(v float64) {
	if p.destroyed {
		return
	}
	p.param = v
	if p.effect != nil {
		p.effect.SetGridSize(v)
	}
}

// Parameter returns the last grid size set.
func (p *EffectPipeline) Parameter() float64 {
	return p.param
}

// Resize sets the size of the composer's intermediate buffers. The size is
// remembered and applied when the composer is created later.
func (p *EffectPipeline) Resize(width, height int) {
	if p.destroyed || width < 0 || height < 0 {
		return
	}
	p.width, p.height = width, height
	if p.composer != nil {
		p.composer.SetSize(width, height)
	}
}

// Size returns the last size passed to Resize.
func (p *EffectPipeline) Size() (int, int) {
	return p.width, p.height
}

// Render runs the pass chain onto the renderer's target. Does nothing until
// the pipeline is both initialized and configured.
func (p *EffectPipeline) Render() {
	if !p.Configured() {
		return
	}
	target := p.renderer.Target()
	if target == nil {
		return
	}
	p.composer.Render(target)
	p.stats.Frames++
}

// Teardown disposes every pass and the composer. Safe to call more than once.
func (p *EffectPipeline) Teardown() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	if p.composer != nil {
		p.stats.PassesRemoved += len(p.composer.Passes())
		p.composer.Dispose()
		p.composer = nil
	}
	p.renderer = nil
	p.scene, p.camera, p.effect = nil, nil, nil
	Logger().Info("dither: pipeline torn down", "frames", p.stats.Frames)
}

// IsDestroyed reports whether Teardown has been called.
func (p *EffectPipeline) IsDestroyed() bool {
	return p.destroyed
}

// Stats returns the activity counters.
func (p *EffectPipeline) Stats() PipelineStats {
	return p.stats
}
