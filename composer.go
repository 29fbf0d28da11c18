package dither

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Composer runs an ordered chain of passes once per frame, ping-ponging
// between two pooled offscreen buffers. The last pass draws straight into the
// target image.
type Composer struct {
	passes []Pass

	width, height int
	pool          targetPool
	bufA, bufB    *ebiten.Image // pooled, power-of-two sized
	viewA, viewB  *ebiten.Image // width x height views into bufA, bufB

	removed  int
	disposed bool
}

// NewComposer creates an empty composer. The buffer size defaults to the
// target size until SetSize is called.
func NewComposer() *Composer {
	return &Composer{}
}

// AddPass appends a pass to the end of the chain.
func (c *Composer) AddPass(p Pass) {
	if c.disposed || p == nil {
		return
	}
	c.passes = append(c.passes, p)
}

// RemoveAllPasses disposes and removes every pass. Returns the number removed.
func (c *Composer) RemoveAllPasses() int {
	n := len(c.passes)
	for i, p := range c.passes {
		p.Dispose()
		c.passes[i] = nil
	}
	c.passes = c.passes[:0]
	c.removed += n
	return n
}

// Passes returns the current chain. The returned slice MUST NOT be mutated.
func (c *Composer) Passes() []Pass {
	return c.passes
}

// Removed returns the total number of passes removed over the composer's life.
func (c *Composer) Removed() int {
	return c.removed
}

// Size returns the buffer size set by SetSize.
func (c *Composer) Size() (int, int) {
	return c.width, c.height
}

// SetSize sets the size of the intermediate buffers. Existing buffers are
// returned to the pool and reacquired on the next Render; idle buffers of
// other sizes are freed.
func (c *Composer) SetSize(width, height int) {
	if c.disposed || width < 0 || height < 0 {
		return
	}
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	c.releaseBuffers()
	c.pool.prune(width, height)
}

// Render executes the chain in order onto target.
func (c *Composer) Render(target *ebiten.Image) {
	if c.disposed || target == nil || len(c.passes) == 0 {
		return
	}
	if !c.ensureBuffers(target) {
		return
	}

	read, write := c.viewA, c.viewB
	last := len(c.passes) - 1
	for i, p := range c.passes {
		dst := write
		if i == last {
			dst = target
		} else {
			dst.Clear()
		}
		p.Render(read, dst)
		read, write = write, read
	}
}

// Dispose removes all passes and deallocates the buffers. Safe to call more
// than once.
func (c *Composer) Dispose() {
	if c.disposed {
		return
	}
	c.RemoveAllPasses()
	c.releaseBuffers()
	c.pool.drain()
	c.disposed = true
}

// ensureBuffers acquires the ping-pong buffers for the current size, falling
// back to the target size when no size has been set. Returns false when the
// size is empty.
func (c *Composer) ensureBuffers(target *ebiten.Image) bool {
	w, h := c.width, c.height
	if w == 0 || h == 0 {
		b := target.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	if w <= 0 || h <= 0 {
		return false
	}
	if c.viewA != nil {
		vb := c.viewA.Bounds()
		if vb.Dx() == w && vb.Dy() == h {
			return true
		}
		c.releaseBuffers()
	}
	c.bufA = c.pool.acquire(w, h)
	c.bufB = c.pool.acquire(w, h)
	rect := image.Rect(0, 0, w, h)
	c.viewA = c.bufA.SubImage(rect).(*ebiten.Image)
	c.viewB = c.bufB.SubImage(rect).(*ebiten.Image)
	return true
}

func (c *Composer) releaseBuffers() {
	c.pool.release(c.bufA)
	c.pool.release(c.bufB)
	c.bufA, c.bufB = nil, nil
	c.viewA, c.viewB = nil, nil
}
