package dither

import (
	"image"
	"math/bits"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultMaxIdle is how many idle targets of one size the pool keeps. The
// composer holds two at a time.
const defaultMaxIdle = 2

// targetSize is a power-of-two image size.
type targetSize struct {
	w, h int
}

func sizeFor(w, h int) targetSize {
	return targetSize{w: nextPowerOfTwo(w), h: nextPowerOfTwo(h)}
}

// targetPool recycles unmanaged offscreen images by power-of-two size so a
// steady frame loop allocates nothing. Images released beyond maxIdle for
// their size are deallocated.
type targetPool struct {
	idle    map[targetSize][]*ebiten.Image
	maxIdle int
	created int
}

// acquire returns a cleared image of at least w x h pixels.
func (p *targetPool) acquire(w, h int) *ebiten.Image {
	size := sizeFor(w, h)
	if stack := p.idle[size]; len(stack) > 0 {
		img := stack[len(stack)-1]
		stack[len(stack)-1] = nil
		p.idle[size] = stack[:len(stack)-1]
		img.Clear()
		return img
	}
	p.created++
	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, size.w, size.h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// release hands img back. It is cleared on the next acquire.
func (p *targetPool) release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	size := targetSize{w: b.Dx(), h: b.Dy()}
	limit := p.maxIdle
	if limit <= 0 {
		limit = defaultMaxIdle
	}
	if len(p.idle[size]) >= limit {
		img.Deallocate()
		return
	}
	if p.idle == nil {
		p.idle = make(map[targetSize][]*ebiten.Image)
	}
	p.idle[size] = append(p.idle[size], img)
}

// prune deallocates idle images of every size except the one w x h rounds
// up to.
func (p *targetPool) prune(w, h int) {
	keep := sizeFor(w, h)
	for size, stack := range p.idle {
		if size == keep {
			continue
		}
		for _, img := range stack {
			img.Deallocate()
		}
		delete(p.idle, size)
	}
}

// drain deallocates every idle image. The pool stays usable.
func (p *targetPool) drain() {
	for size, stack := range p.idle {
		for _, img := range stack {
			img.Deallocate()
		}
		delete(p.idle, size)
	}
}

// idleCount returns the number of images waiting for reuse.
func (p *targetPool) idleCount() int {
	n := 0
	for _, stack := range p.idle {
		n += len(stack)
	}
	return n
}

// nextPowerOfTwo returns the smallest power of two >= n, minimum 1.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
