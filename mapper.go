package dither

import (
	"errors"
	"fmt"
	"math"
)

// GridRange bounds the dithering grid size produced by ComputeGrid.
type GridRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// DefaultGridRange is the range used when none is configured.
var DefaultGridRange = GridRange{Min: 1, Max: 20}

// ErrInvalidGridRange is returned by GridRange.Validate.
var ErrInvalidGridRange = errors.New("invalid grid range")

// Validate reports whether the range can be used by ComputeGrid.
func (r GridRange) Validate() error {
	switch {
	case math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0):
		return fmt.Errorf("%w: non-finite bound [%v, %v]", ErrInvalidGridRange, r.Min, r.Max)
	case r.Min < 1:
		return fmt.Errorf("%w: min %v is below 1", ErrInvalidGridRange, r.Min)
	case r.Max < r.Min:
		return fmt.Errorf("%w: max %v is below min %v", ErrInvalidGridRange, r.Max, r.Min)
	}
	return nil
}

// ComputeGrid maps the pointer state to a dithering grid size in [r.Min, r.Max].
// The effect is strongest with the pointer at the surface center and fades to
// r.Min at the corners. A pointer outside the surface, or a surface with no
// area, yields r.Min.
func ComputeGrid(state PointerState, r GridRange) float64 {
	if !state.InsideSurface {
		return r.Min
	}

	b := state.Bounds
	center := b.Center()
	dist := math.Hypot(state.Position.X-center.X, state.Position.Y-center.Y)
	maxDist := b.HalfDiagonal()

	normalized := 1.0
	if maxDist > 0 {
		normalized = math.Min(math.Max(dist/maxDist, 0), 1)
	}
	inverted := 1 - normalized

	grid := math.Max(r.Min, math.Round(inverted*r.Max))
	return math.Min(grid, math.Max(r.Max, r.Min))
}
