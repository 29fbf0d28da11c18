package dither

import (
	"context"
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and pipeline metrics. Only collected when
// the app runs in debug mode.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	state      FrameState
	grid       float64
	pointer    PointerState
	pipeline   PipelineStats
}

// debugLog writes one frame's stats at debug level.
func debugLog(stats debugStats) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("dither: frame",
		slog.Duration("update", stats.updateTime),
		slog.Duration("draw", stats.drawTime),
		slog.String("state", stats.state.String()),
		slog.Float64("grid", stats.grid),
		slog.Bool("inside", stats.pointer.InsideSurface),
		slog.Int("rebuilds", stats.pipeline.Rebuilds),
		slog.Int("passesRemoved", stats.pipeline.PassesRemoved),
		slog.Int("frames", stats.pipeline.Frames),
	)
}
