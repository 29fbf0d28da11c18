// Package dither is a pointer-driven dithering post-process for [Ebitengine].
//
// A scene host supplies a scene and a camera every frame. Dither renders
// them into an offscreen buffer, runs an ordered (Bayer) dithering shader
// over the result and draws it onto the interactive surface. The dithering
// grid size follows the pointer: strongest with the pointer at the center of
// the surface, fading out toward the corners and off entirely when the
// pointer leaves.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and runs
// the game loop:
//
//	host, err := stage.NewHost(stage.Options{Text: "DITHER"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = dither.Run(host, dither.RunConfig{Config: dither.DefaultConfig()})
//
// For full control, use the pieces directly from your own [ebiten.Game]:
//
//	surface := dither.NewSurface(dither.FullWindow)
//	tracker := dither.NewPointerTracker()
//	tracker.Bind(surface)
//	driver := dither.NewFrameDriver(
//		dither.NewEffectPipeline(dither.PipelineOptions{}),
//		tracker, dither.DefaultGridRange)
//	driver.Bind(surface)
//
//	// Update: surface.Poll()
//	// Layout: surface.SetScreenSize(w, h)
//	// Draw:   driver.Tick(renderer, scene, camera)
//
// # Pieces
//
//   - [PointerTracker] records whether the pointer is over the surface, its
//     position and the surface bounds.
//   - [ComputeGrid] maps a [PointerState] to a grid size in a [GridRange].
//   - [EffectPipeline] owns a [Composer] with a [RenderPass] and an
//     [EffectPass] and rebuilds the chain when the scene or camera changes.
//   - [FrameDriver] is the per-frame state machine tying them together.
//   - [Surface] turns the cursor and window size into pointer and resize
//     events; [Surface.InjectMove] and friends, together with
//     [ScriptRunner], drive it without a real pointer.
//
// # Logging
//
// Nothing is logged by default. Call [SetLogger] with an [log/slog] logger to
// see lifecycle events, and enable [slog.LevelDebug] for per-frame stats.
//
// [Ebitengine]: https://ebitengine.org
package dither
