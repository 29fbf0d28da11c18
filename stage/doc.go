// Package stage is a scene host for dither: a textured plane seen through an
// orbiting perspective camera, with ring-masked text behind it.
//
// [Host] implements dither.SceneHost, dither.HostUpdater and
// dither.OverlayDrawer, so it plugs straight into dither.Run.
package stage
