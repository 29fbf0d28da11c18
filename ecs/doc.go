// Package ecs provides ECS adapters for dither's surface events.
//
// [NewDonburiSink] forwards every surface event (pointer enter, leave, move
// and resize) into a [Donburi] world as a typed event. Subscribe to
// [PointerEventType] in your systems to receive them. [PointerSync] mirrors
// the tracker's latest [dither.PointerState] onto an entity each frame.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	surface.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
