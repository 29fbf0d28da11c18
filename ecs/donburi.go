package ecs

import (
	"github.com/phanxgames/dither"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PointerEventType is the Donburi event type for surface events.
var PointerEventType = events.NewEventType[dither.PointerEvent]()

// PointerComponent holds the latest pointer state on the entity created by
// NewPointerSync.
var PointerComponent = donburi.NewComponentType[dither.PointerState]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to PointerEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) dither.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event dither.PointerEvent) {
	PointerEventType.Publish(s.world, event)
}

// PointerSync copies a PointerTracker's state onto a single entity.
type PointerSync struct {
	world  donburi.World
	entity donburi.Entity
}

// NewPointerSync creates the entity holding PointerComponent.
func NewPointerSync(world donburi.World) *PointerSync {
	return &PointerSync{world: world, entity: world.Create(PointerComponent)}
}

// Entity returns the entity holding the pointer state.
func (s *PointerSync) Entity() donburi.Entity {
	return s.entity
}

// Sync stores the tracker's current snapshot. Nil or destroyed trackers are
// ignored.
func (s *PointerSync) Sync(t *dither.PointerTracker) {
	if t == nil || t.IsDestroyed() || !s.world.Valid(s.entity) {
		return
	}
	PointerComponent.SetValue(s.world.Entry(s.entity), t.Snapshot())
}
