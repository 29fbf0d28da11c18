package ecs

import (
	"testing"

	"github.com/phanxgames/dither"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []dither.PointerEvent
	PointerEventType.Subscribe(world, func(w donburi.World, e dither.PointerEvent) {
		received = append(received, e)
	})

	bounds := dither.Rect{Width: 200, Height: 100}
	sink.EmitEvent(dither.PointerEvent{Type: dither.EventPointerEnter, X: 10, Y: 20, Bounds: bounds})
	sink.EmitEvent(dither.PointerEvent{Type: dither.EventResize, Width: 200, Height: 100})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	PointerEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != dither.EventPointerEnter || e.X != 10 || e.Bounds != bounds {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != dither.EventResize || e.Width != 200 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_FromSurface(t *testing.T) {
	world := donburi.NewWorld()
	s := dither.NewSurface(dither.FullWindow)
	s.SetScreenSize(100, 100)
	s.SetEventSink(NewDonburiSink(world))

	var types []dither.EventType
	PointerEventType.Subscribe(world, func(w donburi.World, e dither.PointerEvent) {
		types = append(types, e.Type)
	})

	s.InjectMove(50, 50)
	s.InjectLeave()
	s.Poll()
	s.Poll()
	events.ProcessAllEvents(world)

	want := []dither.EventType{dither.EventPointerEnter, dither.EventPointerMove, dither.EventPointerLeave}
	if len(types) != len(want) {
		t.Fatalf("types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("types[%d] = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	PointerEventType.Subscribe(world, func(w donburi.World, e dither.PointerEvent) { count1++ })
	PointerEventType.Subscribe(world, func(w donburi.World, e dither.PointerEvent) { count2++ })

	sink.EmitEvent(dither.PointerEvent{Type: dither.EventPointerMove})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestPointerSync(t *testing.T) {
	world := donburi.NewWorld()
	ps := NewPointerSync(world)
	tr := dither.NewPointerTracker()
	tr.OnEnter(dither.Rect{Width: 10, Height: 10})
	tr.OnMove(3, 4)

	ps.Sync(tr)
	got := PointerComponent.Get(world.Entry(ps.Entity()))
	if !got.InsideSurface || got.Position != (dither.Vec2{X: 3, Y: 4}) {
		t.Errorf("synced state = %+v", *got)
	}

	tr.Destroy()
	ps.Sync(tr)
	ps.Sync(nil)
	if got := PointerComponent.Get(world.Entry(ps.Entity())); got.Position.X != 3 {
		t.Error("sync after destroy should leave the state alone")
	}
}
