package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/blazinaj/gamescape-sub001/actor"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) countOf(kind EventType) int {
	n := 0
	for _, e := range ec.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// newTriggerScene builds a world with a trigger zone at the origin and
// a character outside it.
func newTriggerScene(t *testing.T) (*World, *actor.Object) {
	t.Helper()
	w := newTestWorld()

	zone := actor.New("zone", actor.CategoryTrigger, actor.Sphere{Radius: 2}, mgl64.Vec3{0, 0, 0})
	zone.Mass = 0
	if err := w.Register(zone); err != nil {
		t.Fatalf("Register zone failed: %v", err)
	}

	player := actor.New("player", actor.CategoryCharacter, actor.Sphere{Radius: 0.5}, mgl64.Vec3{10, 0, 0})
	if err := w.Register(player); err != nil {
		t.Fatalf("Register player failed: %v", err)
	}
	return w, player
}

func TestEventsSubscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(TRIGGER_ENTER, capture.capture)

	if len(events.listeners[TRIGGER_ENTER]) != 1 {
		t.Errorf("expected 1 listener for TRIGGER_ENTER, got %d", len(events.listeners[TRIGGER_ENTER]))
	}
}

func TestTriggerEnterStayExit(t *testing.T) {
	w, _ := newTriggerScene(t)

	capture := &eventCapture{}
	w.Events.Subscribe(TRIGGER_ENTER, capture.capture)
	w.Events.Subscribe(TRIGGER_STAY, capture.capture)
	w.Events.Subscribe(TRIGGER_EXIT, capture.capture)

	// Frame 1: still outside.
	w.ProcessTriggers()
	if len(capture.events) != 0 {
		t.Fatalf("events while outside = %v, want none", capture.events)
	}

	// Frame 2: player steps into the zone.
	if err := w.Update("player", mgl64.Vec3{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	w.ProcessTriggers()
	if capture.countOf(TRIGGER_ENTER) != 1 || len(capture.events) != 1 {
		t.Fatalf("entry frame events = %v, want one enter", capture.events)
	}
	if capture.events[0].TriggerID != "zone" || capture.events[0].OtherID != "player" {
		t.Errorf("enter event = %+v, want zone/player", capture.events[0])
	}
	capture.reset()

	// Frame 3: still inside.
	w.ProcessTriggers()
	if capture.countOf(TRIGGER_STAY) != 1 || len(capture.events) != 1 {
		t.Fatalf("stay frame events = %v, want one stay", capture.events)
	}
	capture.reset()

	// Frame 4: player leaves.
	if err := w.Update("player", mgl64.Vec3{10, 0, 0}); err != nil {
		t.Fatal(err)
	}
	w.ProcessTriggers()
	if capture.countOf(TRIGGER_EXIT) != 1 || len(capture.events) != 1 {
		t.Fatalf("exit frame events = %v, want one exit", capture.events)
	}

	// Frame 5: quiet again.
	capture.reset()
	w.ProcessTriggers()
	if len(capture.events) != 0 {
		t.Errorf("events after exit = %v, want none", capture.events)
	}
}

func TestTriggerExactOverlapRequired(t *testing.T) {
	w, _ := newTriggerScene(t)

	capture := &eventCapture{}
	w.Events.Subscribe(TRIGGER_ENTER, capture.capture)

	// Same grid cell as the zone, but outside its volume.
	if err := w.Update("player", mgl64.Vec3{2.6, 0, 0}); err != nil {
		t.Fatal(err)
	}
	w.ProcessTriggers()

	if len(capture.events) != 0 {
		t.Errorf("near miss produced events: %v", capture.events)
	}
}

func TestTriggersIgnoreOtherTriggers(t *testing.T) {
	w, _ := newTriggerScene(t)

	other := actor.New("other zone", actor.CategoryTrigger, actor.Sphere{Radius: 2}, mgl64.Vec3{1, 0, 0})
	other.Mass = 0
	if err := w.Register(other); err != nil {
		t.Fatal(err)
	}

	capture := &eventCapture{}
	w.Events.Subscribe(TRIGGER_ENTER, capture.capture)
	w.ProcessTriggers()

	if len(capture.events) != 0 {
		t.Errorf("overlapping zones notified each other: %v", capture.events)
	}
}

func TestTriggerMultipleOccupants(t *testing.T) {
	w, _ := newTriggerScene(t)

	wolf := actor.New("wolf", actor.CategoryEnemy, actor.Sphere{Radius: 0.6}, mgl64.Vec3{-1, 0, 0})
	if err := w.Register(wolf); err != nil {
		t.Fatal(err)
	}
	if err := w.Update("player", mgl64.Vec3{1, 0, 0}); err != nil {
		t.Fatal(err)
	}

	capture := &eventCapture{}
	w.Events.Subscribe(TRIGGER_ENTER, capture.capture)
	w.ProcessTriggers()

	if capture.countOf(TRIGGER_ENTER) != 2 {
		t.Errorf("events = %v, want one enter per occupant", capture.events)
	}
}

func TestUnregisterDropsTrackedPairs(t *testing.T) {
	w, _ := newTriggerScene(t)

	capture := &eventCapture{}
	w.Events.Subscribe(TRIGGER_EXIT, capture.capture)

	if err := w.Update("player", mgl64.Vec3{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	w.ProcessTriggers()

	// Destroyed actors disappear without a synthesized exit.
	w.Unregister("player")
	w.ProcessTriggers()

	if capture.countOf(TRIGGER_EXIT) != 0 {
		t.Errorf("unregister synthesized exit events: %v", capture.events)
	}
}
