package collision

import (
	"github.com/blazinaj/gamescape-sub001/actor"
	"github.com/blazinaj/gamescape-sub001/intersect"
)

// ProcessTriggers scans every trigger zone for overlapping objects and
// delivers Enter/Stay/Exit events to subscribed listeners. The game
// loop calls it once per frame, after all position updates. Trigger
// zones see every non-trigger object regardless of anyone's collision
// filter; blocking semantics simply do not apply here.
func (w *World) ProcessTriggers() {
	for id, zone := range w.objects {
		if zone.Category != actor.CategoryTrigger {
			continue
		}
		candidates := w.grid.CandidatesNear(zone.WorldCenter(), zone.Shape.BoundingRadius())
		for _, other := range w.lookup(candidates, id) {
			if other.Category == actor.CategoryTrigger {
				continue
			}
			if _, overlapping := intersect.Shapes(other.Shape, other.Position, zone.Shape, zone.Position); overlapping {
				w.Events.recordOverlap(id, other.Id)
			}
		}
	}
	w.Events.flush()
}

const (
	TRIGGER_ENTER EventType = iota
	TRIGGER_STAY
	TRIGGER_EXIT
)

type EventType uint8

// Event reports one trigger-zone overlap transition. TriggerID is the
// trigger-category object, OtherID the object inside it.
type Event struct {
	Kind      EventType
	TriggerID string
	OtherID   string
}

// EventListener - callback for events
type EventListener func(event Event)

type pairKey struct {
	triggerID string
	otherID   string
}

// Events tracks trigger overlaps across frames and turns them into
// Enter/Stay/Exit notifications. Dialogue ranges, combat ranges and
// detection zones all hang off these.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Overlap tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) recordOverlap(triggerID, otherID string) {
	e.currentActivePairs[pairKey{triggerID: triggerID, otherID: otherID}] = true
}

// dropPairs forgets all tracking for an unregistered object. No exit
// event is synthesized for destroyed actors, matching how the rest of
// the world treats teardown.
func (e *Events) dropPairs(id string) {
	for pair := range e.previousActivePairs {
		if pair.triggerID == id || pair.otherID == id {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.triggerID == id || pair.otherID == id {
			delete(e.currentActivePairs, pair)
		}
	}
}

// flush compares current and previous pairs to detect Enter/Stay/Exit,
// delivers the buffered events, and swaps the pair sets for the next
// frame.
func (e *Events) flush() {
	for pair := range e.currentActivePairs {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, Event{Kind: TRIGGER_STAY, TriggerID: pair.triggerID, OtherID: pair.otherID})
		} else {
			e.buffer = append(e.buffer, Event{Kind: TRIGGER_ENTER, TriggerID: pair.triggerID, OtherID: pair.otherID})
		}
	}
	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, Event{Kind: TRIGGER_EXIT, TriggerID: pair.triggerID, OtherID: pair.otherID})
		}
	}

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Kind] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]

	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}
