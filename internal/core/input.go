package core

// Event is a discrete, edge-triggered input delivered by an input source.
type Event int

const (
	EventNone      Event = iota
	EventJump            // Space, Up, W, click
	EventDuckStart       // Down pressed
	EventDuckEnd         // Down released
)

// String returns the wire name of the event.
func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventDuckStart:
		return "duckStart"
	case EventDuckEnd:
		return "duckEnd"
	default:
		return "none"
	}
}

// ParseEvent maps a wire name back to an Event.
func ParseEvent(name string) (Event, bool) {
	switch name {
	case "jump":
		return EventJump, true
	case "duckStart":
		return EventDuckStart, true
	case "duckEnd":
		return EventDuckEnd, true
	}
	return EventNone, false
}

// EventQueue buffers events between ticks, preserving arrival order.
// It is not safe for concurrent use; drivers funnel input to the goroutine
// that owns the simulation.
type EventQueue struct {
	events []Event
}

// Push appends an event. EventNone is dropped.
func (q *EventQueue) Push(e Event) {
	if e == EventNone {
		return
	}
	q.events = append(q.events, e)
}

// Len returns the number of buffered events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns the buffered events and empties the queue.
// The returned slice is only valid until the next Push.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = q.events[:0]
	return out
}

// Clear discards all buffered events.
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
}
