package skater

// Event is a discrete simulation event for sound and feed sinks.
// Concrete types: JumpStarted, CrashStarted, ScoreAwarded, TrickStarted,
// PowerUpCollected, Landed, GrindStarted.
type Event interface {
	isEvent()
}

// JumpStarted is emitted when the actor leaves the ground or performs a double jump.
type JumpStarted struct {
	Double bool `json:"double"`
}

// CrashStarted is emitted once when the actor crashes.
type CrashStarted struct {
	Score int `json:"score"`
}

// ScoreAwarded is emitted for every score increase.
type ScoreAwarded struct {
	Amount int         `json:"amount"`
	Reason ScoreReason `json:"reason"`
}

// TrickStarted is emitted when a held power-up is turned into a trick.
type TrickStarted struct {
	Kind TrickKind `json:"kind"`
}

// PowerUpCollected is emitted when the actor picks up a power-up.
type PowerUpCollected struct {
	Kind TrickKind `json:"kind"`
}

// Landed is emitted when the actor touches the ground after being airborne.
type Landed struct{}

// GrindStarted is emitted when the actor lands on a rail.
type GrindStarted struct{}

func (JumpStarted) isEvent()      {}
func (CrashStarted) isEvent()     {}
func (ScoreAwarded) isEvent()     {}
func (TrickStarted) isEvent()     {}
func (PowerUpCollected) isEvent() {}
func (Landed) isEvent()           {}
func (GrindStarted) isEvent()     {}

// EventName returns a stable name for an event, used by logs and the event feed.
func EventName(e Event) string {
	switch e.(type) {
	case JumpStarted:
		return "jump"
	case CrashStarted:
		return "crash"
	case ScoreAwarded:
		return "score"
	case TrickStarted:
		return "trick"
	case PowerUpCollected:
		return "powerup"
	case Landed:
		return "land"
	case GrindStarted:
		return "grind"
	default:
		return "unknown"
	}
}

// EventQueue buffers events until the host drains them.
// Emitting never blocks and a nil queue discards events.
type EventQueue struct {
	events []Event
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]Event, 0, 16)}
}

// Emit appends an event.
func (q *EventQueue) Emit(e Event) {
	if q == nil {
		return
	}
	q.events = append(q.events, e)
}

// Drain returns all queued events and empties the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.events)
}

// Reset drops all queued events.
func (q *EventQueue) Reset() {
	if q == nil {
		return
	}
	q.events = q.events[:0]
}
