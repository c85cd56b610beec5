package core

// Event is a discrete game event handed to platform sinks such as logs and
// the live event feed. Delivery is fire-and-forget.
type Event struct {
	Name string `json:"name"`
	Tick uint64 `json:"tick"`
	Data any    `json:"data,omitempty"`
}

// EventSource is implemented by games that emit discrete events.
// DrainEvents returns the events queued since the previous call.
type EventSource interface {
	DrainEvents() []Event
}

// RunStats summarizes a run for the score sink.
type RunStats struct {
	Score            int     `json:"score"`
	Distance         float64 `json:"distance"`    // world pixels
	DurationMs       float64 `json:"duration_ms"` // simulated time
	ObstaclesCleared int     `json:"obstacles_cleared"`
	TricksLanded     int     `json:"tricks_landed"`
	Difficulty       string  `json:"difficulty"`
}

// StatsSource is implemented by games that report run statistics.
type StatsSource interface {
	RunStats() RunStats
}

// SnapshotSource is implemented by games that can describe a whole frame as
// one event, for feeds that draw the world remotely.
type SnapshotSource interface {
	SnapshotEvent() Event
}
