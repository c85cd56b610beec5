package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sats-skater/internal/core"
)

// EventSink receives game events tagged with the run they belong to.
// Publish must not block the caller.
type EventSink interface {
	Publish(runID string, e core.Event)
}

// LogSink writes events to a logger at debug level.
type LogSink struct {
	Logger *log.Logger
}

// Publish implements EventSink.
func (s LogSink) Publish(runID string, e core.Event) {
	if s.Logger == nil {
		return
	}
	s.Logger.Debug("game event", "run", runID, "event", e.Name, "tick", e.Tick)
}

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

// Publish implements EventSink.
func (m MultiSink) Publish(runID string, e core.Event) {
	for _, s := range m {
		if s != nil {
			s.Publish(runID, e)
		}
	}
}
