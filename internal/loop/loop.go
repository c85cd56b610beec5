// Package loop provides the fixed-timestep clock that drives the simulation.
//
// Wall-clock time is accumulated and consumed in constant-size steps, so the
// simulation advances identically regardless of the host frame rate. Render is
// invoked once per wall frame after zero or more steps. Update and render are
// always called sequentially on the goroutine that calls Frame or Advance.
package loop

import (
	"context"
	"sync/atomic"
	"time"
)

const (
	// DefaultTickRate is the default number of simulation steps per second.
	DefaultTickRate = 60
	// DefaultMaxFrame caps the wall time consumed by one frame after a stall.
	DefaultMaxFrame = 250 * time.Millisecond
)

// Config configures a Loop.
type Config struct {
	TickRate int           // Steps per second, default 60
	MaxFrame time.Duration // Elapsed time clamp per frame, default 250ms
}

// Loop is a fixed-timestep accumulator loop.
type Loop struct {
	step     time.Duration
	maxFrame time.Duration
	update   func(dtMs float64)
	render   func()

	running     atomic.Bool
	last        time.Time
	accumulator time.Duration
	steps       uint64
}

// New creates a stopped loop. Either callback may be nil.
func New(cfg Config, update func(dtMs float64), render func()) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if cfg.MaxFrame <= 0 {
		cfg.MaxFrame = DefaultMaxFrame
	}
	return &Loop{
		step:     time.Second / time.Duration(cfg.TickRate),
		maxFrame: cfg.MaxFrame,
		update:   update,
		render:   render,
	}
}

// Start begins accepting frames. Calling Start on a running loop does nothing.
func (l *Loop) Start() {
	if l.running.Swap(true) {
		return
	}
	l.last = time.Time{}
}

// Stop halts the loop. It is safe to call from inside a callback or from
// another goroutine; no step runs after Stop returns.
func (l *Loop) Stop() {
	l.running.Store(false)
}

// Running reports whether the loop accepts frames.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Frame advances the loop by the wall time elapsed since the previous frame.
// The first frame after Start only records the timestamp.
func (l *Loop) Frame(now time.Time) {
	if !l.running.Load() {
		return
	}
	var elapsed time.Duration
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now
	l.Advance(elapsed)
}

// Advance runs as many fixed steps as the accumulated time allows, then
// renders once. Negative elapsed time counts as zero.
func (l *Loop) Advance(elapsed time.Duration) {
	if !l.running.Load() {
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > l.maxFrame {
		elapsed = l.maxFrame
	}
	l.accumulator += elapsed

	dtMs := float64(l.step) / float64(time.Millisecond)
	for l.accumulator >= l.step {
		if !l.running.Load() {
			break
		}
		if l.update != nil {
			l.update(dtMs)
		}
		l.steps++
		l.accumulator -= l.step
	}
	// Leftover time is dropped once the loop is stopped mid-frame.
	if !l.running.Load() {
		l.accumulator = 0
	}

	if l.render != nil {
		l.render()
	}
}

// Run starts the loop and drives Frame from a ticker on the calling goroutine
// until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = l.step
	}
	l.Start()
	defer l.Stop()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	l.Frame(time.Now())
	for l.running.Load() {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Frame(now)
		}
	}
}

// Reset clears the accumulator and step counter without changing the run state.
func (l *Loop) Reset() {
	l.accumulator = 0
	l.steps = 0
	l.last = time.Time{}
}

// Step returns the fixed step duration.
func (l *Loop) Step() time.Duration {
	return l.step
}

// StepMs returns the fixed step in milliseconds, as passed to update.
func (l *Loop) StepMs() float64 {
	return float64(l.step) / float64(time.Millisecond)
}

// Accumulator returns the unconsumed time left after the last frame.
func (l *Loop) Accumulator() time.Duration {
	return l.accumulator
}

// Steps returns the number of steps run since construction or Reset.
func (l *Loop) Steps() uint64 {
	return l.steps
}

// Alpha returns the interpolation factor between the last two steps.
func (l *Loop) Alpha() float64 {
	return float64(l.accumulator) / float64(l.step)
}
