package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// The simulation only ever sees actions, never keys.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up
	ActionLeft           // A, Left - brake while airborne
	ActionRight          // D, Right - push while airborne
	ActionTrickA         // 1, J
	ActionTrickB         // 2, K
	ActionTrickC         // 3, L
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Escape
)

// GameplayActions is the closed set of actions the simulation queries.
var GameplayActions = []Action{
	ActionJump,
	ActionLeft,
	ActionRight,
	ActionTrickA,
	ActionTrickB,
	ActionTrickC,
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionTrickA:
		return "TrickA"
	case ActionTrickB:
		return "TrickB"
	case ActionTrickC:
		return "TrickC"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputState is the per-tick input query surface consumed by the simulation.
type InputState interface {
	IsHeld(a Action) bool
	WasPressedThisTick(a Action) bool
	WasReleasedThisTick(a Action) bool
	AnyActionPressedThisTick() bool
}

// InputFrame is the input state for one simulation tick.
type InputFrame struct {
	// Actions holds actions pressed this tick (edges).
	Actions  map[Action]bool
	Held     map[Action]bool
	Released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions:  make(map[Action]bool),
		Held:     make(map[Action]bool),
		Released: make(map[Action]bool),
	}
}

// Set marks an action as pressed this tick. A pressed action is also held.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Hold(a)
}

// Hold marks an action as held without a press edge.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Release marks an action as released this tick.
func (f *InputFrame) Release(a Action) {
	if f.Released == nil {
		f.Released = make(map[Action]bool)
	}
	f.Released[a] = true
	delete(f.Held, a)
}

// Has returns true if the given action was pressed this tick.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// IsHeld implements InputState.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a]
}

// WasPressedThisTick implements InputState.
func (f InputFrame) WasPressedThisTick(a Action) bool {
	return f.Actions[a]
}

// WasReleasedThisTick implements InputState.
func (f InputFrame) WasReleasedThisTick(a Action) bool {
	return f.Released[a]
}

// AnyActionPressedThisTick implements InputState.
// Only gameplay actions count.
func (f InputFrame) AnyActionPressedThisTick() bool {
	for _, a := range GameplayActions {
		if f.Actions[a] {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Held)
	clear(f.Released)
}

var _ InputState = InputFrame{}

// DefaultHoldWindow is how long a key counts as held after its last press.
// Terminals only report key presses (and auto-repeat), never releases.
const DefaultHoldWindow = 120 * time.Millisecond

// InputTracker turns a stream of key presses into per-tick InputFrames,
// emulating held and released state from press timestamps.
type InputTracker struct {
	holdWindow time.Duration
	lastPress  map[Action]time.Time
	pending    map[Action]bool
	held       map[Action]bool
}

// NewInputTracker creates a tracker with the given hold window.
func NewInputTracker(holdWindow time.Duration) *InputTracker {
	if holdWindow <= 0 {
		holdWindow = DefaultHoldWindow
	}
	return &InputTracker{
		holdWindow: holdWindow,
		lastPress:  make(map[Action]time.Time),
		pending:    make(map[Action]bool),
		held:       make(map[Action]bool),
	}
}

// Press records a key press at the given time.
func (t *InputTracker) Press(a Action, now time.Time) {
	if a == ActionNone {
		return
	}
	t.lastPress[a] = now
	t.pending[a] = true
}

// Pending reports whether the action was pressed since the last Frame.
func (t *InputTracker) Pending(a Action) bool {
	return t.pending[a]
}

// Frame builds the input frame for one tick and consumes pending presses.
// Presses are edges: only the first tick after a press sees them.
func (t *InputTracker) Frame(now time.Time) InputFrame {
	f := NewInputFrame()
	for a := range t.pending {
		f.Set(a)
	}
	clear(t.pending)

	for a, at := range t.lastPress {
		if now.Sub(at) <= t.holdWindow {
			f.Hold(a)
			t.held[a] = true
			continue
		}
		if t.held[a] {
			f.Release(a)
			delete(t.held, a)
		}
		delete(t.lastPress, a)
	}
	return f
}

// Reset forgets all presses.
func (t *InputTracker) Reset() {
	clear(t.lastPress)
	clear(t.pending)
	clear(t.held)
}
