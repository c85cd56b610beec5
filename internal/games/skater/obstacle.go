package skater

import "github.com/vovakirdan/sats-skater/internal/core"

// ObstacleID is a stable handle into the generator's obstacle arena.
// IDs are never reused within a run; zero means "no obstacle".
type ObstacleID uint64

// Obstacle is a passive box the actor must clear. Positions are
// camera-relative world pixels.
type Obstacle struct {
	ID     ObstacleID   `json:"id"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Width  float64      `json:"w"`
	Height float64      `json:"h"`
	Kind   ObstacleKind `json:"kind"`

	// Hit is set once the actor crashed into this obstacle. Render only.
	Hit bool `json:"hit,omitempty"`
	// StackParent is the base obstacle this piece sits on, or zero.
	StackParent ObstacleID `json:"stack_parent,omitempty"`
	// DoubleJump marks obstacles taller than a single jump can clear.
	DoubleJump bool `json:"double_jump,omitempty"`
	// Difficulty is the scalar the obstacle was built with, in [0, 1].
	Difficulty float64 `json:"difficulty"`
}

// Box returns the collision box.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Width, o.Height)
}

// Right returns the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Top returns the Y of the top surface.
func (o Obstacle) Top() float64 {
	return o.Y
}

// Stacked reports whether the obstacle sits on another one.
func (o Obstacle) Stacked() bool {
	return o.StackParent != 0
}

// Collides reports a strict overlap with the given box.
func (o Obstacle) Collides(b core.Box) bool {
	return o.Box().Overlaps(b)
}

// spansX reports whether the horizontal extents of o and b overlap.
func (o Obstacle) spansX(b core.Box) bool {
	return b.X < o.Right() && b.Right() > o.X
}
