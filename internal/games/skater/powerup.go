package skater

import "github.com/vovakirdan/sats-skater/internal/core"

// PowerUp is a collectable that grants one trick of its kind.
type PowerUp struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"w"`
	Height float64   `json:"h"`
	Kind   TrickKind `json:"kind"`

	Collected bool `json:"collected,omitempty"`
	// Active is false once the collect animation has finished.
	Active bool `json:"active"`

	collectedFor float64 // ms since collection
}

// NewPowerUp creates an active, uncollected power-up.
func NewPowerUp(x, y, size float64, kind TrickKind) PowerUp {
	return PowerUp{X: x, Y: y, Width: size, Height: size, Kind: kind, Active: true}
}

// Box returns the collision box.
func (p PowerUp) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// Right returns the trailing edge.
func (p PowerUp) Right() float64 {
	return p.X + p.Width
}

// Collectable reports whether the power-up can still be picked up by the box.
func (p PowerUp) Collectable(b core.Box) bool {
	return p.Active && !p.Collected && p.Box().Overlaps(b)
}

// Collect marks the power-up as collected and starts its animation window.
func (p *PowerUp) Collect() {
	if p.Collected {
		return
	}
	p.Collected = true
	p.collectedFor = 0
}

// Update advances the collect animation. animMs is the window length.
func (p *PowerUp) Update(dtMs, animMs float64) {
	if !p.Collected || !p.Active {
		return
	}
	p.collectedFor += dtMs
	if p.collectedFor >= animMs {
		p.Active = false
	}
}

// CollectProgress returns how far the collect animation is, in [0, 1].
func (p PowerUp) CollectProgress(animMs float64) float64 {
	if !p.Collected {
		return 0
	}
	if animMs <= 0 || !p.Active {
		return 1
	}
	return core.ClampF(p.collectedFor/animMs, 0, 1)
}
