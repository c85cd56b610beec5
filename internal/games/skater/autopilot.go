package skater

import "github.com/vovakirdan/sats-skater/internal/core"

// Autopilot is a simple bot that plays the game through core.InputState.
// Call Plan once per tick before stepping the game.
type Autopilot struct {
	pressed map[core.Action]bool
	// LeadMs is how far ahead of an obstacle, in ms of travel, the bot jumps.
	LeadMs float64
}

// NewAutopilot creates a bot with a default reaction lead.
func NewAutopilot() *Autopilot {
	return &Autopilot{pressed: make(map[core.Action]bool), LeadMs: 210}
}

var _ core.InputState = (*Autopilot)(nil)

// Plan decides this tick's presses from the game state.
func (p *Autopilot) Plan(g *Game) {
	clear(p.pressed)
	a := g.Actor()
	if a == nil {
		return
	}
	switch a.State() {
	case StateIdle:
		p.pressed[core.ActionJump] = true
		return
	case StateCrashed:
		if g.State().GameOver {
			p.pressed[core.ActionRestart] = true
		}
		return
	}

	next, ok := p.nextThreat(a, g.Generator())
	lead := a.ForwardSpeed() * p.LeadMs / 1000

	if a.OnGround() || a.OnRail() {
		if ok && next.X-a.Right() <= lead {
			p.pressed[core.ActionJump] = true
			return
		}
		// Spend a held power-up when the way is clear.
		if a.HeldPowerUp() != TrickNone && (!ok || next.X-a.Right() > 3*lead) {
			p.pressed[core.ActionTrickA] = true
		}
		return
	}

	// Double jump near the apex when the obstacle ahead is tall.
	if ok && a.CanDoubleJump() && a.VY > -60 && a.Bottom() > next.Y-8 {
		p.pressed[core.ActionJump] = true
	}
}

// nextThreat returns the nearest base obstacle ahead of the actor, using
// the tallest point of its stack.
func (p *Autopilot) nextThreat(a *Actor, gen *Generator) (Obstacle, bool) {
	var best Obstacle
	found := false
	for _, o := range gen.Obstacles() {
		if o.Stacked() || o.Right() <= a.X || gen.Passed(o.ID) {
			continue
		}
		if !found || o.X < best.X {
			best, found = o, true
		}
	}
	if found {
		best.Y = best.Y + best.Height - gen.StackHeight(best.ID)
	}
	return best, found
}

// IsHeld implements core.InputState.
func (p *Autopilot) IsHeld(a core.Action) bool { return p.pressed[a] }

// WasPressedThisTick implements core.InputState.
func (p *Autopilot) WasPressedThisTick(a core.Action) bool { return p.pressed[a] }

// WasReleasedThisTick implements core.InputState.
func (p *Autopilot) WasReleasedThisTick(core.Action) bool { return false }

// AnyActionPressedThisTick implements core.InputState.
func (p *Autopilot) AnyActionPressedThisTick() bool {
	for _, a := range core.GameplayActions {
		if p.pressed[a] {
			return true
		}
	}
	return false
}
