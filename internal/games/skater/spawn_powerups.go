package skater

import (
	"math"
	"slices"

	"github.com/vovakirdan/sats-skater/internal/core"
)

const minuteMs = 60_000

// updatePowerUps advances collect animations, resolves pickups and drops
// power-ups that are inactive or far behind. Only one power-up is picked up
// per tick, and only into an empty slot.
func (g *Generator) updatePowerUps(dtMs float64, a *Actor, collect bool) {
	box := a.Box()
	canCollect := collect && !a.Crashed() && a.HeldPowerUp() == TrickNone
	limit := -g.cfg.World.RemoveBehind

	for i := len(g.powerUps) - 1; i >= 0; i-- {
		p := &g.powerUps[i]
		p.Update(dtMs, g.cfg.PowerUps.CollectAnimMs)

		if canCollect && !g.collectedOK && p.Collectable(box) {
			p.Collect()
			g.collected, g.collectedOK = p.Kind, true
		}

		if !p.Active || p.Right() < limit {
			g.powerUps = slices.Delete(g.powerUps, i, i+1)
		}
	}
}

// VisiblePowerUps counts uncollected power-ups inside the play field.
func (g *Generator) VisiblePowerUps() int {
	n := 0
	for _, p := range g.powerUps {
		if p.Active && !p.Collected && p.Right() > 0 && p.X < g.cfg.World.FieldWidth {
			n++
		}
	}
	return n
}

// PowerUpSpawnMultiplier returns the chance multiplier for the given number
// of visible power-ups: VisibleDecay to the power of visible.
func (g *Generator) PowerUpSpawnMultiplier(visible int) float64 {
	if visible <= 0 {
		return 1
	}
	return math.Pow(g.cfg.PowerUps.VisibleDecay, float64(visible))
}

// LastPowerUpMultiplier returns the visibility multiplier used by the most
// recent chance roll.
func (g *Generator) LastPowerUpMultiplier() float64 {
	return g.lastMultiplier
}

// powerUpFloor is the minimum wait between power-ups. It grows over the
// first minute of play.
func (g *Generator) powerUpFloor() float64 {
	p := g.cfg.PowerUps
	growth := 1.0
	if p.FloorGrowthWindowMs > 0 {
		growth = core.ClampF(g.elapsed/p.FloorGrowthWindowMs, 0, 1)
	}
	return p.MinIntervalMs + p.EarlyFloorGrowthMs*growth
}

// powerUpSpacing is the minimum on-screen gap to the previous power-up.
// It starts strict and relaxes to the base distance.
func (g *Generator) powerUpSpacing() float64 {
	p := g.cfg.PowerUps
	relax := 1.0
	if p.SpacingRelaxMs > 0 {
		relax = core.ClampF(g.elapsed/p.SpacingRelaxMs, 0, 1)
	}
	mult := p.EarlySpacingMultiplier - (p.EarlySpacingMultiplier-1)*relax
	return p.BaseMinDistance * math.Max(mult, 1)
}

// powerUpAllowed runs the spawn gates in order. Every gate must pass,
// except the fallback which forces a spawn when nothing has appeared for
// too long and the screen is empty.
func (g *Generator) powerUpAllowed() bool {
	p := g.cfg.PowerUps
	visible := g.VisiblePowerUps()

	if p.FallbackMs > 0 && g.sincePowerUp >= p.FallbackMs && visible == 0 {
		return true
	}
	if visible >= p.MaxVisible {
		g.lastMultiplier = 0
		return false
	}
	if g.minuteCount >= p.MaxPerMinute {
		return false
	}
	if g.elapsed < p.EarlyGameWindowMs && g.powerUpsTotal >= p.EarlyGameCap {
		return false
	}
	floor := g.powerUpFloor()
	if g.sincePowerUp < floor {
		return false
	}
	if n := len(g.powerUps); n > 0 {
		last := g.powerUps[n-1]
		if g.cfg.World.FieldWidth-last.Right() < g.powerUpSpacing() {
			return false
		}
	}

	chance := math.Min(p.BaseChance+p.ChanceGrowthPerSec*(g.sincePowerUp-floor)/1000, p.MaxChance)
	g.lastMultiplier = g.PowerUpSpawnMultiplier(visible)
	return g.rng.Float64() < chance*g.lastMultiplier
}

func (g *Generator) maybeSpawnPowerUp(dtMs float64) {
	g.sincePowerUp += dtMs
	if g.elapsed-g.minuteStart >= minuteMs {
		g.minuteStart = g.elapsed
		g.minuteCount = 0
	}
	if !g.powerUpAllowed() {
		return
	}
	g.spawnPowerUp()
}

func (g *Generator) spawnPowerUp() {
	p := g.cfg.PowerUps
	kind := TrickKinds[g.rng.Intn(len(TrickKinds))]

	height := p.HeightMid
	total := p.WeightLow + p.WeightMid + p.WeightHigh
	if total > 0 {
		r := g.rng.Float64() * total
		switch {
		case r < p.WeightLow:
			height = p.HeightLow
		case r < p.WeightLow+p.WeightMid:
			height = p.HeightMid
		default:
			height = p.HeightHigh
		}
	}

	y := g.cfg.World.GroundY - height - p.Size
	g.powerUps = append(g.powerUps, NewPowerUp(g.cfg.World.FieldWidth, y, p.Size, kind))
	g.powerUpsTotal++
	g.minuteCount++
	g.sincePowerUp = 0
}
