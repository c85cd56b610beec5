// Package skater implements Sats Skater, a side-scrolling runner.
//
// The skater jumps and double-jumps over generated obstacles, grinds rails,
// collects power-ups that grant one trick each and earns sats for clearing
// obstacles and landing tricks. Speed and obstacle difficulty rise over the
// run. The package is pure simulation: it never reads the clock, never logs
// and never touches the terminal.
package skater

import (
	"fmt"

	"github.com/vovakirdan/sats-skater/internal/config"
	"github.com/vovakirdan/sats-skater/internal/core"
	"github.com/vovakirdan/sats-skater/internal/registry"
)

// crashSettleMs is how long the post-crash slide plays before game over.
const crashSettleMs = 600

// Game implements registry.Game for Sats Skater.
type Game struct {
	cfg       config.SkaterConfig
	custom    bool // cfg was supplied by the caller
	preset    config.DifficultyPreset
	presetSet bool // preset overrides the package-level one
	runtime   core.RuntimeConfig

	actor  *Actor
	gen    *Generator
	events *EventQueue

	tickCount  uint64
	stepMs     float64
	crashTimer float64
	gameOver   bool
	paused     bool
	highScore  int

	obstaclesCleared int
	tricksLanded     int
	pending          []core.Event
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the
// config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates a game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with an explicit config, bypassing the loader.
func NewWithConfig(cfg config.SkaterConfig) *Game {
	return &Game{cfg: cfg, custom: true}
}

// SetPreset selects a difficulty preset for this instance only. It takes
// effect on the next Reset and is ignored for games built with NewWithConfig.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
	g.presetSet = true
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "skater"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sats Skater"
}

// Reset starts a new run. The high score survives resets.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.custom {
		cfg, err := config.LoadSkater(configPath)
		if err != nil {
			cfg = config.DefaultSkaterConfig()
		}
		if !g.presetSet {
			g.preset = difficultyPreset
		}
		if g.preset != "" {
			config.ApplySkaterPreset(&cfg, g.preset)
		}
		g.cfg = cfg
	}

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.stepMs = 1000 / float64(tickRate)

	if g.events == nil {
		g.events = NewEventQueue()
	}
	g.events.Reset()
	g.pending = g.pending[:0]

	g.actor = NewActor(g.cfg, g.events)
	if g.gen == nil {
		g.gen = NewGenerator(g.cfg, runtime.Seed)
	} else {
		g.gen.cfg = g.cfg
		g.gen.Reseed(runtime.Seed)
	}

	g.tickCount = 0
	g.crashTimer = 0
	g.gameOver = false
	g.paused = false
	g.obstaclesCleared = 0
	g.tricksLanded = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputState) core.StepResult {
	if g.gameOver {
		if in.WasPressedThisTick(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return g.result()
	}

	if in.WasPressedThisTick(core.ActionPause) && g.actor.State() != StateIdle {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if g.actor.State() == StateIdle {
		if !in.AnyActionPressedThisTick() {
			return g.result()
		}
		g.actor.Start()
	}

	g.tickCount++
	g.actor.Update(g.stepMs, in)

	switch o := g.gen.Update(g.stepMs, g.actor).(type) {
	case CrashOutcome:
		g.actor.Crash()
	case ScoreOutcome:
		g.actor.AddScore(o.Amount, ReasonObstacle)
		g.obstaclesCleared++
	case NoOutcome:
	}

	if kind, ok := g.gen.Collected(); ok {
		g.actor.CollectPowerUp(kind)
	}

	if g.actor.Crashed() {
		g.crashTimer += g.stepMs
		if g.crashTimer >= crashSettleMs {
			g.gameOver = true
		}
	}

	if s := g.actor.Score(); s > g.highScore {
		g.highScore = s
	}
	g.collectEvents()
	return g.result()
}

// collectEvents moves typed events into the platform queue and tallies tricks.
func (g *Game) collectEvents() {
	for _, e := range g.events.Drain() {
		if s, ok := e.(ScoreAwarded); ok && s.Reason == ReasonTrick {
			g.tricksLanded++
		}
		g.pending = append(g.pending, core.Event{Name: EventName(e), Tick: g.tickCount, Data: e})
	}
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Tick: g.tickCount}
}

// DrainEvents implements core.EventSource.
func (g *Game) DrainEvents() []core.Event {
	if len(g.pending) == 0 {
		return nil
	}
	out := make([]core.Event, len(g.pending))
	copy(out, g.pending)
	g.pending = g.pending[:0]
	return out
}

// RunStats implements core.StatsSource.
func (g *Game) RunStats() core.RunStats {
	preset := string(g.preset)
	switch {
	case g.custom:
		preset = "custom"
	case preset == "":
		preset = string(config.DifficultyNormal)
	}
	return core.RunStats{
		Score:            g.actor.Score(),
		Distance:         g.actor.Distance(),
		DurationMs:       g.gen.Elapsed(),
		ObstaclesCleared: g.obstaclesCleared,
		TricksLanded:     g.tricksLanded,
		Difficulty:       preset,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.actor == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.actor.Score(),
		Distance: g.actor.Distance(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// SetHighScore seeds the session high score, e.g. from storage.
func (g *Game) SetHighScore(score int) {
	if score > g.highScore {
		g.highScore = score
	}
}

// HighScore returns the best score seen this session.
func (g *Game) HighScore() int { return g.highScore }

// Actor returns the skater. Intended for read access by hosts and tests.
func (g *Game) Actor() *Actor { return g.actor }

// Generator returns the world generator. Intended for read access.
func (g *Game) Generator() *Generator { return g.gen }

// Config returns the active config.
func (g *Game) Config() config.SkaterConfig { return g.cfg }

// String summarizes the run for logs.
func (g *Game) String() string {
	return fmt.Sprintf("skater tick=%d score=%d dist=%.0f speed=%.0f state=%s",
		g.tickCount, g.actor.Score(), g.actor.Distance(), g.gen.Speed(), g.actor.State())
}

// Register the game with the registry
func init() {
	registry.Register("skater", func() registry.Game {
		return New()
	})
}
