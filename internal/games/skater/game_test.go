package skater

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/sats-skater/internal/config"
	"github.com/vovakirdan/sats-skater/internal/core"
	"github.com/vovakirdan/sats-skater/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func newTestGame(seed int64) *Game {
	g := NewWithConfig(config.DefaultSkaterConfig())
	g.Reset(testRuntime(seed))
	return g
}

// playAutopilot runs the bot for n ticks and returns the event names seen.
func playAutopilot(g *Game, n int) []string {
	bot := NewAutopilot()
	var names []string
	for i := 0; i < n; i++ {
		bot.Plan(g)
		g.Step(bot)
		for _, e := range g.DrainEvents() {
			names = append(names, e.Name)
		}
	}
	return names
}

func TestGameDeterminism(t *testing.T) {
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	events1 := playAutopilot(g1, 60*90)
	events2 := playAutopilot(g2, 60*90)

	if g1.State() != g2.State() {
		t.Errorf("states differ: %+v vs %+v", g1.State(), g2.State())
	}
	if g1.tickCount != g2.tickCount {
		t.Errorf("tick counts differ: %d vs %d", g1.tickCount, g2.tickCount)
	}
	if !reflect.DeepEqual(events1, events2) {
		t.Error("event streams differ")
	}
	if len(events1) == 0 {
		t.Error("expected the bot to produce events")
	}
}

func TestGameIdleUntilInput(t *testing.T) {
	g := newTestGame(1)

	for i := 0; i < 120; i++ {
		r := g.Step(core.NewInputFrame())
		if r.Tick != 0 {
			t.Fatal("no ticks should run before the first input")
		}
	}
	if g.Actor().State() != StateIdle || g.Generator().Elapsed() != 0 {
		t.Fatal("world should wait for the player")
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("pause must be ignored before the run starts")
	}

	r := g.Step(press(core.ActionRight))
	if r.Tick != 1 || g.Actor().State() != StateSkating {
		t.Errorf("any gameplay action should drop in, got tick %d state %s", r.Tick, g.Actor().State())
	}
}

func TestGameStartJumpEmitsEvent(t *testing.T) {
	g := newTestGame(1)
	g.Step(press(core.ActionJump))

	events := g.DrainEvents()
	if len(events) == 0 || events[0].Name != "jump" || events[0].Tick != 1 {
		t.Fatalf("expected a jump event on tick 1, got %+v", events)
	}
	if _, ok := events[0].Data.(JumpStarted); !ok {
		t.Errorf("event data = %T, expected JumpStarted", events[0].Data)
	}
	if g.DrainEvents() != nil {
		t.Error("drain should empty the queue")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(1)
	g.Step(press(core.ActionRight))
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}

	r := g.Step(press(core.ActionPause))
	if !r.State.Paused {
		t.Fatal("expected paused")
	}
	frozen := g.Generator().Elapsed()
	for i := 0; i < 30; i++ {
		g.Step(press(core.ActionJump))
	}
	if g.Generator().Elapsed() != frozen || r.Tick != g.result().Tick {
		t.Error("world must not advance while paused")
	}
	if g.Actor().State() != StateSkating {
		t.Error("input must be ignored while paused")
	}

	if g.Step(press(core.ActionPause)).State.Paused {
		t.Error("second pause should resume")
	}
}

func TestGameCrashAndRestart(t *testing.T) {
	g := newTestGame(3)
	g.Step(press(core.ActionRight))

	a := g.Actor()
	a.AddScore(50, ReasonObstacle)
	g.Generator().place(groundObstacle(g.cfg, a.X+a.Width/2, 40, 30))

	g.Step(core.NewInputFrame())
	if !a.Crashed() {
		t.Fatal("expected a crash")
	}
	if g.State().GameOver {
		t.Fatal("game over should wait for the crash to settle")
	}
	if g.HighScore() != 50 {
		t.Errorf("high score = %d, expected 50", g.HighScore())
	}

	ticks := 1
	for !g.State().GameOver && ticks < 120 {
		g.Step(core.NewInputFrame())
		ticks++
	}
	if ticks < 34 || ticks > 38 {
		t.Errorf("game over after %d ticks, expected about 36", ticks)
	}

	var crashes int
	for _, e := range g.DrainEvents() {
		if e.Name == "crash" {
			crashes++
		}
	}
	if crashes != 1 {
		t.Errorf("expected one crash event, got %d", crashes)
	}

	g.Step(press(core.ActionJump))
	if !g.State().GameOver {
		t.Error("only restart should leave game over")
	}

	r := g.Step(press(core.ActionRestart))
	if r.State.GameOver || r.State.Score != 0 || r.Tick != 0 {
		t.Errorf("restart should begin a fresh run, got %+v", r)
	}
	if g.Actor().State() != StateIdle {
		t.Error("restart should wait for the player again")
	}
	if g.HighScore() != 50 {
		t.Errorf("high score should survive restart, got %d", g.HighScore())
	}
	if len(g.Generator().Obstacles()) != 0 {
		t.Error("restart should clear the world")
	}
}

func TestGameScoreOutcomeCountsObstacle(t *testing.T) {
	g := newTestGame(3)
	g.Step(press(core.ActionJump))
	for i := 0; i < 8; i++ {
		g.Step(core.NewInputFrame())
	}
	a := g.Actor()
	g.Generator().place(groundObstacle(g.cfg, a.X-60, 40, 30))

	r := g.Step(core.NewInputFrame())
	if r.State.Score != g.cfg.Scoring.ObstaclePoints {
		t.Errorf("score = %d, expected %d", r.State.Score, g.cfg.Scoring.ObstaclePoints)
	}
	if stats := g.RunStats(); stats.ObstaclesCleared != 1 || stats.Difficulty != "custom" {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGamePowerUpTrickLanded(t *testing.T) {
	g := newTestGame(3)
	g.Step(press(core.ActionRight))

	a := g.Actor()
	g.Generator().powerUps = append(g.Generator().powerUps, NewPowerUp(a.X, a.Y, g.cfg.PowerUps.Size, TrickC))
	g.Step(core.NewInputFrame())
	if a.HeldPowerUp() != TrickC {
		t.Fatalf("held = %s, expected %s", a.HeldPowerUp(), TrickC)
	}

	g.Step(press(core.ActionTrickA))
	if a.CurrentTrick() != TrickC {
		t.Fatalf("any trick key should spend the held power-up, got %s", a.CurrentTrick())
	}
	for i := 0; i < 120 && !a.OnGround(); i++ {
		g.Step(core.NewInputFrame())
	}
	if a.Score() != g.cfg.Tricks.PointsC {
		t.Errorf("score = %d, expected %d", a.Score(), g.cfg.Tricks.PointsC)
	}
	if g.RunStats().TricksLanded != 1 {
		t.Errorf("tricks landed = %d, expected 1", g.RunStats().TricksLanded)
	}
}

func TestGameCrashTickKeepsPowerUpInWorld(t *testing.T) {
	g := newTestGame(3)
	g.Step(press(core.ActionRight))

	a := g.Actor()
	g.Generator().place(groundObstacle(g.cfg, a.X+10, 40, 30))
	g.Generator().powerUps = append(g.Generator().powerUps, NewPowerUp(a.X, a.Y, g.cfg.PowerUps.Size, TrickA))

	g.Step(core.NewInputFrame())
	if !a.Crashed() {
		t.Fatal("expected a crash")
	}
	if a.HeldPowerUp() != TrickNone {
		t.Errorf("held = %s, expected none", a.HeldPowerUp())
	}
	ups := g.Generator().PowerUps()
	if len(ups) != 1 || ups[0].Collected {
		t.Errorf("the power-up must not be spent on a crash tick: %+v", ups)
	}
}

func TestGameResetRestoresGenerator(t *testing.T) {
	g := newTestGame(77)
	playAutopilot(g, 60*20)

	g.Reset(testRuntime(77))
	fresh := NewGenerator(g.cfg, 77)
	if !reflect.DeepEqual(g.Generator().Obstacles(), fresh.Obstacles()) ||
		g.Generator().Speed() != fresh.Speed() || g.Generator().Seed() != 77 {
		t.Error("reset generator should match a fresh one")
	}
	if g.tickCount != 0 || g.obstaclesCleared != 0 || g.tricksLanded != 0 {
		t.Error("reset should clear run counters")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.Row(0), "₿ 0") {
		t.Errorf("HUD row = %q, expected the score", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "SATS SKATER") {
		t.Error("idle screen should show the title")
	}

	g.Step(press(core.ActionRight))
	g.Render(screen)
	if strings.Contains(screen.String(), "SATS SKATER") {
		t.Error("title should disappear once skating")
	}
	if !strings.ContainsRune(screen.String(), BoardChar) {
		t.Error("the skater should be drawn")
	}
}

func TestGameRegistered(t *testing.T) {
	g, err := registry.Create("skater")
	if err != nil {
		t.Fatalf("skater not registered: %v", err)
	}
	if g.ID() != "skater" || g.Title() != "Sats Skater" {
		t.Errorf("got %s / %s", g.ID(), g.Title())
	}
	if _, ok := g.(core.EventSource); !ok {
		t.Error("skater should publish events")
	}
	if _, ok := g.(core.StatsSource); !ok {
		t.Error("skater should report run stats")
	}
}

func TestGameSnapshot(t *testing.T) {
	g := newTestGame(5)
	playAutopilot(g, 60*10)

	s := g.Snapshot()
	if len(s.Obstacles) != len(g.Generator().Obstacles()) {
		t.Errorf("snapshot has %d obstacles, expected %d", len(s.Obstacles), len(g.Generator().Obstacles()))
	}
	if len(s.Obstacles) > 0 {
		s.Obstacles[0].X = -1e9
		if g.Generator().Obstacles()[0].X == -1e9 {
			t.Error("snapshot must not alias live obstacles")
		}
	}
}

func TestGameSetPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	g := New()
	g.SetPreset(config.DifficultyFixed)
	g.Reset(testRuntime(1))

	if g.Config().Difficulty.Enabled || g.Config().Speed.Increment != 0 {
		t.Error("fixed preset should disable progression")
	}
	if g.RunStats().Difficulty != "fixed" {
		t.Errorf("difficulty = %q, expected fixed", g.RunStats().Difficulty)
	}

	custom := NewWithConfig(config.DefaultSkaterConfig())
	custom.SetPreset(config.DifficultyFixed)
	custom.Reset(testRuntime(1))
	if !custom.Config().Difficulty.Enabled {
		t.Error("an explicit config must not be overridden by a preset")
	}
}
