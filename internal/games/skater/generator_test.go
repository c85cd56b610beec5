package skater

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/sats-skater/internal/config"
)

// quietConfig disables random spawning so tests can place entities by hand.
func quietConfig() config.SkaterConfig {
	cfg := config.DefaultSkaterConfig()
	cfg.Obstacles.InitialDelayMs = 1e12
	cfg.PowerUps.MinIntervalMs = 1e12
	cfg.PowerUps.FallbackMs = 0
	return cfg
}

// ghostActor skates far left of the field so it never touches or passes
// anything, while still driving the world forward.
func ghostActor(cfg config.SkaterConfig) *Actor {
	a := NewActor(cfg, nil)
	a.X = -1e7
	a.Start()
	return a
}

// airborneActor returns an actor a few ticks into a jump, well above any
// low obstacle.
func airborneActor(cfg config.SkaterConfig) *Actor {
	a, _ := newSkatingActor(cfg)
	a.Jump()
	for i := 0; i < 10; i++ {
		a.Update(tickMs, nil)
	}
	return a
}

func groundObstacle(cfg config.SkaterConfig, x, w, h float64) Obstacle {
	return Obstacle{X: x, Y: cfg.World.GroundY - h, Width: w, Height: h, Kind: KindLow}
}

func TestGeneratorPassScoresOncePerJump(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a := airborneActor(cfg)

	first := g.place(groundObstacle(cfg, 800, 50, 40))
	a.X = 815 // leading edge clears the trailing edge after one tick of scroll

	out := g.Update(tickMs, a)
	score, ok := out.(ScoreOutcome)
	if !ok {
		t.Fatalf("outcome = %#v, expected ScoreOutcome", out)
	}
	if score.Amount != cfg.Scoring.ObstaclePoints || score.ObstacleID != first {
		t.Errorf("score = %+v, expected %d for obstacle %d", score, cfg.Scoring.ObstaclePoints, first)
	}
	if score.JumpID != a.JumpID() {
		t.Errorf("score jump id = %d, expected %d", score.JumpID, a.JumpID())
	}
	if a.AirState() != AirAirbornePaid {
		t.Error("claiming should mark the jump paid")
	}

	second := g.place(groundObstacle(cfg, 780, 50, 40))
	out = g.Update(tickMs, a)
	if _, ok := out.(NoOutcome); !ok {
		t.Errorf("second obstacle in the same jump scored: %#v", out)
	}
	if !g.Passed(second) {
		t.Error("second obstacle should still be marked passed")
	}

	out = g.Update(tickMs, a)
	if _, ok := out.(NoOutcome); !ok {
		t.Errorf("a passed obstacle must not score again: %#v", out)
	}
}

func TestGeneratorOneScorePerTick(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a := airborneActor(cfg)
	a.X = 700

	g.place(groundObstacle(cfg, 500, 40, 30))
	g.place(groundObstacle(cfg, 600, 40, 30))

	if _, ok := g.Update(tickMs, a).(ScoreOutcome); !ok {
		t.Fatal("expected a score for the passed obstacles")
	}
	if _, ok := a.ClaimJumpReward(); ok {
		t.Error("jump should already be paid")
	}
	for _, o := range g.Obstacles() {
		if !g.Passed(o.ID) {
			t.Errorf("obstacle %d should be passed", o.ID)
		}
	}
}

func TestGeneratorGroundPassDoesNotScore(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a, _ := newSkatingActor(cfg)
	a.X = 400

	id := g.place(groundObstacle(cfg, 200, 40, 30))
	if _, ok := g.Update(tickMs, a).(NoOutcome); !ok {
		t.Fatal("passing on the ground must not score")
	}
	if !g.Passed(id) {
		t.Error("the obstacle should be marked passed anyway")
	}

	a.Jump()
	g.Update(tickMs, a)
	if a.AirState() != AirAirborneUnpaid {
		t.Error("an already passed obstacle must not consume the next jump")
	}
}

func TestGeneratorStackedPieceNeverScores(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a := airborneActor(cfg)
	a.X = 760

	base := g.place(groundObstacle(cfg, 900, 60, 40))
	piece := g.place(Obstacle{X: 700, Y: cfg.World.GroundY - 60, Width: 30, Height: 20, Kind: KindLow, StackParent: base})

	out := g.Update(tickMs, a)
	if _, ok := out.(NoOutcome); !ok {
		t.Fatalf("stacked piece scored: %#v", out)
	}
	if !g.Passed(piece) {
		t.Error("the piece should be marked passed")
	}
	if a.AirState() != AirAirborneUnpaid {
		t.Error("a stacked piece must not consume the jump reward")
	}
}

func TestGeneratorCrash(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a, _ := newSkatingActor(cfg)

	passed := g.place(groundObstacle(cfg, 0, 20, 30))
	hit := g.place(groundObstacle(cfg, a.X+10, 40, 30))

	out := g.Update(tickMs, a)
	crash, ok := out.(CrashOutcome)
	if !ok {
		t.Fatalf("outcome = %#v, expected CrashOutcome", out)
	}
	if crash.ObstacleID != hit || crash.Kind != KindLow {
		t.Errorf("crash = %+v, expected obstacle %d", crash, hit)
	}
	o, _ := g.Lookup(hit)
	if !o.Hit {
		t.Error("crashed obstacle should be flagged hit")
	}
	if g.Passed(passed) {
		t.Error("a crash must stop processing further obstacles this tick")
	}
}

func TestGeneratorTouchingEdgesDoNotCrash(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a, _ := newSkatingActor(cfg)
	a.VX = 0 // no scroll

	g.place(groundObstacle(cfg, a.Right(), 40, 30))
	if _, ok := g.Update(tickMs, a).(CrashOutcome); ok {
		t.Error("touching boxes must not collide")
	}
}

func TestGeneratorRemovesFarBehind(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a := ghostActor(cfg)

	id := g.place(groundObstacle(cfg, -cfg.World.RemoveBehind-100, 50, 30))
	keep := g.place(groundObstacle(cfg, -cfg.World.RemoveBehind+100, 50, 30))
	g.passed[id] = struct{}{}

	g.Update(tickMs, a)
	if _, ok := g.Lookup(id); ok {
		t.Error("obstacle far behind should be removed")
	}
	if g.Passed(id) {
		t.Error("removal should prune the passed set")
	}
	if _, ok := g.Lookup(keep); !ok {
		t.Error("obstacle inside the removal threshold should stay")
	}
}

func TestGeneratorLookupAfterBaseRemoved(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a := ghostActor(cfg)

	base := g.place(groundObstacle(cfg, -1000, 50, 30))
	piece := g.place(Obstacle{X: 0, Y: 300, Width: 20, Height: 20, StackParent: base})

	g.Update(tickMs, a)
	p, ok := g.Lookup(piece)
	if !ok {
		t.Fatal("piece should survive its base")
	}
	if _, ok := g.Lookup(p.StackParent); ok {
		t.Error("lookup of a removed base should fail cleanly")
	}
}

func TestGeneratorStackHeightInvariant(t *testing.T) {
	cfg := quietConfig()
	cfg.Stacking.BaseChance = 1
	cfg.Stacking.DoubleStackChance = 0.5
	g := NewGenerator(cfg, 99)
	g.elapsed = 1e6 // past onboarding

	stacks := 0
	for i := 0; i < 500; i++ {
		g.spawnObstacle(i%3 == 0)
	}
	for _, o := range g.Obstacles() {
		if o.Stacked() {
			continue
		}
		h := g.StackHeight(o.ID)
		if h > o.Height {
			stacks++
			if o.DoubleJump || o.Kind == KindRail {
				t.Errorf("obstacle %d (%s, double=%v) must not carry a stack", o.ID, o.Kind, o.DoubleJump)
			}
		}
		if !o.DoubleJump && h > cfg.Obstacles.MaxJumpHeight+1e-9 {
			t.Errorf("stack %d is %v tall, above the single-jump max %v", o.ID, h, cfg.Obstacles.MaxJumpHeight)
		}
		if o.DoubleJump && o.Height > cfg.Obstacles.MaxDoubleJumpHeight {
			t.Errorf("double-jump obstacle %d is %v tall", o.ID, o.Height)
		}
	}
	if stacks == 0 {
		t.Fatal("expected some stacks with base chance 1")
	}

	for _, o := range g.Obstacles() {
		if !o.Stacked() {
			continue
		}
		base, ok := g.Lookup(o.StackParent)
		if !ok {
			t.Fatalf("piece %d has no base", o.ID)
		}
		if o.X < base.X || o.Right() > base.Right() {
			t.Errorf("piece %d overhangs its base", o.ID)
		}
	}
}

func TestGeneratorObstacleShapes(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 5)

	for i := 0; i < 300; i++ {
		g.spawnObstacle(false)
	}
	for _, o := range g.Obstacles() {
		if o.Stacked() {
			continue
		}
		if o.DoubleJump {
			t.Fatal("no double-jump obstacles during onboarding")
		}
		if math.Abs(o.Y+o.Height-cfg.World.GroundY) > 1e-9 {
			t.Errorf("obstacle %d does not stand on the ground", o.ID)
		}
		if o.X > cfg.World.FieldWidth || o.X < cfg.World.FieldWidth-cfg.Obstacles.SpawnJitterPx {
			t.Errorf("obstacle %d spawned at %v, expected near the right edge", o.ID, o.X)
		}
		if o.Difficulty < 0 || o.Difficulty > 1 {
			t.Errorf("difficulty %v out of range", o.Difficulty)
		}
	}
}

func TestGeneratorKindRepetitionAvoided(t *testing.T) {
	cfg := quietConfig()
	cfg.Obstacles.RepeatAvoidChance = 1
	g := NewGenerator(cfg, 3)

	prev := g.pickKind()
	g.lastKind, g.hasLastKind = prev, true
	for i := 0; i < 200; i++ {
		k := g.pickKind()
		if k == prev {
			t.Fatalf("kind %s repeated with avoid chance 1", k)
		}
		prev = k
		g.lastKind = k
	}
}

func TestGeneratorFirstSpawnWaitsForOnboarding(t *testing.T) {
	cfg := config.DefaultSkaterConfig()
	cfg.PowerUps.FallbackMs = 0
	cfg.PowerUps.MinIntervalMs = 1e12
	g := NewGenerator(cfg, 11)
	a := ghostActor(cfg)

	first := cfg.Obstacles.InitialDelayMs + cfg.Obstacles.EasyFirstDelayMs
	for g.Elapsed() < first-tickMs {
		g.Update(tickMs, a)
		if g.Spawned() != 0 {
			t.Fatalf("obstacle spawned at %vms, before %vms", g.Elapsed(), first)
		}
	}
	for i := 0; i < 3; i++ {
		g.Update(tickMs, a)
	}
	if g.Spawned() != 1 {
		t.Errorf("expected the first obstacle right after the onboarding delay, got %d", g.Spawned())
	}
}

func TestGeneratorScreenSpacing(t *testing.T) {
	cfg := config.DefaultSkaterConfig()
	cfg.PowerUps.FallbackMs = 0
	cfg.PowerUps.MinIntervalMs = 1e12
	g := NewGenerator(cfg, 21)
	a := ghostActor(cfg)

	for i := 0; i < 60*120; i++ {
		before := g.Spawned()
		last, had := g.lastBase()
		dx := a.VX * tickMs / 1000
		g.Update(tickMs, a)
		if g.Spawned() > before && had {
			gap := cfg.World.FieldWidth - (last.Right() - dx)
			if gap < cfg.Obstacles.RapidScreenSpacing-1e-6 {
				t.Fatalf("obstacle spawned %vpx after the previous one", gap)
			}
		}
	}
	if g.Spawned() < 10 {
		t.Errorf("expected a steady stream of obstacles, got %d in two minutes", g.Spawned())
	}
}

func TestGeneratorSpeedRamp(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a := ghostActor(cfg)

	prev := g.Speed()
	for i := 0; i < 60*60*5; i++ {
		g.Update(tickMs, a)
		if g.Speed() < prev {
			t.Fatal("speed must never decrease")
		}
		prev = g.Speed()
		if a.ForwardSpeed() != g.Speed() {
			t.Fatal("world speed should be mirrored on the actor")
		}
	}
	if g.Speed() != cfg.Speed.Max {
		t.Errorf("speed after five minutes = %v, expected cap %v", g.Speed(), cfg.Speed.Max)
	}
}

func TestGeneratorFixedPresetHoldsSpeed(t *testing.T) {
	cfg := quietConfig()
	config.ApplySkaterPreset(&cfg, config.DifficultyFixed)
	g := NewGenerator(cfg, 1)
	a := ghostActor(cfg)

	for i := 0; i < 60*60; i++ {
		g.Update(tickMs, a)
	}
	if g.Speed() != cfg.Speed.Base {
		t.Errorf("fixed preset speed = %v, expected base %v", g.Speed(), cfg.Speed.Base)
	}
}

func TestGeneratorNoSpawnAfterCrash(t *testing.T) {
	cfg := config.DefaultSkaterConfig()
	g := NewGenerator(cfg, 1)
	a := ghostActor(cfg)
	a.Crash()

	for i := 0; i < 60*30; i++ {
		g.Update(tickMs, a)
	}
	if g.Spawned() != 0 || g.PowerUpsSpawned() != 0 {
		t.Error("a crashed run must not spawn")
	}
}

type spawnRecord struct {
	Tick      int
	Obstacles []Obstacle
	PowerUps  []PowerUp
}

func record(g *Generator, a *Actor, ticks int) []spawnRecord {
	var out []spawnRecord
	seenO, seenP := 0, 0
	for i := 0; i < ticks; i++ {
		g.Update(tickMs, a)
		if g.Spawned() != seenO || g.PowerUpsSpawned() != seenP {
			seenO, seenP = g.Spawned(), g.PowerUpsSpawned()
			out = append(out, spawnRecord{
				Tick:      i,
				Obstacles: append([]Obstacle(nil), g.Obstacles()...),
				PowerUps:  append([]PowerUp(nil), g.PowerUps()...),
			})
		}
	}
	return out
}

func TestGeneratorResetMatchesFresh(t *testing.T) {
	cfg := config.DefaultSkaterConfig()
	const ticks = 60 * 90

	fresh := NewGenerator(cfg, 4242)
	want := record(fresh, ghostActor(cfg), ticks)
	if len(want) == 0 {
		t.Fatal("expected spawns in ninety seconds")
	}

	reused := NewGenerator(cfg, 4242)
	record(reused, ghostActor(cfg), 60*37)
	reused.Reset()

	if len(reused.Obstacles()) != 0 || len(reused.PowerUps()) != 0 {
		t.Fatal("reset must clear live entities")
	}
	if reused.Elapsed() != 0 || reused.Speed() != cfg.Speed.Base || reused.Spawned() != 0 {
		t.Fatal("reset must restore counters")
	}

	got := record(reused, ghostActor(cfg), ticks)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reset generator diverged from a fresh one: %d vs %d spawn records", len(got), len(want))
	}
}

func TestGeneratorSeedsDiffer(t *testing.T) {
	cfg := config.DefaultSkaterConfig()
	a := record(NewGenerator(cfg, 1), ghostActor(cfg), 60*60)
	b := record(NewGenerator(cfg, 2), ghostActor(cfg), 60*60)
	if reflect.DeepEqual(a, b) {
		t.Error("different seeds should produce different worlds")
	}
}

func TestGeneratorRailGrindScoresOnExit(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.JumpCooldownMs = 0
	g := NewGenerator(cfg, 1)
	a, q := newSkatingActor(cfg)
	a.Jump()

	rail := g.place(Obstacle{X: 100, Y: 320, Width: 200, Height: 40, Kind: KindRail})
	a.Y = 320 - a.Height - 2
	a.VY = 200
	q.Drain()

	a.Update(tickMs, nil)
	if out := g.Update(tickMs, a); out != (NoOutcome{}) {
		t.Fatalf("landing on a rail top must not crash: %#v", out)
	}
	if !a.OnRail() || a.Rail() != rail || a.State() != StateGrinding {
		t.Fatalf("expected grinding rail %d, got %s", rail, a.State())
	}

	scored := false
	for i := 0; i < 120 && !scored; i++ {
		a.Update(tickMs, nil)
		switch out := g.Update(tickMs, a).(type) {
		case CrashOutcome:
			t.Fatalf("crashed while grinding: %+v", out)
		case ScoreOutcome:
			if out.ObstacleID != rail {
				t.Errorf("scored obstacle %d, expected rail %d", out.ObstacleID, rail)
			}
			scored = true
		}
	}
	if !scored {
		t.Fatal("leaving the rail should score it")
	}
	if a.OnRail() || a.State() != StateFalling {
		t.Errorf("actor should fall off the rail end, got %s", a.State())
	}

	grinds := 0
	for _, e := range q.Drain() {
		if _, ok := e.(GrindStarted); ok {
			grinds++
		}
	}
	if grinds != 1 {
		t.Errorf("expected one GrindStarted, got %d", grinds)
	}
}

func TestGeneratorRailSideHitCrashes(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a, _ := newSkatingActor(cfg)

	g.place(Obstacle{X: a.Right() - 2, Y: cfg.World.GroundY - 30, Width: 200, Height: 30, Kind: KindRail})
	if _, ok := g.Update(tickMs, a).(CrashOutcome); !ok {
		t.Error("running into a rail from the side should crash")
	}
}

func TestPowerUpVisibilityHardBlock(t *testing.T) {
	cfg := config.DefaultSkaterConfig()
	g := NewGenerator(cfg, 1)
	g.elapsed = 200_000
	g.sincePowerUp = 1e9

	g.powerUps = append(g.powerUps,
		NewPowerUp(200, 200, cfg.PowerUps.Size, TrickA),
		NewPowerUp(500, 200, cfg.PowerUps.Size, TrickB),
	)
	if n := g.VisiblePowerUps(); n != 2 {
		t.Fatalf("visible = %d, expected 2", n)
	}
	if m := g.PowerUpSpawnMultiplier(2); m > 0.04+1e-12 {
		t.Errorf("multiplier for two visible = %v, expected <= 0.04", m)
	}
	if g.powerUpAllowed() {
		t.Error("two visible power-ups must block spawning")
	}

	g.powerUps = append(g.powerUps, NewPowerUp(600, 100, cfg.PowerUps.Size, TrickC))
	if g.powerUpAllowed() {
		t.Error("three visible power-ups must block spawning")
	}
}

func TestPowerUpMultiplierDecays(t *testing.T) {
	g := NewGenerator(config.DefaultSkaterConfig(), 1)
	if g.PowerUpSpawnMultiplier(0) != 1 {
		t.Error("no visible power-ups should not suppress")
	}
	if m := g.PowerUpSpawnMultiplier(1); math.Abs(m-0.2) > 1e-12 {
		t.Errorf("multiplier for one visible = %v, expected 0.2", m)
	}
}

func TestPowerUpGates(t *testing.T) {
	cfg := config.DefaultSkaterConfig()
	cfg.PowerUps.BaseChance = 1 // every roll passes
	cfg.PowerUps.MaxChance = 1

	tests := []struct {
		name  string
		setup func(g *Generator)
		want  bool
	}{
		{"open", func(g *Generator) {}, true},
		{"per-minute cap", func(g *Generator) { g.minuteCount = cfg.PowerUps.MaxPerMinute }, false},
		{"early cap", func(g *Generator) {
			g.elapsed = cfg.PowerUps.EarlyGameWindowMs - 1
			g.powerUpsTotal = cfg.PowerUps.EarlyGameCap
		}, false},
		{"floor", func(g *Generator) { g.sincePowerUp = cfg.PowerUps.MinIntervalMs - 1 }, false},
		{"spacing", func(g *Generator) {
			g.powerUps = append(g.powerUps, NewPowerUp(cfg.World.FieldWidth+10, 100, cfg.PowerUps.Size, TrickA))
		}, false},
		{"fallback beats caps", func(g *Generator) {
			g.sincePowerUp = cfg.PowerUps.FallbackMs
			g.minuteCount = cfg.PowerUps.MaxPerMinute
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(cfg, 1)
			g.elapsed = 200_000
			g.sincePowerUp = 20_000
			tt.setup(g)
			if got := g.powerUpAllowed(); got != tt.want {
				t.Errorf("powerUpAllowed() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestPowerUpFloorAndSpacingRelax(t *testing.T) {
	cfg := config.DefaultSkaterConfig()
	g := NewGenerator(cfg, 1)

	if f := g.powerUpFloor(); f != cfg.PowerUps.MinIntervalMs {
		t.Errorf("floor at start = %v, expected %v", f, cfg.PowerUps.MinIntervalMs)
	}
	if s := g.powerUpSpacing(); s != cfg.PowerUps.BaseMinDistance*cfg.PowerUps.EarlySpacingMultiplier {
		t.Errorf("spacing at start = %v", s)
	}

	g.elapsed = 1e7
	if f := g.powerUpFloor(); f != cfg.PowerUps.MinIntervalMs+cfg.PowerUps.EarlyFloorGrowthMs {
		t.Errorf("floor after growth = %v", f)
	}
	if s := g.powerUpSpacing(); s != cfg.PowerUps.BaseMinDistance {
		t.Errorf("spacing after relax = %v, expected %v", s, cfg.PowerUps.BaseMinDistance)
	}
}

func TestPowerUpFallbackSpawns(t *testing.T) {
	cfg := config.DefaultSkaterConfig()
	cfg.PowerUps.BaseChance = 0
	cfg.PowerUps.ChanceGrowthPerSec = 0
	cfg.Obstacles.InitialDelayMs = 1e12
	g := NewGenerator(cfg, 1)
	a := ghostActor(cfg)

	for g.Elapsed() < cfg.PowerUps.FallbackMs+tickMs {
		g.Update(tickMs, a)
	}
	if g.PowerUpsSpawned() != 1 {
		t.Errorf("fallback should force exactly one spawn, got %d", g.PowerUpsSpawned())
	}
}

func TestPowerUpCollection(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a, _ := newSkatingActor(cfg)
	a.VX = 0

	g.powerUps = append(g.powerUps,
		NewPowerUp(a.X, a.Y, cfg.PowerUps.Size, TrickB),
		NewPowerUp(a.X+4, a.Y, cfg.PowerUps.Size, TrickC),
	)

	g.Update(tickMs, a)
	kind, ok := g.Collected()
	if !ok {
		t.Fatal("overlapping power-up should be collected")
	}
	a.CollectPowerUp(kind)

	collected := 0
	for _, p := range g.PowerUps() {
		if p.Collected {
			collected++
		}
	}
	if collected != 1 {
		t.Errorf("exactly one power-up should be collected, got %d", collected)
	}

	g.Update(tickMs, a)
	if _, ok := g.Collected(); ok {
		t.Error("a full slot must leave the second power-up untouched")
	}

	for i := 0; i < 60; i++ {
		g.Update(tickMs, a)
	}
	for _, p := range g.PowerUps() {
		if p.Collected {
			t.Error("collected power-up should be removed after its animation")
		}
	}
	if len(g.PowerUps()) != 1 {
		t.Errorf("the uncollected power-up should remain, got %d", len(g.PowerUps()))
	}
}

func TestPowerUpAndScoreSameTick(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a := airborneActor(cfg)
	a.X = 400

	g.place(groundObstacle(cfg, 300, 40, 30))
	g.powerUps = append(g.powerUps, NewPowerUp(a.X+5, a.Y, cfg.PowerUps.Size, TrickA))

	out := g.Update(tickMs, a)
	if _, ok := out.(ScoreOutcome); !ok {
		t.Errorf("expected a score, got %#v", out)
	}
	if _, ok := g.Collected(); !ok {
		t.Error("the pickup must be reported alongside the score")
	}
}

func TestPowerUpNotCollectedOnCrashTick(t *testing.T) {
	cfg := quietConfig()
	g := NewGenerator(cfg, 1)
	a, _ := newSkatingActor(cfg)

	g.place(groundObstacle(cfg, a.X+10, 40, 30))
	g.powerUps = append(g.powerUps, NewPowerUp(a.X, a.Y, cfg.PowerUps.Size, TrickB))

	if _, ok := g.Update(tickMs, a).(CrashOutcome); !ok {
		t.Fatal("expected a crash")
	}
	if kind, ok := g.Collected(); ok {
		t.Errorf("nothing can be picked up on a crash tick, got %s", kind)
	}
	if len(g.PowerUps()) != 1 || g.PowerUps()[0].Collected {
		t.Error("the power-up should stay in the world uncollected")
	}
}

// pastOnboarding moves a generator beyond the easy-mode window.
func pastOnboarding(g *Generator) {
	g.spawned = g.cfg.Obstacles.EasyModeCount
	g.elapsed = g.cfg.Obstacles.EasyModeWindowMs
}

func TestGeneratorSpawnModes(t *testing.T) {
	tests := []struct {
		name     string
		rapid    float64
		surprise float64
		easy     bool
		interval float64
		wantMode spawnMode
		want     float64
	}{
		{"rapid", 1, 0, false, 2000, spawnRapid, 900},
		{"surprise", 0, 1, false, 2000, spawnSurprise, 1200},
		{"rapid floor", 1, 0, false, 1000, spawnRapid, 550},
		{"normal", 0, 0, false, 2000, spawnNormal, 2000},
		{"onboarding", 1, 0, true, 2000, spawnNormal, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Obstacles.RapidChance = tt.rapid
			cfg.Obstacles.SurpriseChance = tt.surprise
			cfg.Obstacles.RapidFraction = 0.45
			cfg.Obstacles.SurpriseFraction = 0.6
			cfg.Obstacles.MinIntervalAtMaxMs = 550
			g := NewGenerator(cfg, 9)
			if !tt.easy {
				pastOnboarding(g)
			}

			g.nextInterval = tt.interval
			g.rollMode()
			if g.mode != tt.wantMode {
				t.Errorf("mode = %d, expected %d", g.mode, tt.wantMode)
			}
			if math.Abs(g.nextInterval-tt.want) > 1e-9 {
				t.Errorf("interval = %v, expected %v", g.nextInterval, tt.want)
			}
		})
	}
}

func TestGeneratorRapidSpawnPlacement(t *testing.T) {
	cfg := quietConfig()
	cfg.Obstacles.SpawnJitterPx = 0
	cfg.Stacking.Enabled = false

	for _, rapid := range []bool{false, true} {
		g := NewGenerator(cfg, 4)
		pastOnboarding(g)
		g.spawnObstacle(rapid)

		want := cfg.World.FieldWidth
		if rapid {
			want -= cfg.Obstacles.RapidOffset
		}
		if x := g.Obstacles()[0].X; math.Abs(x-want) > 1e-9 {
			t.Errorf("rapid=%v: spawned at %v, expected %v", rapid, x, want)
		}
	}
}

func TestGeneratorRapidDifficultyScale(t *testing.T) {
	cfg := quietConfig()
	cfg.Obstacles.Pattern = nil
	cfg.Obstacles.SpikeChance = 0

	normal := NewGenerator(cfg, 2)
	rapid := NewGenerator(cfg, 2)
	for _, g := range []*Generator{normal, rapid} {
		g.distance = cfg.Difficulty.Progression.MaxAt / 2
		g.speed = (cfg.Speed.Base + cfg.Speed.Max) / 2
	}

	d := normal.obstacleDifficulty(false)
	if d <= 0 {
		t.Fatalf("difficulty = %v, expected a positive value mid-run", d)
	}
	want := d * cfg.Obstacles.RapidDifficultyScale
	if got := rapid.obstacleDifficulty(true); math.Abs(got-want) > 1e-9 {
		t.Errorf("rapid difficulty = %v, expected %v", got, want)
	}
}

func TestGeneratorRapidScreenSpacing(t *testing.T) {
	cfg := quietConfig()
	o := cfg.Obstacles
	gap := (o.RapidScreenSpacing + o.MinScreenSpacing) / 2

	for _, tt := range []struct {
		mode  spawnMode
		spawn bool
	}{
		{spawnNormal, false},
		{spawnRapid, true},
	} {
		g := NewGenerator(cfg, 6)
		pastOnboarding(g)
		g.place(groundObstacle(cfg, cfg.World.FieldWidth-gap-40, 40, 30))

		g.mode = tt.mode
		g.nextInterval = 0
		g.maybeSpawnObstacle(tickMs)
		if got := baseCount(g) > 1; got != tt.spawn {
			t.Errorf("mode %d with a %vpx gap: spawned=%v, expected %v", tt.mode, gap, got, tt.spawn)
		}
	}
}

func baseCount(g *Generator) int {
	n := 0
	for _, o := range g.Obstacles() {
		if !o.Stacked() {
			n++
		}
	}
	return n
}

func TestGeneratorDoubleJumpAfterOnboarding(t *testing.T) {
	cfg := quietConfig()
	cfg.Obstacles.DoubleJumpChance = 1
	g := NewGenerator(cfg, 8)
	pastOnboarding(g)

	doubles := 0
	for i := 0; i < 200; i++ {
		g.spawnObstacle(false)
	}
	for _, o := range g.Obstacles() {
		if o.Stacked() {
			base, ok := g.Lookup(o.StackParent)
			if ok && base.DoubleJump {
				t.Fatal("double-jump obstacles are never stacked")
			}
			continue
		}
		if o.Kind != KindLow {
			if o.DoubleJump {
				t.Errorf("%s obstacle flagged double-jump", o.Kind)
			}
			continue
		}
		if !o.DoubleJump {
			t.Fatal("low obstacles should all need a double jump with chance 1")
		}
		doubles++
		if o.Height < cfg.Obstacles.MaxJumpHeight || o.Height > cfg.Obstacles.MaxDoubleJumpHeight {
			t.Errorf("double-jump height %v outside [%v, %v]", o.Height, cfg.Obstacles.MaxJumpHeight, cfg.Obstacles.MaxDoubleJumpHeight)
		}
	}
	if doubles == 0 {
		t.Error("expected double-jump obstacles after onboarding")
	}
}

func TestPowerUpHeightBuckets(t *testing.T) {
	cfg := quietConfig()
	p := cfg.PowerUps

	tests := []struct {
		name           string
		low, mid, high float64
		wantHeight     float64
	}{
		{"low", 1, 0, 0, p.HeightLow},
		{"mid", 0, 1, 0, p.HeightMid},
		{"high", 0, 0, 1, p.HeightHigh},
		{"no weights", 0, 0, 0, p.HeightMid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			c.PowerUps.WeightLow, c.PowerUps.WeightMid, c.PowerUps.WeightHigh = tt.low, tt.mid, tt.high
			g := NewGenerator(c, 12)
			for i := 0; i < 20; i++ {
				g.spawnPowerUp()
			}
			want := c.World.GroundY - tt.wantHeight - p.Size
			for _, up := range g.PowerUps() {
				if math.Abs(up.Y-want) > 1e-9 {
					t.Fatalf("power-up at y=%v, expected %v", up.Y, want)
				}
			}
		})
	}
}

func TestPowerUpHeightFavorsMid(t *testing.T) {
	cfg := quietConfig()
	p := cfg.PowerUps
	g := NewGenerator(cfg, 13)

	counts := map[float64]int{}
	for i := 0; i < 2000; i++ {
		g.spawnPowerUp()
		up := g.powerUps[len(g.powerUps)-1]
		counts[cfg.World.GroundY-p.Size-up.Y]++
	}
	for _, h := range []float64{p.HeightLow, p.HeightHigh} {
		if counts[h] == 0 || counts[h] >= counts[p.HeightMid] {
			t.Errorf("height %v drawn %d times, mid %d times", h, counts[h], counts[p.HeightMid])
		}
	}
}
