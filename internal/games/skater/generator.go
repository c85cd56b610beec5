package skater

import (
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/sats-skater/internal/config"
	"github.com/vovakirdan/sats-skater/internal/core"
)

// spawnMode is how the next obstacle is timed.
type spawnMode int

const (
	spawnNormal spawnMode = iota
	spawnSurprise
	spawnRapid
)

// Generator owns the live obstacles and power-ups of one run. It scrolls
// them, resolves collisions against the actor, ramps the world speed and
// spawns new entities.
//
// All randomness comes from a private source seeded at construction, so two
// generators with the same seed fed the same ticks produce the same world.
type Generator struct {
	cfg        config.SkaterConfig
	difficulty *config.DifficultyManager
	seed       int64
	rng        *rand.Rand

	obstacles []Obstacle // spawn order
	powerUps  []PowerUp  // spawn order
	passed    map[ObstacleID]struct{}
	nextID    ObstacleID

	elapsed  float64 // ms since reset
	distance float64 // px scrolled since reset
	speed    float64

	speedTimer float64

	sinceObstacle  float64
	nextInterval   float64
	mode           spawnMode
	spawned        int // base obstacles spawned
	lastKind       ObstacleKind
	hasLastKind    bool
	lastDifficulty float64
	pattern        int

	sincePowerUp   float64
	powerUpsTotal  int
	minuteStart    float64
	minuteCount    int
	lastMultiplier float64

	collected   TrickKind
	collectedOK bool
}

// NewGenerator creates a generator for the given config and seed.
func NewGenerator(cfg config.SkaterConfig, seed int64) *Generator {
	g := &Generator{
		cfg:       cfg,
		seed:      seed,
		obstacles: make([]Obstacle, 0, 16),
		powerUps:  make([]PowerUp, 0, 4),
		passed:    make(map[ObstacleID]struct{}),
	}
	g.Reset()
	return g
}

// Reset returns the generator to the state of a freshly constructed one.
func (g *Generator) Reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.obstacles = g.obstacles[:0]
	g.powerUps = g.powerUps[:0]
	clear(g.passed)
	g.nextID = 0

	g.elapsed = 0
	g.distance = 0
	g.speed = g.cfg.Speed.Base
	g.speedTimer = 0

	g.sinceObstacle = 0
	g.nextInterval = g.cfg.Obstacles.InitialDelayMs + g.easyDelay(0)
	g.mode = spawnNormal
	g.spawned = 0
	g.lastKind = KindLow
	g.hasLastKind = false
	g.lastDifficulty = 0
	g.pattern = 0

	g.sincePowerUp = 0
	g.powerUpsTotal = 0
	g.minuteStart = 0
	g.minuteCount = 0
	g.lastMultiplier = 1

	g.collected = TrickNone
	g.collectedOK = false
}

// Reseed changes the seed and resets.
func (g *Generator) Reseed(seed int64) {
	g.seed = seed
	g.Reset()
}

// Update advances the world by one tick and resolves the actor against it.
// At most one obstacle outcome is returned; a power-up pickup is reported
// separately by Collected. Nothing is picked up on a crash tick.
func (g *Generator) Update(dtMs float64, a *Actor) Outcome {
	g.collected, g.collectedOK = TrickNone, false
	if dtMs <= 0 || a == nil {
		return NoOutcome{}
	}
	dtMs = math.Min(dtMs, g.cfg.Physics.MaxStepSeconds*1000)

	g.elapsed += dtMs
	dx := a.VX * dtMs / 1000
	g.distance += dx
	for i := range g.obstacles {
		g.obstacles[i].X -= dx
	}
	for i := range g.powerUps {
		g.powerUps[i].X -= dx
	}

	g.updateRail(a)

	outcome := g.resolveObstacles(a)
	_, crashed := outcome.(CrashOutcome)
	g.updatePowerUps(dtMs, a, !crashed)
	if crashed {
		return outcome
	}

	if a.Crashed() {
		return outcome
	}

	g.rampSpeed(dtMs, a)
	g.maybeSpawnObstacle(dtMs)
	g.maybeSpawnPowerUp(dtMs)
	return outcome
}

// resolveObstacles runs crash, rail-support and pass checks from the newest
// obstacle to the oldest and removes obstacles that are far behind.
func (g *Generator) resolveObstacles(a *Actor) Outcome {
	var outcome Outcome = NoOutcome{}
	box := a.Box()
	limit := -g.cfg.World.RemoveBehind

	for i := len(g.obstacles) - 1; i >= 0; i-- {
		o := &g.obstacles[i]

		if !a.Crashed() {
			if o.Kind == KindRail && g.railCatches(a, *o) {
				a.LandOnRail(o.ID, o.Top())
				box = a.Box()
			} else if !(a.OnRail() && a.Rail() == o.ID) && o.Collides(box) {
				o.Hit = true
				return CrashOutcome{ObstacleID: o.ID, Kind: o.Kind}
			}
		}

		grinding := a.OnRail() && a.Rail() == o.ID
		if _, done := g.passed[o.ID]; !done && !grinding && a.Right() > o.Right() {
			g.passed[o.ID] = struct{}{}
			if _, scored := outcome.(ScoreOutcome); !scored && !o.Stacked() && a.Airborne() {
				if jumpID, ok := a.ClaimJumpReward(); ok {
					outcome = ScoreOutcome{
						Amount:     g.cfg.Scoring.ObstaclePoints,
						ObstacleID: o.ID,
						JumpID:     jumpID,
					}
				}
			}
		}

		if o.Right() < limit {
			delete(g.passed, o.ID)
			g.obstacles = slices.Delete(g.obstacles, i, i+1)
		}
	}
	return outcome
}

// railCatches reports whether the actor descended onto the rail's top this tick.
func (g *Generator) railCatches(a *Actor, rail Obstacle) bool {
	if a.OnGround() || a.OnRail() || a.VY < 0 {
		return false
	}
	if !rail.spansX(a.Box()) {
		return false
	}
	return a.prevBottom() <= rail.Top() && a.Bottom() >= rail.Top()
}

// updateRail drops the actor off a rail that no longer supports it.
func (g *Generator) updateRail(a *Actor) {
	if !a.OnRail() {
		return
	}
	rail, ok := g.Lookup(a.Rail())
	if !ok || !rail.spansX(a.Box()) {
		a.LeaveRail()
	}
}

func (g *Generator) rampSpeed(dtMs float64, a *Actor) {
	s := g.cfg.Speed
	interval, inc := s.IntervalMs, s.Increment
	if g.elapsed <= s.GracePeriodMs {
		interval, inc = s.GraceIntervalMs, s.GraceIncrement
	}
	if inc > 0 && interval > 0 {
		g.speedTimer += dtMs
		for g.speedTimer >= interval {
			g.speedTimer -= interval
			g.speed = math.Min(g.speed+inc, s.Max)
		}
	}
	a.SetForwardSpeed(g.speed)
}

// speedProgress returns how far the speed is between base and max, in [0, 1].
func (g *Generator) speedProgress() float64 {
	span := g.cfg.Speed.Max - g.cfg.Speed.Base
	if span <= 0 {
		return 0
	}
	return core.ClampF((g.speed-g.cfg.Speed.Base)/span, 0, 1)
}

// easyDelay is the onboarding delay added before the n-th obstacle (0-based).
func (g *Generator) easyDelay(n int) float64 {
	o := g.cfg.Obstacles
	if n >= o.EasyModeCount {
		return 0
	}
	if n == 0 {
		return o.EasyFirstDelayMs
	}
	return o.EasySecondDelayMs
}

// inEasyMode reports whether onboarding rules still apply.
func (g *Generator) inEasyMode() bool {
	return g.spawned < g.cfg.Obstacles.EasyModeCount || g.elapsed < g.cfg.Obstacles.EasyModeWindowMs
}

// spawnInterval computes the wait before the next obstacle.
func (g *Generator) spawnInterval() float64 {
	o := g.cfg.Obstacles
	progress := g.speedProgress()

	base := o.BaseIntervalMs * (1 - o.SpeedIntervalReduction*progress)
	jitter := base * o.JitterPct * (g.rng.Float64()*2 - 1)
	buffer := o.DifficultyBufferMs * g.lastDifficulty
	floor := o.MinIntervalMs + (o.MinIntervalAtMaxMs-o.MinIntervalMs)*progress

	interval := math.Max(base+jitter+buffer, floor)
	return interval + g.easyDelay(g.spawned)
}

// rollMode picks how the next obstacle is timed. Surprise and rapid spawns
// shorten the wait but never below the at-max floor.
func (g *Generator) rollMode() {
	g.mode = spawnNormal
	if g.inEasyMode() {
		return
	}
	o := g.cfg.Obstacles
	r := g.rng.Float64()
	switch {
	case r < o.RapidChance:
		g.mode = spawnRapid
		g.nextInterval = math.Max(g.nextInterval*o.RapidFraction, o.MinIntervalAtMaxMs)
	case r < o.RapidChance+o.SurpriseChance:
		g.mode = spawnSurprise
		g.nextInterval = math.Max(g.nextInterval*o.SurpriseFraction, o.MinIntervalAtMaxMs)
	}
}

func (g *Generator) maybeSpawnObstacle(dtMs float64) {
	g.sinceObstacle += dtMs
	if g.sinceObstacle < g.nextInterval {
		return
	}

	spacing := g.cfg.Obstacles.MinScreenSpacing
	if g.mode == spawnRapid {
		spacing = g.cfg.Obstacles.RapidScreenSpacing
	}
	if last, ok := g.lastBase(); ok && g.cfg.World.FieldWidth-last.Right() < spacing {
		return
	}

	g.spawnObstacle(g.mode == spawnRapid)
	g.sinceObstacle = 0
	g.nextInterval = g.spawnInterval()
	g.rollMode()
}

// lastBase returns the most recently spawned base obstacle.
func (g *Generator) lastBase() (Obstacle, bool) {
	for i := len(g.obstacles) - 1; i >= 0; i-- {
		if !g.obstacles[i].Stacked() {
			return g.obstacles[i], true
		}
	}
	return Obstacle{}, false
}

// pickKind chooses an obstacle kind, usually avoiding the previous one.
func (g *Generator) pickKind() ObstacleKind {
	k := ObstacleKind(g.rng.Intn(obstacleKindCount))
	if g.hasLastKind && k == g.lastKind && g.rng.Float64() < g.cfg.Obstacles.RepeatAvoidChance {
		k = ObstacleKind((int(k) + 1 + g.rng.Intn(obstacleKindCount-1)) % obstacleKindCount)
	}
	return k
}

// obstacleDifficulty blends distance progression and speed progression,
// then applies the rhythm pattern and an occasional spike.
func (g *Generator) obstacleDifficulty(rapid bool) float64 {
	o := g.cfg.Obstacles
	level := g.difficulty.Scaled(g.distance, g.elapsed)
	w := g.difficulty.SpeedWeight()
	d := level*(1-w) + g.speedProgress()*w

	if len(o.Pattern) > 0 {
		d += o.Pattern[g.pattern%len(o.Pattern)]
		g.pattern++
	}
	if g.rng.Float64() < o.SpikeChance {
		d += g.rng.Float64() * o.SpikeMax
	}
	if rapid {
		d *= o.RapidDifficultyScale
	}
	return core.ClampF(d, 0, 1)
}

// sizeIn draws a value from a range narrowed by difficulty: easy obstacles
// come from the lower half, hard ones from the upper half.
func (g *Generator) sizeIn(lo, hi, d float64) float64 {
	span := hi - lo
	from := lo + span*d*0.5
	to := lo + span*(0.5+0.5*d)
	return from + g.rng.Float64()*(to-from)
}

func (g *Generator) shape(k ObstacleKind) config.ObstacleShape {
	switch k {
	case KindRamp:
		return g.cfg.Obstacles.Ramp
	case KindRail:
		return g.cfg.Obstacles.Rail
	default:
		return g.cfg.Obstacles.Low
	}
}

func (g *Generator) spawnObstacle(rapid bool) {
	o := g.cfg.Obstacles
	kind := g.pickKind()
	d := g.obstacleDifficulty(rapid)

	doubleJump := kind == KindLow && !g.inEasyMode() && g.rng.Float64() < o.DoubleJumpChance

	sh := g.shape(kind)
	w := g.sizeIn(sh.MinWidth, sh.MaxWidth, d)
	h := g.sizeIn(sh.MinHeight, sh.MaxHeight, d)
	if doubleJump {
		h = o.MaxJumpHeight + g.rng.Float64()*(o.MaxDoubleJumpHeight-o.MaxJumpHeight)
		h = math.Min(h, o.MaxDoubleJumpHeight)
	} else {
		h = math.Min(h, o.MaxJumpHeight)
	}

	x := g.cfg.World.FieldWidth - g.rng.Float64()*o.SpawnJitterPx
	if rapid {
		x -= o.RapidOffset
	}

	base := g.place(Obstacle{
		X:          x,
		Y:          g.cfg.World.GroundY - h,
		Width:      w,
		Height:     h,
		Kind:       kind,
		DoubleJump: doubleJump,
		Difficulty: d,
	})

	if !doubleJump && kind != KindRail {
		g.stackOn(base, d, rapid)
	}

	g.spawned++
	g.lastKind = kind
	g.hasLastKind = true
	g.lastDifficulty = d
}

// stackOn may add one or two narrower pieces on top of a base obstacle.
// The whole stack never exceeds the single-jump height.
func (g *Generator) stackOn(baseID ObstacleID, d float64, rapid bool) {
	st := g.cfg.Stacking
	if !st.Enabled {
		return
	}
	chance := st.BaseChance + st.DifficultyFactor*d
	if rapid {
		chance *= st.RapidFactor
	}
	if g.rng.Float64() >= chance {
		return
	}
	pieces := 1
	if g.rng.Float64() < st.DoubleStackChance {
		pieces = 2
	}

	below, ok := g.Lookup(baseID)
	if !ok {
		return
	}
	total := below.Height
	for i := 0; i < pieces; i++ {
		room := g.cfg.Obstacles.MaxJumpHeight - total
		if room < st.MinPieceHeight {
			return
		}
		ph := math.Min(st.MinPieceHeight+g.rng.Float64()*(st.MaxPieceHeight-st.MinPieceHeight), room)
		pw := below.Width * (st.MinWidthFactor + g.rng.Float64()*(st.MaxWidthFactor-st.MinWidthFactor))
		id := g.place(Obstacle{
			X:           below.X + (below.Width-pw)/2,
			Y:           below.Y - ph,
			Width:       pw,
			Height:      ph,
			Kind:        below.Kind,
			StackParent: baseID,
			Difficulty:  d,
		})
		total += ph
		below, _ = g.Lookup(id)
	}
}

// place appends an obstacle with a fresh ID.
func (g *Generator) place(o Obstacle) ObstacleID {
	g.nextID++
	o.ID = g.nextID
	g.obstacles = append(g.obstacles, o)
	return o.ID
}

// StackHeight returns the combined height of an obstacle and everything
// stacked on it.
func (g *Generator) StackHeight(baseID ObstacleID) float64 {
	var total float64
	for _, o := range g.obstacles {
		if o.ID == baseID || o.StackParent == baseID {
			total += o.Height
		}
	}
	return total
}

// Lookup returns the live obstacle with the given ID.
func (g *Generator) Lookup(id ObstacleID) (Obstacle, bool) {
	if id == 0 {
		return Obstacle{}, false
	}
	for _, o := range g.obstacles {
		if o.ID == id {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Passed reports whether the obstacle has been passed.
func (g *Generator) Passed(id ObstacleID) bool {
	_, ok := g.passed[id]
	return ok
}

// Obstacles returns the live obstacles in spawn order. Do not modify.
func (g *Generator) Obstacles() []Obstacle {
	return g.obstacles
}

// PowerUps returns the live power-ups in spawn order. Do not modify.
func (g *Generator) PowerUps() []PowerUp {
	return g.powerUps
}

// Collected returns the power-up kind picked up during the last Update.
func (g *Generator) Collected() (TrickKind, bool) {
	return g.collected, g.collectedOK
}

// Speed returns the current world speed in px/s.
func (g *Generator) Speed() float64 { return g.speed }

// Elapsed returns the ms simulated since reset.
func (g *Generator) Elapsed() float64 { return g.elapsed }

// Distance returns the px scrolled since reset.
func (g *Generator) Distance() float64 { return g.distance }

// Spawned returns the number of base obstacles spawned since reset.
func (g *Generator) Spawned() int { return g.spawned }

// PowerUpsSpawned returns the number of power-ups spawned since reset.
func (g *Generator) PowerUpsSpawned() int { return g.powerUpsTotal }

// Level returns the current difficulty progression level.
func (g *Generator) Level() float64 {
	return g.difficulty.Level(g.distance, g.elapsed)
}

// Seed returns the seed used by Reset.
func (g *Generator) Seed() int64 { return g.seed }
