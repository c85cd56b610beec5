package skater

import (
	"math"

	"github.com/vovakirdan/sats-skater/internal/config"
	"github.com/vovakirdan/sats-skater/internal/core"
)

// ActorState is the movement state of the skater. Exactly one is active.
type ActorState int

const (
	StateIdle ActorState = iota
	StateSkating
	StateJumping
	StateFalling
	StateGrinding
	StateCrashed
)

// String returns the name of the state.
func (s ActorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSkating:
		return "skating"
	case StateJumping:
		return "jumping"
	case StateFalling:
		return "falling"
	case StateGrinding:
		return "grinding"
	case StateCrashed:
		return "crashed"
	default:
		return "?"
	}
}

// MarshalText encodes the state by name.
func (s ActorState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AirState tracks the obstacle reward of the current airborne episode.
// It only moves NotAirborne -> AirborneUnpaid on take-off, AirborneUnpaid ->
// AirbornePaid through ClaimJumpReward, and back to NotAirborne on landing.
type AirState int

const (
	AirNotAirborne AirState = iota
	AirAirborneUnpaid
	AirAirbornePaid
)

// Actor is the player-controlled skater.
//
// X is camera-relative and stays at the anchor; forward motion is accumulated
// in Distance and applied to the world by the Generator. Y grows downward and
// the actor stands on the ground when Y+Height == GroundY.
type Actor struct {
	X, Y          float64
	VX, VY        float64 // px/s
	Width, Height float64

	state         ActorState
	onGround      bool
	onRail        bool
	rail          ObstacleID
	canDoubleJump bool

	score        int
	distance     float64
	forwardSpeed float64

	currentTrick TrickKind
	trickTimer   float64 // ms since the trick started
	trickPaid    bool
	heldPowerUp  TrickKind

	cooldown float64 // ms until a primary jump is allowed
	airTime  float64 // ms of the current airborne episode
	air      AirState
	jumpID   uint64
	prevY    float64

	physics config.SkaterPhysics
	tricks  config.SkaterTricks
	groundY float64
	base    float64
	events  *EventQueue
}

// NewActor creates an idle actor standing at the configured anchor.
// Events are emitted into q, which may be nil.
func NewActor(cfg config.SkaterConfig, q *EventQueue) *Actor {
	a := &Actor{
		Width:   cfg.Player.Width,
		Height:  cfg.Player.Height,
		physics: cfg.Physics,
		tricks:  cfg.Tricks,
		groundY: cfg.World.GroundY,
		base:    cfg.Speed.Base,
		events:  q,
	}
	a.Reset(cfg.Player.X, cfg.World.GroundY-cfg.Player.Height)
	return a
}

// Reset puts the actor back to idle at (x, y) and clears the run state,
// including any held power-up.
func (a *Actor) Reset(x, y float64) {
	a.X, a.Y = x, y
	a.prevY = y
	a.VX, a.VY = 0, 0
	a.state = StateIdle
	a.onGround = a.Y+a.Height >= a.groundY
	a.onRail = false
	a.rail = 0
	a.canDoubleJump = false
	a.score = 0
	a.distance = 0
	a.forwardSpeed = a.base
	a.currentTrick = TrickNone
	a.trickTimer = 0
	a.trickPaid = false
	a.heldPowerUp = TrickNone
	a.cooldown = 0
	a.airTime = 0
	a.air = AirNotAirborne
	a.jumpID = 0
	if !a.onGround {
		a.beginAirborne()
	}
}

// Start moves an idle actor to skating.
func (a *Actor) Start() {
	if a.state != StateIdle {
		return
	}
	if a.onGround {
		a.state = StateSkating
	} else {
		a.state = StateFalling
	}
	a.VX = a.forwardSpeed
}

// Jump performs a primary jump from ground or rail, or a double jump while
// airborne. Calls that are not allowed are ignored.
func (a *Actor) Jump() {
	switch a.state {
	case StateIdle, StateCrashed:
		return
	}

	if a.onGround || a.onRail {
		if a.currentTrick != TrickNone || a.cooldown > 0 {
			return
		}
		a.VY = -a.physics.JumpImpulse
		a.leaveSupport()
		a.state = StateJumping
		a.canDoubleJump = true
		a.cooldown = a.physics.JumpCooldownMs
		a.events.Emit(JumpStarted{})
		return
	}

	if !a.canDoubleJump {
		return
	}
	a.VY = -a.physics.JumpImpulse * a.physics.DoubleJumpFactor
	a.canDoubleJump = false
	a.state = StateJumping
	a.events.Emit(JumpStarted{Double: true})
}

// Update advances the actor by one tick. dtMs is converted to seconds and
// capped at MaxStepSeconds. in may be nil.
func (a *Actor) Update(dtMs float64, in core.InputState) {
	if a.state == StateIdle || dtMs <= 0 {
		return
	}
	dt := math.Min(dtMs/1000, a.physics.MaxStepSeconds)
	dtMs = dt * 1000
	a.prevY = a.Y

	if a.state == StateCrashed {
		a.updateCrashed(dt)
		return
	}

	if a.cooldown > 0 {
		a.cooldown = math.Max(0, a.cooldown-dtMs)
	}

	if in != nil {
		if in.WasPressedThisTick(core.ActionJump) {
			a.Jump()
		}
		for _, act := range []core.Action{core.ActionTrickA, core.ActionTrickB, core.ActionTrickC} {
			if in.WasPressedThisTick(act) {
				a.UsePowerUp()
				break
			}
		}
	}

	supported := a.onGround || a.onRail
	if supported {
		a.VX = a.forwardSpeed
	} else {
		a.steer(dt, in)
		a.VY = math.Min(a.VY+a.physics.Gravity*dt, a.physics.MaxFallSpeed)
	}

	a.Y += a.VY * dt
	a.distance += a.VX * dt

	if !supported {
		a.airTime += dtMs
		if a.state == StateJumping && a.VY > 0 {
			a.state = StateFalling
		}
	}

	if a.currentTrick != TrickNone {
		a.trickTimer += dtMs
		if a.trickTimer >= a.tricks.DurationMs {
			a.payTrick()
			a.clearTrick()
		}
	}

	if !a.onGround && !a.onRail && a.VY >= 0 && a.Y+a.Height >= a.groundY {
		a.land()
	}
}

// steer applies reduced left/right authority while airborne.
func (a *Actor) steer(dt float64, in core.InputState) {
	if in == nil {
		return
	}
	dir := 0.0
	if in.IsHeld(core.ActionRight) {
		dir++
	}
	if in.IsHeld(core.ActionLeft) {
		dir--
	}
	if dir == 0 {
		return
	}
	lo := a.forwardSpeed * a.physics.MinAirSpeedFactor
	hi := a.forwardSpeed * a.physics.MaxAirSpeedFactor
	a.VX = core.ClampF(a.VX+dir*a.physics.AirControl*dt, lo, hi)
}

func (a *Actor) updateCrashed(dt float64) {
	a.VX *= a.physics.CrashDamping
	if math.Abs(a.VX) < 1 {
		a.VX = 0
	}
	if !a.onGround {
		a.VY = math.Min(a.VY+a.physics.Gravity*dt, a.physics.MaxFallSpeed)
		a.Y += a.VY * dt
		if a.Y+a.Height >= a.groundY {
			a.Y = a.groundY - a.Height
			a.VY = 0
			a.onGround = true
		}
	}
	a.distance += a.VX * dt
}

// land snaps the actor to the ground and closes the airborne episode.
func (a *Actor) land() {
	a.Y = a.groundY - a.Height
	a.VY = 0
	a.onGround = true
	a.touchDown()
	a.state = StateSkating
	a.events.Emit(Landed{})
}

// LandOnRail puts the actor on top of a rail. It is called by the generator
// when the actor descends onto the rail's top surface.
func (a *Actor) LandOnRail(id ObstacleID, top float64) {
	if a.state == StateCrashed || a.onGround || a.onRail {
		return
	}
	a.Y = top - a.Height
	a.VY = 0
	a.onRail = true
	a.rail = id
	a.touchDown()
	a.state = StateGrinding
	a.events.Emit(GrindStarted{})
}

// LeaveRail drops the actor off its rail into a new airborne episode.
func (a *Actor) LeaveRail() {
	if !a.onRail {
		return
	}
	a.leaveSupport()
	a.canDoubleJump = false
	if a.state != StateCrashed {
		a.state = StateFalling
	}
}

// touchDown resolves the airborne episode when ground or rail is reached.
func (a *Actor) touchDown() {
	a.canDoubleJump = false
	if a.currentTrick != TrickNone {
		if a.trickTimer >= a.tricks.MinAirTimeMs {
			a.payTrick()
		}
		a.clearTrick()
	}
	a.air = AirNotAirborne
	a.airTime = 0
	a.VX = a.forwardSpeed
}

func (a *Actor) leaveSupport() {
	a.onGround = false
	a.onRail = false
	a.rail = 0
	a.beginAirborne()
}

func (a *Actor) beginAirborne() {
	a.jumpID++
	a.air = AirAirborneUnpaid
	a.airTime = 0
}

// ClaimJumpReward pays the obstacle reward of the current airborne episode.
// It succeeds at most once per episode.
func (a *Actor) ClaimJumpReward() (uint64, bool) {
	if a.state == StateCrashed || a.air != AirAirborneUnpaid {
		return 0, false
	}
	a.air = AirAirbornePaid
	return a.jumpID, true
}

// Crash ends the run for this actor from any state. The held power-up is kept.
func (a *Actor) Crash() {
	if a.state == StateCrashed {
		return
	}
	a.state = StateCrashed
	a.clearTrick()
	a.canDoubleJump = false
	a.air = AirNotAirborne
	if a.onRail {
		a.onRail = false
		a.rail = 0
	}
	a.events.Emit(CrashStarted{Score: a.score})
}

// AddScore adds sats. It does nothing once crashed.
func (a *Actor) AddScore(amount int, reason ScoreReason) {
	if a.state == StateCrashed || amount <= 0 {
		return
	}
	a.score += amount
	a.events.Emit(ScoreAwarded{Amount: amount, Reason: reason})
}

// CollectPowerUp stores a power-up if the slot is empty.
func (a *Actor) CollectPowerUp(kind TrickKind) bool {
	if a.state == StateCrashed || kind == TrickNone || a.heldPowerUp != TrickNone {
		return false
	}
	a.heldPowerUp = kind
	a.events.Emit(PowerUpCollected{Kind: kind})
	return true
}

// UsePowerUp turns the held power-up into a trick. It is rejected while
// airborne, while a trick is running, or with an empty slot.
func (a *Actor) UsePowerUp() bool {
	if a.state == StateCrashed || a.state == StateIdle || a.heldPowerUp == TrickNone {
		return false
	}
	if !a.onGround && !a.onRail {
		return false
	}
	if a.currentTrick != TrickNone {
		return false
	}
	kind := a.heldPowerUp
	a.heldPowerUp = TrickNone
	a.startTrick(kind)
	return true
}

// startTrick begins a trick. VY is set to at least the trick impulse upward
// and a stronger ascent is kept as is.
func (a *Actor) startTrick(kind TrickKind) {
	a.currentTrick = kind
	a.trickTimer = 0
	a.trickPaid = false
	a.VY = math.Min(a.VY, -a.tricks.Impulse)
	if a.onGround || a.onRail {
		a.leaveSupport()
		a.canDoubleJump = false
		a.state = StateJumping
	}
	a.events.Emit(TrickStarted{Kind: kind})
}

func (a *Actor) payTrick() {
	if a.trickPaid {
		return
	}
	a.trickPaid = true
	a.AddScore(a.TrickPoints(a.currentTrick), ReasonTrick)
}

func (a *Actor) clearTrick() {
	a.currentTrick = TrickNone
	a.trickTimer = 0
	a.trickPaid = false
}

// TrickPoints returns the payout of a trick kind.
func (a *Actor) TrickPoints(kind TrickKind) int {
	switch kind {
	case TrickA:
		return a.tricks.PointsA
	case TrickB:
		return a.tricks.PointsB
	case TrickC:
		return a.tricks.PointsC
	default:
		return 0
	}
}

// SetForwardSpeed mirrors the world speed onto the actor.
func (a *Actor) SetForwardSpeed(speed float64) {
	a.forwardSpeed = speed
	if (a.onGround || a.onRail) && (a.state == StateSkating || a.state == StateGrinding) {
		a.VX = speed
	}
}

// State returns the movement state.
func (a *Actor) State() ActorState { return a.state }

// OnGround reports whether the actor stands on the ground.
func (a *Actor) OnGround() bool { return a.onGround }

// OnRail reports whether the actor is grinding a rail.
func (a *Actor) OnRail() bool { return a.onRail }

// Rail returns the rail being ground, or zero.
func (a *Actor) Rail() ObstacleID { return a.rail }

// CanDoubleJump reports whether a double jump is available.
func (a *Actor) CanDoubleJump() bool { return a.canDoubleJump }

// Crashed reports whether the actor has crashed.
func (a *Actor) Crashed() bool { return a.state == StateCrashed }

// Airborne reports whether the actor is in the air and still in play.
func (a *Actor) Airborne() bool {
	return a.state == StateJumping || a.state == StateFalling
}

// Score returns the sats collected this run.
func (a *Actor) Score() int { return a.score }

// Distance returns the forward distance skated in world pixels.
func (a *Actor) Distance() float64 { return a.distance }

// ForwardSpeed returns the speed the actor skates at on ground or rail.
func (a *Actor) ForwardSpeed() float64 { return a.forwardSpeed }

// CurrentTrick returns the trick in progress, or TrickNone.
func (a *Actor) CurrentTrick() TrickKind { return a.currentTrick }

// TrickTimer returns the ms elapsed since the current trick started.
func (a *Actor) TrickTimer() float64 { return a.trickTimer }

// HeldPowerUp returns the held power-up, or TrickNone.
func (a *Actor) HeldPowerUp() TrickKind { return a.heldPowerUp }

// JumpID returns the id of the latest airborne episode.
func (a *Actor) JumpID() uint64 { return a.jumpID }

// AirState returns the reward state of the current airborne episode.
func (a *Actor) AirState() AirState { return a.air }

// AirTime returns the ms spent in the current airborne episode.
func (a *Actor) AirTime() float64 { return a.airTime }

// Box returns the collision box.
func (a *Actor) Box() core.Box {
	return core.NewBox(a.X, a.Y, a.Width, a.Height)
}

// Right returns the leading edge.
func (a *Actor) Right() float64 { return a.X + a.Width }

// Bottom returns the Y of the actor's feet.
func (a *Actor) Bottom() float64 { return a.Y + a.Height }

// prevBottom returns the Y of the feet before the last Update.
func (a *Actor) prevBottom() float64 { return a.prevY + a.Height }
