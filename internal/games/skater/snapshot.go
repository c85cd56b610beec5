package skater

import "github.com/vovakirdan/sats-skater/internal/core"

// ActorView is the read-only actor state exposed to render sinks.
type ActorView struct {
	X             float64    `json:"x"`
	Y             float64    `json:"y"`
	Width         float64    `json:"w"`
	Height        float64    `json:"h"`
	VX            float64    `json:"vx"`
	VY            float64    `json:"vy"`
	State         ActorState `json:"state"`
	CanDoubleJump bool       `json:"can_double_jump"`
	Trick         TrickKind  `json:"trick"`
	Held          TrickKind  `json:"held"`
	JumpID        uint64     `json:"jump_id"`
}

// Snapshot is a copy of everything a renderer or the event feed needs for
// one tick. It shares no memory with the game.
type Snapshot struct {
	Tick      uint64     `json:"tick"`
	Score     int        `json:"score"`
	HighScore int        `json:"high_score"`
	Distance  float64    `json:"distance"`
	Speed     float64    `json:"speed"`
	Level     float64    `json:"level"`
	GameOver  bool       `json:"game_over"`
	Paused    bool       `json:"paused"`
	Actor     ActorView  `json:"actor"`
	Obstacles []Obstacle `json:"obstacles"`
	PowerUps  []PowerUp  `json:"powerups"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	a := g.actor
	return Snapshot{
		Tick:      g.tickCount,
		Score:     a.Score(),
		HighScore: g.highScore,
		Distance:  a.Distance(),
		Speed:     g.gen.Speed(),
		Level:     g.gen.Level(),
		GameOver:  g.gameOver,
		Paused:    g.paused,
		Actor: ActorView{
			X:             a.X,
			Y:             a.Y,
			Width:         a.Width,
			Height:        a.Height,
			VX:            a.VX,
			VY:            a.VY,
			State:         a.State(),
			CanDoubleJump: a.CanDoubleJump(),
			Trick:         a.CurrentTrick(),
			Held:          a.HeldPowerUp(),
			JumpID:        a.JumpID(),
		},
		Obstacles: append([]Obstacle(nil), g.gen.Obstacles()...),
		PowerUps:  append([]PowerUp(nil), g.gen.PowerUps()...),
	}
}

// SnapshotEvent implements core.SnapshotSource.
func (g *Game) SnapshotEvent() core.Event {
	return core.Event{Name: "snapshot", Tick: g.tickCount, Data: g.Snapshot()}
}
