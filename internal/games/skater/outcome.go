package skater

// Outcome is the single obstacle result of one generator tick.
// Concrete types: NoOutcome, CrashOutcome, ScoreOutcome. Callers switch on
// the concrete type; power-up collection is reported by Generator.Collected.
type Outcome interface {
	isOutcome()
}

// NoOutcome means nothing happened this tick.
type NoOutcome struct{}

// CrashOutcome means the actor hit an obstacle.
type CrashOutcome struct {
	ObstacleID ObstacleID
	Kind       ObstacleKind
}

// ScoreOutcome means the actor cleared an obstacle during an unpaid jump.
type ScoreOutcome struct {
	Amount     int
	ObstacleID ObstacleID
	JumpID     uint64
}

func (NoOutcome) isOutcome()    {}
func (CrashOutcome) isOutcome() {}
func (ScoreOutcome) isOutcome() {}
