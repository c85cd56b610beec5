package skater

// TrickKind identifies a trick and the power-up that grants it.
// TrickNone doubles as the empty power-up slot.
type TrickKind int

const (
	TrickNone TrickKind = iota
	TrickA
	TrickB
	TrickC
)

// TrickKinds lists the real trick kinds in order.
var TrickKinds = []TrickKind{TrickA, TrickB, TrickC}

// String returns the name of the trick.
func (k TrickKind) String() string {
	switch k {
	case TrickNone:
		return "none"
	case TrickA:
		return "kickflip"
	case TrickB:
		return "heelflip"
	case TrickC:
		return "360 flip"
	default:
		return "?"
	}
}

// Glyph returns the display character of the power-up granting this trick.
func (k TrickKind) Glyph() rune {
	switch k {
	case TrickA:
		return 'K'
	case TrickB:
		return 'H'
	case TrickC:
		return '★'
	default:
		return ' '
	}
}

// MarshalText encodes the trick by name.
func (k TrickKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ObstacleKind is the shape family of an obstacle.
type ObstacleKind int

const (
	KindLow ObstacleKind = iota // cone, box, hydrant
	KindRamp
	KindRail
)

const obstacleKindCount = 3

// String returns the name of the obstacle kind.
func (k ObstacleKind) String() string {
	switch k {
	case KindLow:
		return "low"
	case KindRamp:
		return "ramp"
	case KindRail:
		return "rail"
	default:
		return "?"
	}
}

// MarshalText encodes the kind by name.
func (k ObstacleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ScoreReason tells why sats were awarded.
type ScoreReason int

const (
	ReasonObstacle ScoreReason = iota
	ReasonTrick
)

func (r ScoreReason) String() string {
	if r == ReasonTrick {
		return "trick"
	}
	return "obstacle"
}

// MarshalText encodes the reason by name.
func (r ScoreReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
