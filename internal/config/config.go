// Package config provides YAML-based game configuration loading and
// difficulty management for the skater.
package config

// SkaterConfig contains every tunable of the skater simulation.
type SkaterConfig struct {
	Physics    SkaterPhysics    `yaml:"physics"`
	Player     SkaterPlayer     `yaml:"player"`
	Tricks     SkaterTricks     `yaml:"tricks"`
	World      SkaterWorld      `yaml:"world"`
	Speed      SkaterSpeed      `yaml:"speed"`
	Obstacles  SkaterObstacles  `yaml:"obstacles"`
	Stacking   SkaterStacking   `yaml:"stacking"`
	PowerUps   SkaterPowerUps   `yaml:"powerups"`
	Scoring    SkaterScoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SkaterPhysics defines the actor's forces. Units are pixels and seconds.
type SkaterPhysics struct {
	Gravity           float64 `yaml:"gravity"`              // px/s²
	JumpImpulse       float64 `yaml:"jump_impulse"`         // px/s upward
	DoubleJumpFactor  float64 `yaml:"double_jump_factor"`   // fraction of jump_impulse
	JumpCooldownMs    float64 `yaml:"jump_cooldown_ms"`     // blocks primary re-jumps
	MaxFallSpeed      float64 `yaml:"max_fall_speed"`       // px/s
	MaxStepSeconds    float64 `yaml:"max_step_seconds"`     // dt cap per tick
	AirControl        float64 `yaml:"air_control"`          // px/s² from left/right while airborne
	MinAirSpeedFactor float64 `yaml:"min_air_speed_factor"` // of forward speed
	MaxAirSpeedFactor float64 `yaml:"max_air_speed_factor"` // of forward speed
	CrashDamping      float64 `yaml:"crash_damping"`        // per-tick horizontal damping after a crash
}

// SkaterPlayer defines the actor's anchor and box.
type SkaterPlayer struct {
	X      float64 `yaml:"x"` // camera-relative anchor
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SkaterTricks defines trick timing, impulse and payouts.
type SkaterTricks struct {
	DurationMs   float64 `yaml:"duration_ms"`
	MinAirTimeMs float64 `yaml:"min_air_time_ms"`
	Impulse      float64 `yaml:"impulse"`
	PointsA      int     `yaml:"points_a"`
	PointsB      int     `yaml:"points_b"`
	PointsC      int     `yaml:"points_c"`
}

// SkaterWorld defines the play field in world pixels.
type SkaterWorld struct {
	FieldWidth   float64 `yaml:"field_width"`
	FieldHeight  float64 `yaml:"field_height"`
	GroundY      float64 `yaml:"ground_y"`
	RemoveBehind float64 `yaml:"remove_behind"` // px past the left edge before removal
}

// SkaterSpeed defines the forward speed ramp.
type SkaterSpeed struct {
	Base            float64 `yaml:"base"`
	Max             float64 `yaml:"max"`
	Increment       float64 `yaml:"increment"`
	IntervalMs      float64 `yaml:"interval_ms"`
	GraceIncrement  float64 `yaml:"grace_increment"`
	GraceIntervalMs float64 `yaml:"grace_interval_ms"`
	GracePeriodMs   float64 `yaml:"grace_period_ms"`
}

// ObstacleShape is the size range of one obstacle kind.
type ObstacleShape struct {
	MinWidth  float64 `yaml:"min_width"`
	MaxWidth  float64 `yaml:"max_width"`
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
}

// SkaterObstacles defines obstacle spawn timing and construction.
type SkaterObstacles struct {
	InitialDelayMs         float64       `yaml:"initial_delay_ms"`
	BaseIntervalMs         float64       `yaml:"base_interval_ms"`
	SpeedIntervalReduction float64       `yaml:"speed_interval_reduction"` // fraction of base removed at max speed
	MinIntervalMs          float64       `yaml:"min_interval_ms"`
	MinIntervalAtMaxMs     float64       `yaml:"min_interval_at_max_ms"`
	JitterPct              float64       `yaml:"jitter_pct"`
	DifficultyBufferMs     float64       `yaml:"difficulty_buffer_ms"`
	EasyModeCount          int           `yaml:"easy_mode_count"`
	EasyFirstDelayMs       float64       `yaml:"easy_first_delay_ms"`
	EasySecondDelayMs      float64       `yaml:"easy_second_delay_ms"`
	EasyModeWindowMs       float64       `yaml:"easy_mode_window_ms"`
	SurpriseChance         float64       `yaml:"surprise_chance"`
	SurpriseFraction       float64       `yaml:"surprise_fraction"`
	RapidChance            float64       `yaml:"rapid_chance"`
	RapidFraction          float64       `yaml:"rapid_fraction"`
	RapidDifficultyScale   float64       `yaml:"rapid_difficulty_scale"`
	MinScreenSpacing       float64       `yaml:"min_screen_spacing"`
	RapidScreenSpacing     float64       `yaml:"rapid_screen_spacing"`
	RapidOffset            float64       `yaml:"rapid_offset"`
	SpawnJitterPx          float64       `yaml:"spawn_jitter_px"`
	RepeatAvoidChance      float64       `yaml:"repeat_avoid_chance"`
	SpikeChance            float64       `yaml:"spike_chance"`
	SpikeMax               float64       `yaml:"spike_max"`
	Pattern                []float64     `yaml:"pattern"`
	MaxJumpHeight          float64       `yaml:"max_jump_height"`
	MaxDoubleJumpHeight    float64       `yaml:"max_double_jump_height"`
	DoubleJumpChance       float64       `yaml:"double_jump_chance"`
	Low                    ObstacleShape `yaml:"low"`
	Ramp                   ObstacleShape `yaml:"ramp"`
	Rail                   ObstacleShape `yaml:"rail"`
}

// SkaterStacking defines how smaller obstacles are stacked on a base.
type SkaterStacking struct {
	Enabled           bool    `yaml:"enabled"`
	BaseChance        float64 `yaml:"base_chance"`
	DifficultyFactor  float64 `yaml:"difficulty_factor"`
	RapidFactor       float64 `yaml:"rapid_factor"`
	DoubleStackChance float64 `yaml:"double_stack_chance"`
	MinPieceHeight    float64 `yaml:"min_piece_height"`
	MaxPieceHeight    float64 `yaml:"max_piece_height"`
	MinWidthFactor    float64 `yaml:"min_width_factor"`
	MaxWidthFactor    float64 `yaml:"max_width_factor"`
}

// SkaterPowerUps defines the power-up spawn gates.
type SkaterPowerUps struct {
	Size                   float64 `yaml:"size"`
	MaxPerMinute           int     `yaml:"max_per_minute"`
	EarlyGameCap           int     `yaml:"early_game_cap"`
	EarlyGameWindowMs      float64 `yaml:"early_game_window_ms"`
	MinIntervalMs          float64 `yaml:"min_interval_ms"`
	EarlyFloorGrowthMs     float64 `yaml:"early_floor_growth_ms"`
	FloorGrowthWindowMs    float64 `yaml:"floor_growth_window_ms"`
	VisibleDecay           float64 `yaml:"visible_decay"`
	MaxVisible             int     `yaml:"max_visible"`
	BaseChance             float64 `yaml:"base_chance"`
	ChanceGrowthPerSec     float64 `yaml:"chance_growth_per_sec"`
	MaxChance              float64 `yaml:"max_chance"`
	FallbackMs             float64 `yaml:"fallback_ms"`
	CollectAnimMs          float64 `yaml:"collect_anim_ms"`
	BaseMinDistance        float64 `yaml:"base_min_distance"`
	EarlySpacingMultiplier float64 `yaml:"early_spacing_multiplier"`
	SpacingRelaxMs         float64 `yaml:"spacing_relax_ms"`
	HeightLow              float64 `yaml:"height_low"`
	HeightMid              float64 `yaml:"height_mid"`
	HeightHigh             float64 `yaml:"height_high"`
	WeightLow              float64 `yaml:"weight_low"`
	WeightMid              float64 `yaml:"weight_mid"`
	WeightHigh             float64 `yaml:"weight_high"`
}

// SkaterScoring defines fixed score payouts.
type SkaterScoring struct {
	ObstaclePoints int `yaml:"obstacle_points"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "distance", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // pixels or milliseconds at which progression saturates
}

// ScalingConfig defines how progression feeds the obstacle difficulty scalar.
type ScalingConfig struct {
	DistanceRate float64 `yaml:"distance_rate"` // multiplier on the progression level
	SpeedWeight  float64 `yaml:"speed_weight"`  // share of speed progress in the blend
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset maps a flag value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
