package config

import (
	_ "embed"
)

//go:embed defaults/skater.yaml
var defaultSkaterYAML []byte

// DefaultSkaterConfig returns the default skater configuration.
// It must stay in sync with defaults/skater.yaml.
func DefaultSkaterConfig() SkaterConfig {
	return SkaterConfig{
		Physics: SkaterPhysics{
			Gravity:           2200,
			JumpImpulse:       820,
			DoubleJumpFactor:  0.7,
			JumpCooldownMs:    250,
			MaxFallSpeed:      1400,
			MaxStepSeconds:    0.1,
			AirControl:        400,
			MinAirSpeedFactor: 0.5,
			MaxAirSpeedFactor: 1.8,
			CrashDamping:      0.9,
		},
		Player: SkaterPlayer{
			X:      120,
			Width:  36,
			Height: 54,
		},
		Tricks: SkaterTricks{
			DurationMs:   500,
			MinAirTimeMs: 150,
			Impulse:      520,
			PointsA:      100,
			PointsB:      150,
			PointsC:      250,
		},
		World: SkaterWorld{
			FieldWidth:   800,
			FieldHeight:  400,
			GroundY:      360,
			RemoveBehind: 300,
		},
		Speed: SkaterSpeed{
			Base:            320,
			Max:             760,
			Increment:       25,
			IntervalMs:      4000,
			GraceIncrement:  10,
			GraceIntervalMs: 2000,
			GracePeriodMs:   20000,
		},
		Obstacles: SkaterObstacles{
			InitialDelayMs:         1800,
			BaseIntervalMs:         2100,
			SpeedIntervalReduction: 0.35,
			MinIntervalMs:          850,
			MinIntervalAtMaxMs:     550,
			JitterPct:              0.2,
			DifficultyBufferMs:     450,
			EasyModeCount:          2,
			EasyFirstDelayMs:       1200,
			EasySecondDelayMs:      700,
			EasyModeWindowMs:       15000,
			SurpriseChance:         0.02,
			SurpriseFraction:       0.6,
			RapidChance:            0.06,
			RapidFraction:          0.45,
			RapidDifficultyScale:   0.6,
			MinScreenSpacing:       260,
			RapidScreenSpacing:     170,
			RapidOffset:            40,
			SpawnJitterPx:          24,
			RepeatAvoidChance:      0.7,
			SpikeChance:            0.12,
			SpikeMax:               0.25,
			Pattern:                []float64{0, 0.12, 0.2, -0.08, -0.18},
			MaxJumpHeight:          95,
			MaxDoubleJumpHeight:    150,
			DoubleJumpChance:       0.08,
			Low:                    ObstacleShape{MinWidth: 28, MaxWidth: 56, MinHeight: 26, MaxHeight: 70},
			Ramp:                   ObstacleShape{MinWidth: 60, MaxWidth: 100, MinHeight: 22, MaxHeight: 55},
			Rail:                   ObstacleShape{MinWidth: 140, MaxWidth: 240, MinHeight: 24, MaxHeight: 40},
		},
		Stacking: SkaterStacking{
			Enabled:           true,
			BaseChance:        0.12,
			DifficultyFactor:  0.3,
			RapidFactor:       0.3,
			DoubleStackChance: 0.35,
			MinPieceHeight:    12,
			MaxPieceHeight:    30,
			MinWidthFactor:    0.55,
			MaxWidthFactor:    0.85,
		},
		PowerUps: SkaterPowerUps{
			Size:                   28,
			MaxPerMinute:           3,
			EarlyGameCap:           2,
			EarlyGameWindowMs:      45000,
			MinIntervalMs:          7000,
			EarlyFloorGrowthMs:     5000,
			FloorGrowthWindowMs:    60000,
			VisibleDecay:           0.2,
			MaxVisible:             2,
			BaseChance:             0.004,
			ChanceGrowthPerSec:     0.002,
			MaxChance:              0.05,
			FallbackMs:             30000,
			CollectAnimMs:          300,
			BaseMinDistance:        380,
			EarlySpacingMultiplier: 2.0,
			SpacingRelaxMs:         120000,
			HeightLow:              40,
			HeightMid:              110,
			HeightHigh:             170,
			WeightLow:              0.25,
			WeightMid:              0.5,
			WeightHigh:             0.25,
		},
		Scoring: SkaterScoring{
			ObstaclePoints: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 60000,
			},
			Scaling: ScalingConfig{
				DistanceRate: 1.0,
				SpeedWeight:  0.4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML, for `skater config` style dumps.
func GetDefaultYAML() []byte {
	return defaultSkaterYAML
}
