package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "skater.yaml"

// LoadSkater loads the skater configuration.
// Search order: customPath -> ~/.sats-skater/configs/skater.yaml -> ./configs/skater.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names.
func LoadSkater(customPath string) (SkaterConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SkaterConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseSkater(data)
		if err != nil {
			return SkaterConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return SkaterConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseSkater(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSkater(defaultSkaterYAML)
	if err != nil {
		return DefaultSkaterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseSkater decodes YAML on top of the hardcoded defaults.
func parseSkater(data []byte) (SkaterConfig, error) {
	cfg := DefaultSkaterConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SkaterConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sats-skater", "configs", filename)
}

// ApplySkaterPreset modifies the config based on a difficulty preset.
// The fixed preset also freezes the speed ramp.
func ApplySkaterPreset(cfg *SkaterConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Speed.Increment = 0
		cfg.Speed.GraceIncrement = 0
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// Validate reports every out-of-range field at once.
func (c SkaterConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.JumpImpulse > 0, "physics.jump_impulse must be positive, got %v", c.Physics.JumpImpulse)
	check(c.Physics.MaxStepSeconds > 0, "physics.max_step_seconds must be positive, got %v", c.Physics.MaxStepSeconds)
	check(c.Physics.CrashDamping >= 0 && c.Physics.CrashDamping <= 1,
		"physics.crash_damping must be in [0,1], got %v", c.Physics.CrashDamping)
	check(c.Physics.MinAirSpeedFactor <= c.Physics.MaxAirSpeedFactor,
		"physics.min_air_speed_factor must not exceed max_air_speed_factor")

	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive")
	check(c.World.FieldWidth > 0, "world.field_width must be positive, got %v", c.World.FieldWidth)
	check(c.World.GroundY > c.Player.Height, "world.ground_y must leave room for the player")

	check(c.Speed.Base > 0, "speed.base must be positive, got %v", c.Speed.Base)
	check(c.Speed.Max >= c.Speed.Base, "speed.max must be >= speed.base")

	check(c.Obstacles.MaxJumpHeight > 0, "obstacles.max_jump_height must be positive")
	check(c.Obstacles.MaxDoubleJumpHeight >= c.Obstacles.MaxJumpHeight,
		"obstacles.max_double_jump_height must be >= max_jump_height")
	shapes := []struct {
		name  string
		shape ObstacleShape
	}{{"low", c.Obstacles.Low}, {"ramp", c.Obstacles.Ramp}, {"rail", c.Obstacles.Rail}}
	for _, s := range shapes {
		check(s.shape.MinWidth > 0 && s.shape.MinWidth <= s.shape.MaxWidth, "obstacles.%s width range is invalid", s.name)
		check(s.shape.MinHeight > 0 && s.shape.MinHeight <= s.shape.MaxHeight, "obstacles.%s height range is invalid", s.name)
	}

	check(c.Stacking.MinPieceHeight <= c.Stacking.MaxPieceHeight, "stacking piece height range is invalid")
	check(c.Stacking.MinWidthFactor > 0 && c.Stacking.MaxWidthFactor <= 1 &&
		c.Stacking.MinWidthFactor <= c.Stacking.MaxWidthFactor, "stacking width factors must be in (0,1]")

	check(c.PowerUps.VisibleDecay >= 0 && c.PowerUps.VisibleDecay <= 1,
		"powerups.visible_decay must be in [0,1], got %v", c.PowerUps.VisibleDecay)
	check(c.PowerUps.MaxChance >= 0 && c.PowerUps.MaxChance <= 1, "powerups.max_chance must be in [0,1]")
	check(c.PowerUps.WeightLow+c.PowerUps.WeightMid+c.PowerUps.WeightHigh > 0, "powerups height weights must not all be zero")

	switch c.Difficulty.Progression.Type {
	case "distance", "time", "none":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of distance, time, none", c.Difficulty.Progression.Type))
	}
	check(c.Difficulty.InitialLevel >= 0 && c.Difficulty.InitialLevel <= 1,
		"difficulty.initial_level must be in [0,1], got %v", c.Difficulty.InitialLevel)

	return errors.Join(errs...)
}

// GetEnv returns the environment variable or a fallback.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
