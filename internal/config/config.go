// Package config provides YAML-based configuration loading and difficulty
// presets for the Pathfinder simulation.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunable settings.
type Config struct {
	Sim   SimConfig   `yaml:"sim"`
	Chase ChaseConfig `yaml:"chase"`
	View  ViewConfig  `yaml:"view"`
}

// SimConfig defines tick rate and default speeds.
type SimConfig struct {
	TickRate    int     `yaml:"tick_rate"`    // Ticks per second
	MoverSpeed  float64 `yaml:"mover_speed"`  // Default top speed for movers without their own
	PlayerSpeed float64 `yaml:"player_speed"` // Top speed of the pointer-following player
}

// ChaseConfig defines chase mode scoring.
type ChaseConfig struct {
	CatchRadius     float64 `yaml:"catch_radius"`      // Distance at which a chaser catches the player
	PointsPerSecond int     `yaml:"points_per_second"` // Score earned per second survived
	SpeedFactor     float64 `yaml:"speed_factor"`      // Multiplies every non-player speed
}

// ViewConfig defines how world units map onto terminal cells.
type ViewConfig struct {
	UnitsPerCell float64 `yaml:"units_per_cell"`
	Aspect       float64 `yaml:"aspect"`
	ShowCrashes  bool    `yaml:"show_crashes"` // Mark the nearest blocking point for the player
}

// Validate reports every setting that cannot drive a simulation.
func (c Config) Validate() error {
	var errs []error
	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sim.tick_rate must be positive, got %d", c.Sim.TickRate))
	}
	if c.Sim.MoverSpeed <= 0 {
		errs = append(errs, fmt.Errorf("sim.mover_speed must be positive, got %g", c.Sim.MoverSpeed))
	}
	if c.Sim.PlayerSpeed <= 0 {
		errs = append(errs, fmt.Errorf("sim.player_speed must be positive, got %g", c.Sim.PlayerSpeed))
	}
	if c.Chase.SpeedFactor <= 0 {
		errs = append(errs, fmt.Errorf("chase.speed_factor must be positive, got %g", c.Chase.SpeedFactor))
	}
	if c.Chase.CatchRadius < 0 {
		errs = append(errs, fmt.Errorf("chase.catch_radius must not be negative, got %g", c.Chase.CatchRadius))
	}
	if c.View.UnitsPerCell <= 0 {
		errs = append(errs, fmt.Errorf("view.units_per_cell must be positive, got %g", c.View.UnitsPerCell))
	}
	if c.View.Aspect <= 0 {
		errs = append(errs, fmt.Errorf("view.aspect must be positive, got %g", c.View.Aspect))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// SpeedFactorForPreset returns the multiplier applied to mover speeds.
func SpeedFactorForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// ApplyPreset sets the mover speed factor for a difficulty preset.
// The player's speed is left alone.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Chase.SpeedFactor = SpeedFactorForPreset(preset)
}
