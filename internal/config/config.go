// Package config provides YAML and TOML configuration loading for the
// shatter simulation and its terminal frontend.
package config

import (
	"errors"
	"fmt"
)

// ShatterConfig contains all tunable constants of the game.
type ShatterConfig struct {
	Player      PlayerConfig      `yaml:"player" toml:"player"`
	Targets     TargetsConfig     `yaml:"targets" toml:"targets"`
	Projectiles ProjectilesConfig `yaml:"projectiles" toml:"projectiles"`
	World       WorldConfig       `yaml:"world" toml:"world"`
}

// PlayerConfig defines player movement.
type PlayerConfig struct {
	Speed float64 `yaml:"speed" toml:"speed"` // world units per second
	Clamp bool    `yaml:"clamp" toml:"clamp"` // keep the player inside the viewport
}

// TargetsConfig defines the target field.
type TargetsConfig struct {
	Count  int     `yaml:"count" toml:"count"`
	Radius float64 `yaml:"radius" toml:"radius"`
}

// ProjectilesConfig defines projectile motion and store behavior.
type ProjectilesConfig struct {
	Speed      float64 `yaml:"speed" toml:"speed"`
	Radius     float64 `yaml:"radius" toml:"radius"`
	SplitCount int     `yaml:"split_count" toml:"split_count"`
	Growth     string  `yaml:"growth" toml:"growth"`           // "exact" or "amortized"
	Max        int     `yaml:"max" toml:"max"`                 // 0 = unlimited
	OnOverflow string  `yaml:"on_overflow" toml:"on_overflow"` // "drop" or "abort"
}

// WorldConfig maps world units onto terminal cells.
type WorldConfig struct {
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"`
}

// Growth policy names.
const (
	GrowthExact     = "exact"
	GrowthAmortized = "amortized"
)

// Overflow policy names.
const (
	OverflowDrop  = "drop"
	OverflowAbort = "abort"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports the first out-of-range value.
func (c ShatterConfig) Validate() error {
	switch {
	case c.Player.Speed < 0:
		return fmt.Errorf("%w: player.speed must be >= 0, got %g", ErrInvalid, c.Player.Speed)
	case c.Targets.Count <= 0:
		return fmt.Errorf("%w: targets.count must be > 0, got %d", ErrInvalid, c.Targets.Count)
	case c.Targets.Radius <= 0:
		return fmt.Errorf("%w: targets.radius must be > 0, got %g", ErrInvalid, c.Targets.Radius)
	case c.Projectiles.Speed <= 0:
		return fmt.Errorf("%w: projectiles.speed must be > 0, got %g", ErrInvalid, c.Projectiles.Speed)
	case c.Projectiles.Radius < 0:
		return fmt.Errorf("%w: projectiles.radius must be >= 0, got %g", ErrInvalid, c.Projectiles.Radius)
	case c.Projectiles.SplitCount < 0:
		return fmt.Errorf("%w: projectiles.split_count must be >= 0, got %d", ErrInvalid, c.Projectiles.SplitCount)
	case c.Projectiles.Max < 0:
		return fmt.Errorf("%w: projectiles.max must be >= 0, got %d", ErrInvalid, c.Projectiles.Max)
	case c.World.CellWidth <= 0 || c.World.CellHeight <= 0:
		return fmt.Errorf("%w: world cell size must be > 0, got %gx%g", ErrInvalid, c.World.CellWidth, c.World.CellHeight)
	}

	switch c.Projectiles.Growth {
	case GrowthExact, GrowthAmortized:
	default:
		return fmt.Errorf("%w: projectiles.growth must be %q or %q, got %q", ErrInvalid, GrowthExact, GrowthAmortized, c.Projectiles.Growth)
	}

	switch c.Projectiles.OnOverflow {
	case OverflowDrop, OverflowAbort:
	default:
		return fmt.Errorf("%w: projectiles.on_overflow must be %q or %q, got %q", ErrInvalid, OverflowDrop, OverflowAbort, c.Projectiles.OnOverflow)
	}

	return nil
}

// Preset names one of the built-in constant sets.
type Preset string

const (
	PresetSparse  Preset = "sparse"
	PresetClassic Preset = "classic"
	PresetDense   Preset = "dense"
)

// ParsePreset converts a CLI value to a Preset. The empty string means no
// preset and is accepted.
func ParsePreset(s string) (Preset, error) {
	switch p := Preset(s); p {
	case "", PresetSparse, PresetClassic, PresetDense:
		return p, nil
	default:
		return "", fmt.Errorf("unknown preset %q (want sparse, classic or dense)", s)
	}
}

// ApplyShatterPreset overrides the field and projectile constants with the
// values of a preset. Store and world settings are left alone.
func ApplyShatterPreset(cfg *ShatterConfig, preset Preset) {
	switch preset {
	case PresetSparse:
		cfg.Targets.Count = 120
		cfg.Targets.Radius = 9
		cfg.Projectiles.Speed = 180
	case PresetClassic:
		cfg.Player.Speed = 345
		cfg.Targets.Count = 456
		cfg.Targets.Radius = 7
		cfg.Projectiles.Speed = 234
		cfg.Projectiles.Radius = 3
		cfg.Projectiles.SplitCount = 3
	case PresetDense:
		cfg.Targets.Count = 900
		cfg.Targets.Radius = 5
		cfg.Projectiles.Speed = 300
	}
}
