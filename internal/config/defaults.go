package config

import (
	_ "embed"
)

//go:embed defaults/shatter.yaml
var defaultShatterYAML []byte

// DefaultShatterConfig returns the built-in configuration.
// It matches defaults/shatter.yaml.
func DefaultShatterConfig() ShatterConfig {
	return ShatterConfig{
		Player: PlayerConfig{
			Speed: 345,
			Clamp: true,
		},
		Targets: TargetsConfig{
			Count:  456,
			Radius: 7,
		},
		Projectiles: ProjectilesConfig{
			Speed:      234,
			Radius:     3,
			SplitCount: 3,
			Growth:     GrowthExact,
			Max:        0,
			OnOverflow: OverflowDrop,
		},
		World: WorldConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultShatterYAML
}
