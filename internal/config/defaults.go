package config

import (
	_ "embed"
)

//go:embed defaults/gapbird.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// It mirrors defaults/gapbird.yaml.
func Default() GameConfig {
	return GameConfig{
		Field: FieldConfig{
			Width:  400,
			Height: 600,
		},
		Actor: ActorConfig{
			X:      50,
			Width:  30,
			Height: 24,
		},
		Physics: PhysicsConfig{
			Gravity:       0.02,
			JumpImpulse:   -2,
			ObstacleSpeed: 1,
		},
		Obstacles: ObstacleConfig{
			Width:          50,
			GapSize:        150,
			MinSegment:     50,
			SpawnThreshold: 300,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
