// Package config provides YAML-based configuration loading and validation
// for gapbird's gameplay tunables.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// MaxDimension bounds the field size so obstacle split points fit an int.
const MaxDimension = math.MaxInt32

// GameConfig contains every gameplay tunable.
// All lengths are in world units; speeds and accelerations are per tick.
type GameConfig struct {
	Field     FieldConfig    `yaml:"field"`
	Actor     ActorConfig    `yaml:"actor"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
}

// FieldConfig defines the playfield dimensions.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ActorConfig defines the bird's hitbox and horizontal position.
type ActorConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines motion parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	JumpImpulse   float64 `yaml:"jump_impulse"`   // Negative = up
	ObstacleSpeed float64 `yaml:"obstacle_speed"` // Leftward scroll per tick
}

// ObstacleConfig defines obstacle pair geometry and spawning.
type ObstacleConfig struct {
	Width          float64 `yaml:"width"`
	GapSize        float64 `yaml:"gap_size"`
	MinSegment     float64 `yaml:"min_segment"`     // Minimum height of either half of a pair
	SpawnThreshold float64 `yaml:"spawn_threshold"` // Distance the newest pair travels before the next spawns
}

// Validate reports the first constraint the configuration violates.
// Values are never clamped: a rejected config must be fixed by the caller.
func (c GameConfig) Validate() error {
	values := []struct {
		name string
		v    float64
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"actor.x", c.Actor.X},
		{"actor.width", c.Actor.Width},
		{"actor.height", c.Actor.Height},
		{"physics.gravity", c.Physics.Gravity},
		{"physics.jump_impulse", c.Physics.JumpImpulse},
		{"physics.obstacle_speed", c.Physics.ObstacleSpeed},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.gap_size", c.Obstacles.GapSize},
		{"obstacles.min_segment", c.Obstacles.MinSegment},
		{"obstacles.spawn_threshold", c.Obstacles.SpawnThreshold},
	}
	for _, f := range values {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalid, f.name)
		}
	}

	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Field.Width > 0, "field.width must be positive"},
		{c.Field.Height > 0, "field.height must be positive"},
		{c.Field.Width <= MaxDimension, "field.width is too large"},
		{c.Field.Height <= MaxDimension, "field.height is too large"},
		{c.Actor.X >= 0 && c.Actor.X < c.Field.Width, "actor.x must lie inside the field"},
		{c.Actor.Width > 0, "actor.width must be positive"},
		{c.Actor.Height > 0 && c.Actor.Height < c.Field.Height, "actor.height must be positive and smaller than field.height"},
		{c.Physics.Gravity >= 0, "physics.gravity must not be negative"},
		{c.Physics.JumpImpulse < 0, "physics.jump_impulse must be negative (upward)"},
		{c.Physics.ObstacleSpeed > 0, "physics.obstacle_speed must be positive"},
		{c.Obstacles.Width > 0, "obstacles.width must be positive"},
		{c.Obstacles.GapSize > 0, "obstacles.gap_size must be positive"},
		{c.Obstacles.MinSegment > 0, "obstacles.min_segment must be positive"},
		{c.Obstacles.SpawnThreshold > 0, "obstacles.spawn_threshold must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, chk.msg)
		}
	}

	if room := c.Field.Height - 2*c.Obstacles.MinSegment; c.Obstacles.GapSize > room {
		return fmt.Errorf("%w: obstacles.gap_size %.0f exceeds field.height minus twice obstacles.min_segment (%.0f)",
			ErrInvalid, c.Obstacles.GapSize, room)
	}
	return nil
}
