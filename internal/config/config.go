// Package config provides YAML-based configuration loading for the puzzle:
// grid size, spawn and undo overrides, animation timings and the tile palette.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Grid size limits.
const (
	MinGridSize = 2
	MaxGridSize = 8
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Grid      T2048Grid      `yaml:"grid"`
	Spawn     T2048Spawn     `yaml:"spawn"`
	Undo      T2048Undo      `yaml:"undo"`
	Animation T2048Animation `yaml:"animation"`
	Palette   T2048Palette   `yaml:"palette"`
}

// T2048Grid defines the board dimensions.
type T2048Grid struct {
	Size int `yaml:"size"`
}

// T2048Spawn overrides the variant's spawn policy when FourProbability is set.
type T2048Spawn struct {
	FourProbability *float64 `yaml:"four_probability,omitempty"`
}

// T2048Undo overrides the variant's undo setting when Enabled is set.
type T2048Undo struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// T2048Animation defines animation timings in milliseconds.
type T2048Animation struct {
	SlideStepMS int `yaml:"slide_step_ms"` // Per cell travelled
	PulseMS     int `yaml:"pulse_ms"`
	VanishMS    int `yaml:"vanish_ms"`
}

// SlideStep returns the per-cell slide duration.
func (a T2048Animation) SlideStep() time.Duration {
	return time.Duration(a.SlideStepMS) * time.Millisecond
}

// Pulse returns the spawn pulse duration.
func (a T2048Animation) Pulse() time.Duration {
	return time.Duration(a.PulseMS) * time.Millisecond
}

// Vanish returns the in-place vanish duration.
func (a T2048Animation) Vanish() time.Duration {
	return time.Duration(a.VanishMS) * time.Millisecond
}

// T2048Palette maps tile values to "#rrggbb" colors.
type T2048Palette struct {
	Overflow string         `yaml:"overflow"` // Used for values missing from Tiles
	Tiles    map[int]string `yaml:"tiles"`
}

// Validate reports the first invalid setting.
func (c T2048Config) Validate() error {
	if c.Grid.Size < MinGridSize || c.Grid.Size > MaxGridSize {
		return fmt.Errorf("grid.size must be in [%d, %d], got %d", MinGridSize, MaxGridSize, c.Grid.Size)
	}
	if p := c.Spawn.FourProbability; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("spawn.four_probability must be in [0, 1], got %g", *p)
	}
	a := c.Animation
	if a.SlideStepMS < 0 || a.PulseMS < 0 || a.VanishMS < 0 {
		return errors.New("animation durations must not be negative")
	}
	if _, err := colorful.Hex(c.Palette.Overflow); err != nil {
		return fmt.Errorf("palette.overflow %q: %w", c.Palette.Overflow, err)
	}
	for value, hex := range c.Palette.Tiles {
		if value <= 0 || value&(value-1) != 0 {
			return fmt.Errorf("palette.tiles key %d is not a power of two", value)
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("palette.tiles[%d] %q: %w", value, hex, err)
		}
	}
	return nil
}
