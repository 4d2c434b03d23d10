// Package config provides the tunables for line-of-sight queries.
// Values are loaded from a JSON file so each map can ship its own settings.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"chosenoffset.com/sightline/internal/core/los"
)

// Config holds all line-of-sight settings
type Config struct {
	// Vision of a default observer
	Perception PerceptionConfig `json:"perception"`

	// Query internals
	Tracing TracingConfig `json:"tracing"`
}

// PerceptionConfig defines how far and how wide observers see
type PerceptionConfig struct {
	VisionRange     int     `json:"vision_range"`      // View distance in tiles
	VisionConeAngle float64 `json:"vision_cone_angle"` // Full width of the view cone (degrees)
}

// TracingConfig tunes the visibility polygon computation
type TracingConfig struct {
	IterationCap int     `json:"iteration_cap"` // Max steps of the polygon walk
	ArcSegments  int     `json:"arc_segments"`  // Chords per full circle of the cone arc
	Tolerance    float64 `json:"tolerance"`     // Point equality distance (world units)
}

// DefaultConfig returns the settings used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Perception: PerceptionConfig{
			VisionRange:     8,
			VisionConeAngle: 120,
		},
		Tracing: TracingConfig{
			IterationCap: los.DefaultIterationCap,
			ArcSegments:  los.DefaultArcSegments,
			Tolerance:    los.DefaultTolerance,
		},
	}
}

// LoadConfig loads config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings no query could run with
func (c *Config) Validate() error {
	if c.Perception.VisionRange < 0 {
		return fmt.Errorf("vision_range must not be negative, got %d", c.Perception.VisionRange)
	}
	if c.Perception.VisionConeAngle < 0 {
		return fmt.Errorf("vision_cone_angle must not be negative, got %g", c.Perception.VisionConeAngle)
	}
	if c.Tracing.IterationCap < 0 || c.Tracing.ArcSegments < 0 || c.Tracing.Tolerance < 0 {
		return fmt.Errorf("tracing settings must not be negative")
	}
	return nil
}

// Options converts the tracing settings for los.NewTracker
func (c *Config) Options() los.Options {
	return los.Options{
		IterationCap: c.Tracing.IterationCap,
		ArcSegments:  c.Tracing.ArcSegments,
		Tolerance:    c.Tracing.Tolerance,
	}
}

// ConeRadians returns the view cone width in radians
func (c *Config) ConeRadians() float64 {
	return c.Perception.VisionConeAngle * math.Pi / 180
}

// Observer builds a query for an entity at world position (x, y) facing
// direction (radians, screen convention).
func (c *Config) Observer(x, y, tileSize int, direction float64) los.Observer {
	return los.Observer{
		X:         x,
		Y:         y,
		Range:     c.Perception.VisionRange * tileSize,
		Angle:     c.ConeRadians(),
		Direction: direction,
	}
}
