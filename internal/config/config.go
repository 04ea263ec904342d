// Package config holds every tuning constant the simulation reads. The
// physics world and the water system take an explicit Config instead of
// consulting package globals, so tests and embedders can vary them freely.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Vec2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type Config struct {
	// Gravity in world units per second squared. Screen coordinates are
	// Y-down, so positive Y pulls objects toward the bottom.
	Gravity Vec2 `yaml:"gravity"`

	// SubSteps per Step call. Integration and resolution run once per
	// sub-step; collision events are classified once per full step.
	SubSteps int `yaml:"subSteps"`

	// CellSize of the broad-phase spatial hash.
	CellSize float32 `yaml:"cellSize"`

	// PenetrationSlop is the overlap left in place by position correction.
	// Resting contacts keep this much penetration so they report Stay
	// instead of flickering between Enter and Exit.
	PenetrationSlop float32 `yaml:"penetrationSlop"`

	// LineThickness of the synthetic boxes line-chain segments collide as.
	LineThickness float32 `yaml:"lineThickness"`

	Water Water `yaml:"water"`
}

// Water tunes the particle fluid. The stiffness/rest-density pair is
// empirically chosen; the pressure solve is position-based and sensitive
// to these values.
type Water struct {
	Spacing      float32 `yaml:"spacing"`
	RestDensity  float32 `yaml:"restDensity"`
	Stiffness    float32 `yaml:"stiffness"`
	Viscosity    float32 `yaml:"viscosity"`
	TideAmplitude float32 `yaml:"tideAmplitude"`
	TideSpeed    float32 `yaml:"tideSpeed"`

	// Rigid bodies within PushRadius of a particle shove it aside with
	// PushStrength of their velocity.
	PushRadius   float32 `yaml:"pushRadius"`
	PushStrength float32 `yaml:"pushStrength"`

	// Coupling back onto rigid bodies.
	Lift            float32 `yaml:"lift"`
	SinkForce       float32 `yaml:"sinkForce"`
	SurfacePull     float32 `yaml:"surfacePull"`
	FluidDrag       float32 `yaml:"fluidDrag"`
	ImmersionSamples int    `yaml:"immersionSamples"`
}

// Default returns the tuning used by the demo and the tests.
func Default() Config {
	return Config{
		Gravity:         Vec2{X: 0, Y: 980},
		SubSteps:        2,
		CellSize:        64,
		PenetrationSlop: 0.05,
		LineThickness:   2,
		Water: Water{
			Spacing:       8,
			RestDensity:   1.5,
			Stiffness:     0.08,
			Viscosity:     0.4,
			TideAmplitude: 0,
			TideSpeed:     1.2,
			PushRadius:    24,
			PushStrength:  0.6,
			Lift:          1400,
			SinkForce:     300,
			SurfacePull:   2.0,
			FluidDrag:     1.6,
			ImmersionSamples: 6,
		},
	}
}

// Load reads a YAML config file. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SubSteps < 1 {
		cfg.SubSteps = 1
	}
	return cfg, nil
}
