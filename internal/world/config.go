// Package world implements the absorption-world simulation: circular
// players move on a bounded square, grow by swallowing pellets and smaller
// players, shrink through continuous decay, and die when eaten or (under the
// kill boundary) when they leave the play area. The package exposes a
// turn-based Reset/Step contract any control policy can drive.
package world

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Boundary selects what happens when a move would leave the play area.
type Boundary string

const (
	// BoundaryClamp pins the position to the edge; the player stays alive.
	BoundaryClamp Boundary = "clamp"
	// BoundaryKill leaves the position unclipped and kills the player at
	// the end of the tick.
	BoundaryKill Boundary = "kill"
)

// Placement selects how pellet positions are drawn.
type Placement string

const (
	// PlacementUniform draws pellet positions uniformly over the world.
	PlacementUniform Placement = "uniform"
	// PlacementClustered biases pellet positions toward noise-field maxima,
	// producing patchy food fields.
	PlacementClustered Placement = "clustered"
)

// Config holds the immutable per-episode simulation parameters.
type Config struct {
	NumPlayers int     `yaml:"num_players"`
	NumPellets int     `yaml:"num_pellets"`
	PelletMass float64 `yaml:"pellet_mass"`
	BaseMass   float64 `yaml:"base_mass"`

	// MassDecay is the multiplicative per-tick decay factor in (0, 1].
	MassDecay float64 `yaml:"mass_decay"`

	// SpeedPow and SpeedScale shape the mass-dependent speed curve:
	// displacement per tick = SpeedScale * mass^SpeedPow. SpeedPow is
	// typically negative so heavier players move slower.
	SpeedPow   float64 `yaml:"speed_pow"`
	SpeedScale float64 `yaml:"speed_scale"`

	// RadiusScale converts mass to radius: r = sqrt(mass) * RadiusScale.
	RadiusScale float64 `yaml:"radius_scale"`

	WorldSize float64  `yaml:"world_size"`
	Boundary  Boundary `yaml:"boundary"`

	// BasePenalty is subtracted from the reward of any player whose
	// post-tick mass sits exactly at BaseMass. Zero disables it.
	BasePenalty float64 `yaml:"base_penalty"`

	// MassNormMax, when positive, divides observed masses by this value.
	// Zero reports raw masses.
	MassNormMax float64 `yaml:"mass_norm_max"`

	PelletPlacement Placement `yaml:"pellet_placement"`

	// PlacementFreq is the noise frequency for clustered placement,
	// in cycles across the world box.
	PlacementFreq float64 `yaml:"placement_freq"`
}

// DefaultConfig returns the classic single-player foraging profile:
// clamped boundary, raw mass observations, no idle penalty.
func DefaultConfig() Config {
	return Config{
		NumPlayers:      1,
		NumPellets:      200,
		PelletMass:      1.0,
		BaseMass:        10.0,
		MassDecay:       0.99,
		SpeedPow:        -0.44,
		SpeedScale:      10.0,
		RadiusScale:     1.0,
		WorldSize:       800.0,
		Boundary:        BoundaryClamp,
		PelletPlacement: PlacementUniform,
		PlacementFreq:   4.0,
	}
}

// EliminationConfig returns the multi-player last-blob-standing profile:
// leaving the play area kills, observed masses are normalized, and idling
// at base mass is penalized.
func EliminationConfig() Config {
	cfg := DefaultConfig()
	cfg.NumPlayers = 8
	cfg.NumPellets = 100
	cfg.Boundary = BoundaryKill
	cfg.BasePenalty = 0.1
	cfg.MassNormMax = 1000.0
	return cfg
}

// Validate rejects configurations the engine cannot run. It is called by
// New so a bad config never reaches a tick.
func (c Config) Validate() error {
	switch {
	case c.NumPlayers < 1:
		return fmt.Errorf("config: num_players must be >= 1, got %d", c.NumPlayers)
	case c.NumPellets < 1:
		return fmt.Errorf("config: num_pellets must be >= 1, got %d", c.NumPellets)
	case c.PelletMass <= 0:
		return fmt.Errorf("config: pellet_mass must be positive, got %g", c.PelletMass)
	case c.BaseMass <= 0:
		return fmt.Errorf("config: base_mass must be positive, got %g", c.BaseMass)
	case c.MassDecay <= 0 || c.MassDecay > 1:
		return fmt.Errorf("config: mass_decay must be in (0, 1], got %g", c.MassDecay)
	case c.SpeedScale <= 0:
		return fmt.Errorf("config: speed_scale must be positive, got %g", c.SpeedScale)
	case c.RadiusScale <= 0:
		return fmt.Errorf("config: radius_scale must be positive, got %g", c.RadiusScale)
	case c.WorldSize <= 0:
		return fmt.Errorf("config: world_size must be positive, got %g", c.WorldSize)
	case c.BasePenalty < 0:
		return fmt.Errorf("config: base_penalty must be >= 0, got %g", c.BasePenalty)
	case c.MassNormMax < 0:
		return fmt.Errorf("config: mass_norm_max must be >= 0, got %g", c.MassNormMax)
	}
	switch c.Boundary {
	case BoundaryClamp, BoundaryKill:
	default:
		return fmt.Errorf("config: unknown boundary %q", c.Boundary)
	}
	switch c.PelletPlacement {
	case PlacementUniform, PlacementClustered:
	default:
		return fmt.Errorf("config: unknown pellet_placement %q", c.PelletPlacement)
	}
	if c.PelletPlacement == PlacementClustered && c.PlacementFreq <= 0 {
		return fmt.Errorf("config: placement_freq must be positive for clustered placement, got %g", c.PlacementFreq)
	}
	return nil
}

// PelletRadius returns the fixed radius shared by every pellet.
func (c Config) PelletRadius() float64 {
	return math.Sqrt(c.PelletMass) * c.RadiusScale
}

// LoadConfig reads a YAML config file over the default profile, so a file
// only needs to name the fields it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
