package world

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero players", func(c *Config) { c.NumPlayers = 0 }},
		{"zero pellets", func(c *Config) { c.NumPellets = 0 }},
		{"negative pellet mass", func(c *Config) { c.PelletMass = -1 }},
		{"zero base mass", func(c *Config) { c.BaseMass = 0 }},
		{"zero decay", func(c *Config) { c.MassDecay = 0 }},
		{"decay above one", func(c *Config) { c.MassDecay = 1.5 }},
		{"zero speed scale", func(c *Config) { c.SpeedScale = 0 }},
		{"zero radius scale", func(c *Config) { c.RadiusScale = 0 }},
		{"zero world size", func(c *Config) { c.WorldSize = 0 }},
		{"negative penalty", func(c *Config) { c.BasePenalty = -0.1 }},
		{"unknown boundary", func(c *Config) { c.Boundary = "bounce" }},
		{"unknown placement", func(c *Config) { c.PelletPlacement = "grid" }},
		{"clustered without freq", func(c *Config) {
			c.PelletPlacement = PlacementClustered
			c.PlacementFreq = 0
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate accepted a bad config")
			}
			if _, err := New(cfg); err == nil {
				t.Fatalf("New accepted a bad config")
			}
		})
	}
}

func TestPresetsValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default preset invalid: %v", err)
	}
	if err := EliminationConfig().Validate(); err != nil {
		t.Fatalf("elimination preset invalid: %v", err)
	}
	elim := EliminationConfig()
	if elim.Boundary != BoundaryKill || elim.BasePenalty == 0 || elim.MassNormMax == 0 {
		t.Fatalf("elimination preset missing its profile: %+v", elim)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	body := "num_players: 4\nboundary: kill\nbase_penalty: 0.25\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.NumPlayers != 4 || cfg.Boundary != BoundaryKill || cfg.BasePenalty != 0.25 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Untouched fields keep the default profile.
	if cfg.NumPellets != DefaultConfig().NumPellets || cfg.MassDecay != DefaultConfig().MassDecay {
		t.Fatalf("defaults lost on load: %+v", cfg)
	}
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte("num_players: 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("LoadConfig accepted an invalid config")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("LoadConfig accepted a missing file")
	}
}
