package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Gravity.Y != 980 {
		t.Errorf("Expected gravity 980 down-screen, got %f", cfg.Gravity.Y)
	}
	if cfg.SubSteps != 2 {
		t.Errorf("Expected 2 sub-steps, got %d", cfg.SubSteps)
	}
	if cfg.PenetrationSlop <= 0 {
		t.Error("Penetration slop must be positive for stable resting contacts")
	}
	if cfg.Water.Spacing <= 0 || cfg.Water.RestDensity <= 0 {
		t.Error("Water defaults must be usable as-is")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	yaml := `
gravity:
  x: 0
  y: 500
subSteps: 4
cellSize: 32
water:
  spacing: 4
  stiffness: 0.2
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Gravity.Y != 500 {
		t.Errorf("Expected gravity 500, got %f", cfg.Gravity.Y)
	}
	if cfg.SubSteps != 4 {
		t.Errorf("Expected 4 sub-steps, got %d", cfg.SubSteps)
	}
	if cfg.CellSize != 32 {
		t.Errorf("Expected cell size 32, got %f", cfg.CellSize)
	}
	if cfg.Water.Spacing != 4 {
		t.Errorf("Expected water spacing 4, got %f", cfg.Water.Spacing)
	}
	if cfg.Water.Stiffness != 0.2 {
		t.Errorf("Expected stiffness 0.2, got %f", cfg.Water.Stiffness)
	}
}

func TestLoadClampsSubSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	if err := os.WriteFile(path, []byte("subSteps: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SubSteps < 1 {
		t.Errorf("SubSteps should clamp to at least 1, got %d", cfg.SubSteps)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Missing config file should return an error")
	}
}
