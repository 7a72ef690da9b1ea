package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt != 0.01 {
		t.Errorf("expected dt 0.01, got %f", cfg.Dt)
	}
	if cfg.Duration != 1.5 {
		t.Errorf("expected duration 1.5, got %f", cfg.Duration)
	}
	if cfg.OutputDir != "POVRAY_1" {
		t.Errorf("expected output dir POVRAY_1, got %s", cfg.OutputDir)
	}
	if cfg.Scene.Pendulum.Color == nil {
		t.Fatal("pendulum should have a default color")
	}
	if cfg.Scene.JointPoint.Vec().Y != 4 {
		t.Error("joint point should sit at y=4")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	body := []byte("dt: 0.005\nscene:\n  pendulum:\n    velocity: [2, 0, 0]\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Dt != 0.005 {
		t.Errorf("expected dt override 0.005, got %f", cfg.Dt)
	}
	if cfg.Scene.Pendulum.Velocity.Vec().X != 2 {
		t.Errorf("expected velocity override, got %+v", cfg.Scene.Pendulum.Velocity)
	}
	// untouched fields keep defaults
	if cfg.Duration != 1.5 {
		t.Errorf("expected default duration, got %f", cfg.Duration)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("dt: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fine")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Dt != 0.002 {
		t.Errorf("expected fine dt 0.002, got %f", cfg.Dt)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	found := false
	for _, n := range names {
		if n == "default" {
			found = true
		}
	}
	if !found {
		t.Error("expected default preset in list")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	cfg := DefaultConfig()
	cfg.Dt = 0.02
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Dt != 0.02 {
		t.Errorf("expected saved dt 0.02, got %f", loaded.Dt)
	}
}
