package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsUsable(t *testing.T) {
	cfg := DefaultConfig()

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("default config should produce valid params: %v", err)
	}
	if !p.UseCorrectModel {
		t.Error("default model should be the corrected one")
	}
	if cfg.Episode.MaxSteps <= 0 {
		t.Error("default episode length must be positive")
	}
}

func TestParamsModelSelection(t *testing.T) {
	tests := []struct {
		model       string
		wantCorrect bool
		wantGravity float64
	}{
		{ModelCorrect, true, 9.8},
		{"", true, 9.8},
		{ModelClassicGravity, false, 9.8},
		{ModelClassic, false, -9.8},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Model = tt.model

		p, err := cfg.Params()
		if err != nil {
			t.Fatalf("Params(%q): %v", tt.model, err)
		}
		if p.UseCorrectModel != tt.wantCorrect {
			t.Errorf("model %q: UseCorrectModel = %v, want %v",
				tt.model, p.UseCorrectModel, tt.wantCorrect)
		}
		if p.Gravity != tt.wantGravity {
			t.Errorf("model %q: gravity = %v, want %v",
				tt.model, p.Gravity, tt.wantGravity)
		}
	}

	cfg := DefaultConfig()
	cfg.Model = "florian"
	if _, err := cfg.Params(); err == nil {
		t.Error("unknown model should fail")
	}
}

func TestParamsOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics.PoleMass = 0.5
	cfg.Physics.HalfPoleLength = 1.0
	cfg.Physics.InfiniteTrack = true

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p.PoleMass != 0.5 || p.HalfPoleLength != 1.0 {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.FiniteTrack {
		t.Error("infinite_track should clear FiniteTrack")
	}
	if p.CartMass != 1.0 {
		t.Error("untouched fields must keep defaults")
	}
}

func TestParamsRejectsInvalidOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics.TimeDelta = -0.02
	if _, err := cfg.Params(); err == nil {
		t.Error("negative time delta should fail validation")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Model = ModelClassic
	cfg.Policy.Name = "random"
	cfg.Policy.Seed = 99
	cfg.InitState.Angle = 0.1

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Model != ModelClassic || loaded.Policy.Name != "random" ||
		loaded.Policy.Seed != 99 || loaded.InitState.Angle != 0.1 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	if err := os.WriteFile(path, []byte("model: classic\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Model != ModelClassic {
		t.Errorf("explicit field ignored: %q", cfg.Model)
	}
	if cfg.Episode.MaxSteps != 500 {
		t.Errorf("missing fields should keep defaults, got %d", cfg.Episode.MaxSteps)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	if len(ListPresets()) != len(Presets) {
		t.Error("ListPresets should cover every preset")
	}

	for name := range Presets {
		cfg, ok := GetPreset(name)
		if !ok {
			t.Fatalf("GetPreset(%q) missing", name)
		}
		if _, err := cfg.Params(); err != nil {
			t.Errorf("preset %q has invalid params: %v", name, err)
		}
		if cfg.Episode.MaxSteps <= 0 {
			t.Errorf("preset %q has no episode budget", name)
		}
	}

	if _, ok := GetPreset("nope"); ok {
		t.Error("unknown preset should report missing")
	}

	cfg, _ := GetPreset("balance")
	cfg.Episode.MaxSteps = 1
	fresh, _ := GetPreset("balance")
	if fresh.Episode.MaxSteps == 1 {
		t.Error("GetPreset must return a copy")
	}
}
