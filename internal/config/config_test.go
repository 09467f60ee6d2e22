package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/experiment"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "logistic" {
		t.Errorf("expected model logistic, got %s", cfg.Model)
	}
	if cfg.Sweep.RMin != 2.8 || cfg.Sweep.RMax != 4.0 {
		t.Errorf("expected sweep 2.8..4.0, got %v..%v", cfg.Sweep.RMin, cfg.Sweep.RMax)
	}
	if cfg.Canvas.MarkAlpha != 0.15 {
		t.Errorf("expected mark alpha 0.15, got %v", cfg.Canvas.MarkAlpha)
	}
	if cfg.Field.Grid != 60 || cfg.Field.Levels != 10 || cfg.Field.Trail != 40 {
		t.Errorf("expected field 60/10/40, got %d/%d/%d", cfg.Field.Grid, cfg.Field.Levels, cfg.Field.Trail)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynmap.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Sweep.RMin = 3.2
	cfg.Canvas.Theme = "phosphor"
	cfg.Field.Step = 0.1

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "sweep:\n  r_min: 3.5\ncanvas:\n  theme: ember\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sweep.RMin != 3.5 {
		t.Errorf("expected r_min 3.5, got %v", cfg.Sweep.RMin)
	}
	if cfg.Sweep.RMax != 4.0 {
		t.Errorf("expected default r_max 4.0, got %v", cfg.Sweep.RMax)
	}
	if cfg.Canvas.Theme != "ember" || cfg.Canvas.Width != DefaultWidth {
		t.Errorf("expected ember theme at default width, got %s at %d", cfg.Canvas.Theme, cfg.Canvas.Width)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("sweep: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"inverted sweep", func(c *Config) { c.Sweep.RMin, c.Sweep.RMax = 4, 3 }, dynamo.ErrInvalidRange},
		{"empty sweep", func(c *Config) { c.Sweep.RMax = c.Sweep.RMin }, dynamo.ErrInvalidRange},
		{"zero canvas", func(c *Config) { c.Canvas.Width = 0 }, dynamo.ErrResourceUnavailable},
		{"no steps", func(c *Config) { c.Sweep.Steps = 0 }, nil},
		{"tiny grid", func(c *Config) { c.Field.Grid = 1 }, nil},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if tt.target != nil && !errors.Is(err, tt.target) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.target, err)
		}
	}
}

func TestWell(t *testing.T) {
	cfg := DefaultConfig()
	w := cfg.Well()
	if w.Depth != 1 || w.Step != DefaultFieldStep || w.Noise != 0.05 {
		t.Errorf("expected well from field section, got %+v", w)
	}
}

func TestExperiment(t *testing.T) {
	cfg := GetPreset("doubling")
	cfg.Seed = 7
	e := cfg.Experiment()
	if e.Model != "logistic" || e.Param != "r" {
		t.Errorf("expected logistic r sweep, got %s %s", e.Model, e.Param)
	}
	if e.Min != 2.9 || e.Max != 3.6 || e.Steps != 800 {
		t.Errorf("expected 2.9..3.6 x 800, got %v..%v x %d", e.Min, e.Max, e.Steps)
	}
	if e.Warmup != DefaultWarmup || e.Samples != DefaultSamples || e.Chunk != DefaultChunk || e.Seed != 7 {
		t.Errorf("expected sweep section carried over, got %+v", e)
	}
}

func TestUseModel(t *testing.T) {
	reg := experiment.NewRegistry()
	entry, err := reg.Entry("well")
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.UseModel(entry)
	if cfg.Model != "well" || cfg.Param != "well_depth" {
		t.Errorf("expected well_depth sweep, got %s %s", cfg.Model, cfg.Param)
	}
	if cfg.Sweep.RMin != 0 || cfg.Sweep.RMax != 1.2 || cfg.Sweep.Initial != 1 {
		t.Errorf("expected registered window, got %+v", cfg.Sweep)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("window3")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Sweep.RMin != 3.82 || cfg.Sweep.RMax != 3.86 {
		t.Errorf("expected 3.82..3.86, got %v..%v", cfg.Sweep.RMin, cfg.Sweep.RMax)
	}
	if cfg.Sweep.Warmup != DefaultWarmup {
		t.Errorf("expected default warmup, got %d", cfg.Sweep.Warmup)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	expected := []string{"doubling", "edge", "focus", "full", "window3"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("index %d: expected %s, got %s", i, expected[i], names[i])
		}
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
