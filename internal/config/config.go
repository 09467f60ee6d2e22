package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/experiment"
	"github.com/san-kum/dynmap/internal/maps"
	"github.com/san-kum/dynmap/internal/render"
)

const (
	DefaultSteps     = 800
	DefaultInitial   = 0.5
	DefaultWarmup    = 300
	DefaultSamples   = 120
	DefaultChunk     = 64
	DefaultWidth     = 800
	DefaultHeight    = 500
	DefaultGrid      = 60
	DefaultFieldStep = 0.05
	DefaultOrbit     = 200
	DefaultTheme     = "classic"
)

type Config struct {
	Model  string       `yaml:"model"`
	Param  string       `yaml:"param"`
	Seed   int64        `yaml:"seed"`
	Sweep  SweepConfig  `yaml:"sweep"`
	Canvas CanvasConfig `yaml:"canvas"`
	Field  FieldConfig  `yaml:"field"`
}

type SweepConfig struct {
	RMin    float64 `yaml:"r_min"`
	RMax    float64 `yaml:"r_max"`
	Steps   int     `yaml:"steps"`
	Initial float64 `yaml:"initial"`
	Warmup  int     `yaml:"warmup"`
	Samples int     `yaml:"samples"`
	Chunk   int     `yaml:"chunk"`
}

type CanvasConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	PixelRatio float64 `yaml:"pixel_ratio"`
	Theme      string  `yaml:"theme"`
	MarkAlpha  float64 `yaml:"mark_alpha"`
}

type FieldConfig struct {
	Grid   int     `yaml:"grid"`
	Levels int     `yaml:"levels"`
	Steps  int     `yaml:"steps"`
	Trail  int     `yaml:"trail"`
	Depth  float64 `yaml:"depth"`
	X0     float64 `yaml:"x0"`
	Y0     float64 `yaml:"y0"`
	Noise  float64 `yaml:"noise"`
	Step   float64 `yaml:"step"`
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: "logistic",
		Param: "r",
		Sweep: SweepConfig{
			RMin:    render.DefaultControlMin,
			RMax:    render.DefaultControlMax,
			Steps:   DefaultSteps,
			Initial: DefaultInitial,
			Warmup:  DefaultWarmup,
			Samples: DefaultSamples,
			Chunk:   DefaultChunk,
		},
		Canvas: CanvasConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			PixelRatio: 1,
			Theme:      DefaultTheme,
			MarkAlpha:  render.DefaultMarkAlpha,
		},
		Field: FieldConfig{
			Grid:   DefaultGrid,
			Levels: render.DefaultLevels,
			Steps:  DefaultOrbit,
			Trail:  render.DefaultTrail,
			Depth:  1,
			Noise:  0.05,
			Step:   DefaultFieldStep,
			StartX: 0.8,
			StartY: -0.6,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting no sweep or canvas could use.
func (c *Config) Validate() error {
	if !(c.Sweep.RMax > c.Sweep.RMin) {
		return fmt.Errorf("sweep [%g, %g]: %w", c.Sweep.RMin, c.Sweep.RMax, dynamo.ErrInvalidRange)
	}
	if c.Sweep.Steps < 1 {
		return fmt.Errorf("sweep steps must be positive, got %d", c.Sweep.Steps)
	}
	if c.Sweep.Samples < 0 || c.Sweep.Warmup < 0 {
		return fmt.Errorf("sweep warmup and samples must not be negative")
	}
	if c.Canvas.Width < 1 || c.Canvas.Height < 1 {
		return fmt.Errorf("canvas %dx%d: %w", c.Canvas.Width, c.Canvas.Height, dynamo.ErrResourceUnavailable)
	}
	if c.Field.Grid < 2 {
		return fmt.Errorf("field grid must be at least 2, got %d", c.Field.Grid)
	}
	return nil
}

// Well is the potential-well rule described by the field section.
func (c *Config) Well() maps.Well {
	return maps.Well{
		Depth: c.Field.Depth,
		X0:    c.Field.X0,
		Y0:    c.Field.Y0,
		Noise: c.Field.Noise,
		Step:  c.Field.Step,
	}
}

// RenderOptions collects the canvas and field settings as render options.
func (c *Config) RenderOptions() []render.Option {
	return []render.Option{
		render.WithMarkAlpha(c.Canvas.MarkAlpha),
		render.WithWindow(c.Sweep.RMin, c.Sweep.RMax),
		render.WithLevels(c.Field.Levels),
		render.WithTrail(c.Field.Trail),
	}
}

// Experiment is the sweep section as a runnable bifurcation sweep.
func (c *Config) Experiment() experiment.Config {
	return experiment.Config{
		Model:   c.Model,
		Param:   c.Param,
		Min:     c.Sweep.RMin,
		Max:     c.Sweep.RMax,
		Steps:   c.Sweep.Steps,
		Initial: c.Sweep.Initial,
		Warmup:  c.Sweep.Warmup,
		Samples: c.Sweep.Samples,
		Chunk:   c.Sweep.Chunk,
		Seed:    c.Seed,
	}
}

// UseModel switches c to a registered model and its default sweep.
func (c *Config) UseModel(e experiment.Entry) {
	c.Model = string(e.Kind)
	c.Param = e.Param
	c.Sweep.RMin, c.Sweep.RMax = e.Min, e.Max
	c.Sweep.Initial = e.Initial
}
