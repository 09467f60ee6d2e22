package config

import "sort"

// Preset is a named sweep window of the logistic diagram.
type Preset struct {
	Description string
	RMin, RMax  float64
	Steps       int
}

var Presets = map[string]Preset{
	"full":     {"every regime from the stable fixed point to full chaos", 1.0, 4.0, 1200},
	"focus":    {"period doubling into chaos", 2.8, 4.0, 800},
	"doubling": {"the first period-doubling cascade", 2.9, 3.6, 800},
	"window3":  {"the period-3 window and its own cascade", 3.82, 3.86, 800},
	"edge":     {"accumulation point of the cascade", 3.54, 3.6, 800},
}

// GetPreset returns the default config with the named sweep window
// applied, or nil when no preset has that name.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Apply(p)
	return cfg
}

// Apply overrides the sweep window of c with p.
func (c *Config) Apply(p Preset) {
	c.Sweep.RMin = p.RMin
	c.Sweep.RMax = p.RMax
	if p.Steps > 0 {
		c.Sweep.Steps = p.Steps
	}
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
