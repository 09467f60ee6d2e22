package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Noise is a random walk with drift: x' = x + d + n·r, r ~ U(-1,1).
// Level is clamped to [0,1], Drift to [-1,1] and x' to [-1,1].
type Noise struct {
	Level float64
	Drift float64
}

func NewNoise() Noise {
	return Noise{Level: 0.3, Drift: 0}
}

func (m Noise) Name() string { return string(KindNoise) }
func (m Noise) Dim() int     { return 1 }
func (m Noise) Noisy() bool  { return dynamo.Clamp01(m.Level) != 0 }

func (m Noise) Init(values ...float64) dynamo.State {
	return dynamo.NewState(1, values...)
}

func (m Noise) Update(s dynamo.State, _ dynamo.Input, rng dynamo.Source) dynamo.State {
	n := dynamo.Clamp01(m.Level)
	d := dynamo.ClampUnit(m.Drift)
	r := 0.0
	if n != 0 {
		r = dynamo.Uniform(rng)
	}
	return s.Next(dynamo.ClampUnit(s.X.At(0) + d + n*r))
}

func (m Noise) Params() map[string]float64 {
	return map[string]float64{"noise_level": m.Level, "baseline_drift": m.Drift}
}

func (m Noise) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "noise_level":
		m.Level = v
	case "baseline_drift":
		m.Drift = v
	default:
		return nil, unknown(m.Name(), name)
	}
	return m, nil
}
