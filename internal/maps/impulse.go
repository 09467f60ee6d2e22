package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Impulse is x' = g·x + h·I where I is Magnitude on steps whose first
// input component is non-zero and 0 otherwise.
type Impulse struct {
	Gain        float64 // g
	ImpulseGain float64 // h
	Magnitude   float64
}

func NewImpulse() Impulse {
	return Impulse{Gain: 0.8, ImpulseGain: 0.5, Magnitude: 1.0}
}

func (m Impulse) Name() string { return string(KindImpulse) }
func (m Impulse) Dim() int     { return 1 }

func (m Impulse) Init(values ...float64) dynamo.State {
	return dynamo.NewState(1, values...)
}

func (m Impulse) Update(s dynamo.State, in dynamo.Input, _ dynamo.Source) dynamo.State {
	i := 0.0
	if in.At(0) != 0 {
		i = m.Magnitude
	}
	return s.Next(m.Gain*s.X.At(0) + m.ImpulseGain*i)
}

func (m Impulse) Params() map[string]float64 {
	return map[string]float64{
		"update_gain":       m.Gain,
		"impulse_gain":      m.ImpulseGain,
		"impulse_magnitude": m.Magnitude,
	}
}

func (m Impulse) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "update_gain":
		m.Gain = v
	case "impulse_gain":
		m.ImpulseGain = v
	case "impulse_magnitude":
		m.Magnitude = v
	default:
		return nil, unknown(m.Name(), name)
	}
	return m, nil
}
