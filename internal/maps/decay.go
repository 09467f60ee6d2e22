package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Decay is the impulse-decay response x' = d·x + I, where I is the
// input of the step. d is clamped to [0,1] and x' to [-1,1].
type Decay struct {
	D        float64
	Strength float64 // impulse size used by Kick
}

func NewDecay() Decay {
	return Decay{D: 0.8, Strength: 0.5}
}

func (m Decay) Name() string { return string(KindDecay) }
func (m Decay) Dim() int     { return 1 }

func (m Decay) Init(values ...float64) dynamo.State {
	return dynamo.NewState(1, values...)
}

func (m Decay) Update(s dynamo.State, in dynamo.Input, _ dynamo.Source) dynamo.State {
	d := dynamo.Clamp01(m.D)
	return s.Next(dynamo.ClampUnit(d*s.X.At(0) + in.At(0)))
}

// Kick is the input of a triggered step.
func (m Decay) Kick() dynamo.Input {
	return dynamo.Input{m.Strength}
}

func (m Decay) Params() map[string]float64 {
	return map[string]float64{"decay": m.D, "impulse_strength": m.Strength}
}

func (m Decay) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "decay":
		m.D = v
	case "impulse_strength":
		m.Strength = v
	default:
		return nil, unknown(m.Name(), name)
	}
	return m, nil
}
