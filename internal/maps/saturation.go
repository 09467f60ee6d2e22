package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Saturation blends the input into the state: x' = (1-S)·u + S·x.
// S is clamped to [0,1] and x' to [-1,1].
type Saturation struct {
	S float64
}

func NewSaturation() Saturation {
	return Saturation{S: 0.5}
}

func (m Saturation) Name() string { return string(KindSaturation) }
func (m Saturation) Dim() int     { return 1 }

func (m Saturation) Init(values ...float64) dynamo.State {
	return dynamo.NewState(1, values...)
}

func (m Saturation) Update(s dynamo.State, in dynamo.Input, _ dynamo.Source) dynamo.State {
	sat := dynamo.Clamp01(m.S)
	next := (1-sat)*in.At(0) + sat*s.X.At(0)
	return s.Next(dynamo.ClampUnit(next))
}

func (m Saturation) Params() map[string]float64 {
	return map[string]float64{"s": m.S}
}

func (m Saturation) With(name string, v float64) (dynamo.Rule, error) {
	if name != "s" {
		return nil, unknown(m.Name(), name)
	}
	m.S = v
	return m, nil
}
