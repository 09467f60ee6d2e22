package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Drift is the stability-versus-drift map x' = a·x + b + σ·N(0,1).
type Drift struct {
	A     float64 // stability coefficient, 0..1
	B     float64 // constant drift
	Sigma float64 // noise standard deviation
}

func NewDrift() Drift {
	return Drift{A: 0.8, B: 0.0, Sigma: 0.05}
}

func (d Drift) Name() string { return string(KindDrift) }
func (d Drift) Dim() int     { return 1 }
func (d Drift) Noisy() bool  { return d.Sigma != 0 }

func (d Drift) Init(values ...float64) dynamo.State {
	return dynamo.NewState(1, values...)
}

func (d Drift) Update(s dynamo.State, _ dynamo.Input, rng dynamo.Source) dynamo.State {
	noise := 0.0
	if d.Sigma != 0 {
		noise = d.Sigma * dynamo.Gaussian(rng)
	}
	return s.Next(d.A*s.X.At(0) + d.B + noise)
}

func (d Drift) Params() map[string]float64 {
	return map[string]float64{"a": d.A, "b": d.B, "sigma": d.Sigma}
}

func (d Drift) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "a":
		d.A = v
	case "b":
		d.B = v
	case "sigma":
		d.Sigma = v
	default:
		return nil, unknown(d.Name(), name)
	}
	return d, nil
}
