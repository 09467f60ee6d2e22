package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Relax moves x a fraction k of the way towards u each step:
// x' = (1-k)·x + k·u.
type Relax struct {
	K float64
	U float64
}

func NewRelax() Relax {
	return Relax{K: 0.5, U: 0.0}
}

func (r Relax) Name() string { return string(KindRelax) }
func (r Relax) Dim() int     { return 1 }

func (r Relax) Init(values ...float64) dynamo.State {
	return dynamo.NewState(1, values...)
}

func (r Relax) Update(s dynamo.State, _ dynamo.Input, _ dynamo.Source) dynamo.State {
	return s.Next((1-r.K)*s.X.At(0) + r.K*r.U)
}

func (r Relax) Params() map[string]float64 {
	return map[string]float64{"k": r.K, "u": r.U}
}

func (r Relax) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "k":
		r.K = v
	case "u":
		r.U = v
	default:
		return nil, unknown(r.Name(), name)
	}
	return r, nil
}
