package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Logistic is the map x' = r·x·(1-x).
// For r in [0,4] it keeps [0,1] invariant.
type Logistic struct {
	R float64
}

func NewLogistic() Logistic {
	return Logistic{R: 3.7}
}

func (l Logistic) Name() string { return string(KindLogistic) }
func (l Logistic) Dim() int     { return 1 }

// Init starts at x=0.5 unless a value is given.
func (l Logistic) Init(values ...float64) dynamo.State {
	if len(values) == 0 {
		return dynamo.NewState(1, 0.5)
	}
	return dynamo.NewState(1, values...)
}

func (l Logistic) Update(s dynamo.State, _ dynamo.Input, _ dynamo.Source) dynamo.State {
	x := s.X.At(0)
	return s.Next(l.R * x * (1 - x))
}

// FixedPoint returns the non-trivial fixed point (r-1)/r.
func (l Logistic) FixedPoint() float64 {
	if l.R == 0 {
		return 0
	}
	return (l.R - 1) / l.R
}

func (l Logistic) Params() map[string]float64 {
	return map[string]float64{"r": l.R}
}

func (l Logistic) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "r":
		l.R = v
	default:
		return nil, unknown(l.Name(), name)
	}
	return l, nil
}
