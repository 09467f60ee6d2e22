package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Oscillator is the discrete damped oscillator
//
//	x' = x + v
//	v' = damping·v + stiffness·(u - x)
//
// with state (x, v).
type Oscillator struct {
	Damping   float64 // 0..1
	Stiffness float64 // 0..2
	U         float64 // reference position, -1..1
}

func NewOscillator() Oscillator {
	return Oscillator{Damping: 0.5, Stiffness: 1.0, U: 0}
}

func (o Oscillator) Name() string { return string(KindOscillator) }
func (o Oscillator) Dim() int     { return 2 }

func (o Oscillator) Init(values ...float64) dynamo.State {
	return dynamo.NewState(2, values...)
}

func (o Oscillator) Update(s dynamo.State, _ dynamo.Input, _ dynamo.Source) dynamo.State {
	x, v := s.X.At(0), s.X.At(1)
	return s.Next(x+v, o.Damping*v+o.Stiffness*(o.U-x))
}

func (o Oscillator) Params() map[string]float64 {
	return map[string]float64{"damping": o.Damping, "stiffness": o.Stiffness, "u": o.U}
}

func (o Oscillator) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "damping":
		o.Damping = v
	case "stiffness":
		o.Stiffness = v
	case "u":
		o.U = v
	default:
		return nil, unknown(o.Name(), name)
	}
	return o, nil
}
