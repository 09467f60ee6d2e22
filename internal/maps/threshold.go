package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Threshold is a two-branch linear map switching at T.
// Below T it follows k1·x + b1, above it k2·x + b2; within Delta of T the
// two branches are blended linearly. Delta = 0 gives a hard switch where
// x == T takes the upper branch.
type Threshold struct {
	T      float64
	Delta  float64
	K1, B1 float64
	K2, B2 float64
}

func NewThreshold() Threshold {
	return Threshold{T: 0, Delta: 0.2, K1: 1.5, B1: 0.2, K2: -0.8, B2: 0}
}

func (m Threshold) Name() string { return string(KindThreshold) }
func (m Threshold) Dim() int     { return 1 }

func (m Threshold) Init(values ...float64) dynamo.State {
	return dynamo.NewState(1, values...)
}

func (m Threshold) Update(s dynamo.State, _ dynamo.Input, _ dynamo.Source) dynamo.State {
	return s.Next(m.MapOnce(s.X.At(0)))
}

// MapOnce evaluates the piecewise map at x.
func (m Threshold) MapOnce(x float64) float64 {
	lower := m.K1*x + m.B1
	upper := m.K2*x + m.B2
	if m.Delta <= 0 {
		if x < m.T {
			return lower
		}
		return upper
	}
	alpha := dynamo.Clamp01((x - (m.T - m.Delta/2)) / m.Delta)
	return (1-alpha)*lower + alpha*upper
}

// SampleDomain evaluates the map at n evenly spaced points of [min,max].
func (m Threshold) SampleDomain(min, max float64, n int) []dynamo.Vec2 {
	if n <= 0 {
		return nil
	}
	out := make([]dynamo.Vec2, n)
	for i := range out {
		x := min
		if n > 1 {
			x = min + (max-min)*float64(i)/float64(n-1)
		}
		out[i] = dynamo.Vec2{X: x, Y: m.MapOnce(x)}
	}
	return out
}

func (m Threshold) Params() map[string]float64 {
	return map[string]float64{
		"t": m.T, "delta": m.Delta,
		"k1": m.K1, "b1": m.B1, "k2": m.K2, "b2": m.B2,
	}
}

func (m Threshold) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "t":
		m.T = v
	case "delta":
		m.Delta = v
	case "k1":
		m.K1 = v
	case "b1":
		m.B1 = v
	case "k2":
		m.K2 = v
	case "b2":
		m.B2 = v
	default:
		return nil, unknown(m.Name(), name)
	}
	return m, nil
}
