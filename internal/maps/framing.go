package maps

import (
	"math"

	"github.com/san-kum/dynmap/internal/dynamo"
)

// Framing moves a point along a rotated, scaled vector field:
// p' = p + V(p), V = Strength · R(Rotation) · V0.
// V0 mixes a unit tangential flow around the origin (0.6) with a radial
// push decaying as 1/(1+r²) (0.4).
type Framing struct {
	Strength float64
	Rotation float64 // degrees
}

func NewFraming() Framing {
	return Framing{Strength: 1.0, Rotation: 0}
}

func (f Framing) Name() string { return string(KindFraming) }
func (f Framing) Dim() int     { return 2 }

func (f Framing) Init(values ...float64) dynamo.State {
	return dynamo.NewState(2, values...)
}

func baseField(p dynamo.Vec2) dynamo.Vec2 {
	r2 := p.X*p.X + p.Y*p.Y + 1e-6
	r := math.Sqrt(r2)
	tangential := dynamo.Vec2{X: -p.Y / r, Y: p.X / r}
	radial := p.Scale(1 / (1 + r2))
	return tangential.Scale(0.6).Add(radial.Scale(0.4))
}

// Field evaluates V at p.
func (f Framing) Field(p dynamo.Vec2) dynamo.Vec2 {
	return baseField(p).Rotate(f.Rotation * math.Pi / 180).Scale(f.Strength)
}

func (f Framing) Update(s dynamo.State, _ dynamo.Input, _ dynamo.Source) dynamo.State {
	p := s.Point()
	n := p.Add(f.Field(p))
	return s.Next(n.X, n.Y)
}

func (f Framing) Params() map[string]float64 {
	return map[string]float64{"vector_strength": f.Strength, "vector_rotation": f.Rotation}
}

func (f Framing) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "vector_strength":
		f.Strength = v
	case "vector_rotation":
		f.Rotation = v
	default:
		return nil, unknown(f.Name(), name)
	}
	return f, nil
}
