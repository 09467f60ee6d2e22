package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Well descends the quadratic potential U = a·((x-x0)² + (y-y0)²):
//
//	p' = p - Step·∇U(p) + η,  η ~ Noise·N(0,1) per axis
type Well struct {
	Depth  float64 // a
	X0, Y0 float64 // well center
	Noise  float64
	Step   float64 // gradient step size
}

// NewWell uses a unit gradient step; 0.05 gives a slow, visible descent.
func NewWell() Well {
	return Well{Depth: 1.0, Noise: 0.05, Step: 1.0}
}

func (w Well) Name() string { return string(KindWell) }
func (w Well) Dim() int     { return 2 }
func (w Well) Noisy() bool  { return w.Noise != 0 }

func (w Well) Init(values ...float64) dynamo.State {
	return dynamo.NewState(2, values...)
}

// Potential evaluates U at (x, y).
func (w Well) Potential(x, y float64) float64 {
	dx, dy := x-w.X0, y-w.Y0
	return w.Depth*dx*dx + w.Depth*dy*dy
}

// Gradient returns ∇U at (x, y).
func (w Well) Gradient(x, y float64) dynamo.Vec2 {
	return dynamo.Vec2{X: 2 * w.Depth * (x - w.X0), Y: 2 * w.Depth * (y - w.Y0)}
}

func (w Well) Update(s dynamo.State, _ dynamo.Input, rng dynamo.Source) dynamo.State {
	p := s.Point()
	g := w.Gradient(p.X, p.Y)
	var nx, ny float64
	if w.Noise != 0 {
		nx = dynamo.Gaussian(rng) * w.Noise
		ny = dynamo.Gaussian(rng) * w.Noise
	}
	return s.Next(p.X-w.Step*g.X+nx, p.Y-w.Step*g.Y+ny)
}

func (w Well) Params() map[string]float64 {
	return map[string]float64{
		"well_depth":      w.Depth,
		"well_position_x": w.X0,
		"well_position_y": w.Y0,
		"noise_level":     w.Noise,
		"step":            w.Step,
	}
}

func (w Well) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "well_depth":
		w.Depth = v
	case "well_position_x":
		w.X0 = v
	case "well_position_y":
		w.Y0 = v
	case "noise_level":
		w.Noise = v
	case "step":
		w.Step = v
	default:
		return nil, unknown(w.Name(), name)
	}
	return w, nil
}
