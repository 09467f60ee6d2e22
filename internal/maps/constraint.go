package maps

import (
	"math"

	"github.com/san-kum/dynmap/internal/dynamo"
)

// Rect is an axis-aligned rectangle in center form.
type Rect struct {
	X, Y float64 // center
	W, H float64
}

func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Intersect returns the overlap of a and b; ok is false when they only
// touch or are disjoint.
func Intersect(a, b Rect) (Rect, bool) {
	left := math.Max(a.X-a.W/2, b.X-b.W/2)
	right := math.Min(a.X+a.W/2, b.X+b.W/2)
	bottom := math.Max(a.Y-a.H/2, b.Y-b.H/2)
	top := math.Min(a.Y+a.H/2, b.Y+b.H/2)

	if left < right && bottom < top {
		w, h := right-left, top-bottom
		return Rect{X: left + w/2, Y: bottom + h/2, W: w, H: h}, true
	}
	return Rect{}, false
}

// Constraint translates two fixed base regions by drifting offsets.
// The state is (ux, uy, mx, my): the shift of R1 and the shift of R2.
// Each step adds the 4-component input to the offsets.
type Constraint struct {
	R1, R2 Rect
}

func NewConstraint() Constraint {
	return Constraint{
		R1: Rect{W: 0.8, H: 0.6},
		R2: Rect{W: 0.6, H: 0.8},
	}
}

func (c Constraint) Name() string { return string(KindConstraint) }
func (c Constraint) Dim() int     { return 4 }

func (c Constraint) Init(values ...float64) dynamo.State {
	return dynamo.NewState(4, values...)
}

func (c Constraint) Update(s dynamo.State, in dynamo.Input, _ dynamo.Source) dynamo.State {
	return s.Next(
		s.X.At(0)+in.At(0),
		s.X.At(1)+in.At(1),
		s.X.At(2)+in.At(2),
		s.X.At(3)+in.At(3),
	)
}

// Overlap places both regions at the offsets held in s.
func (c Constraint) Overlap(s dynamo.State) (r1, r2, inter Rect, ok bool) {
	r1 = c.R1.Translate(s.X.At(0), s.X.At(1))
	r2 = c.R2.Translate(s.X.At(2), s.X.At(3))
	inter, ok = Intersect(r1, r2)
	return r1, r2, inter, ok
}

func (c Constraint) Params() map[string]float64 {
	return map[string]float64{
		"r1_w": c.R1.W, "r1_h": c.R1.H,
		"r2_w": c.R2.W, "r2_h": c.R2.H,
	}
}

func (c Constraint) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "r1_w":
		c.R1.W = v
	case "r1_h":
		c.R1.H = v
	case "r2_w":
		c.R2.W = v
	case "r2_h":
		c.R2.H = v
	default:
		return nil, unknown(c.Name(), name)
	}
	return c, nil
}
