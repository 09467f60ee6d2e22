package dynamo

import (
	"fmt"
	"math"
)

// Vec is the state vector of a discrete map.
type Vec []float64

func (v Vec) Clone() Vec {
	c := make(Vec, len(v))
	copy(c, v)
	return c
}

func (v Vec) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// At returns component i, or 0 when v is too short.
func (v Vec) At(i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}

// State is an immutable snapshot of a map at step T.
// Update functions always return a new State and never write to X.
type State struct {
	T int
	X Vec
}

func (s State) Clone() State {
	return State{T: s.T, X: s.X.Clone()}
}

// Next builds the successor state carrying the given components.
func (s State) Next(x ...float64) State {
	return State{T: s.T + 1, X: Vec(x)}
}

func (s State) String() string {
	return fmt.Sprintf("t=%d x=%v", s.T, []float64(s.X))
}

// NewState copies up to dim values into a fresh state at t=0.
func NewState(dim int, values ...float64) State {
	x := make(Vec, dim)
	copy(x, values)
	return State{X: x}
}

// Input is an optional external input for a single step.
// Missing components read as zero.
type Input []float64

func (in Input) At(i int) float64 {
	if i < 0 || i >= len(in) {
		return 0
	}
	return in[i]
}

// Vec2 is a point in the plane, used by the 2D maps and field views.
type Vec2 struct {
	X, Y float64
}

func (p Vec2) Add(q Vec2) Vec2      { return Vec2{p.X + q.X, p.Y + q.Y} }
func (p Vec2) Scale(f float64) Vec2 { return Vec2{p.X * f, p.Y * f} }
func (p Vec2) Sub(q Vec2) Vec2      { return Vec2{p.X - q.X, p.Y - q.Y} }
func (p Vec2) Len() float64         { return math.Hypot(p.X, p.Y) }

// Rotate turns p counter-clockwise by rad radians.
func (p Vec2) Rotate(rad float64) Vec2 {
	c, sn := math.Cos(rad), math.Sin(rad)
	return Vec2{p.X*c - p.Y*sn, p.X*sn + p.Y*c}
}

// Point reads the first two components of s as a plane point.
func (s State) Point() Vec2 {
	return Vec2{s.X.At(0), s.X.At(1)}
}

// Rule is the state-transition contract shared by every model.
//
// Update must be total over any state produced by Init or Update of the
// same rule. The exported fields of the implementing struct are the
// model parameters; rules are values, so changing a parameter means
// building a new rule.
type Rule interface {
	Name() string
	Dim() int
	Init(values ...float64) State
	Update(s State, in Input, rng Source) State
}

// Tunable rules expose their parameters by name.
type Tunable interface {
	Params() map[string]float64
	With(name string, value float64) (Rule, error)
}

// Stochastic is implemented by rules that consult their Source.
// A rule whose Noisy reports false is a pure function of its arguments.
type Stochastic interface {
	Noisy() bool
}

// IsDeterministic reports whether r never draws from its random source.
func IsDeterministic(r Rule) bool {
	s, ok := r.(Stochastic)
	return !ok || !s.Noisy()
}

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 clamps x into [0,1]; NaN maps to 0.
func Clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return Clamp(x, 0, 1)
}

// ClampUnit keeps display values in [-1,1].
func ClampUnit(x float64) float64 {
	return Clamp(x, -1, 1)
}
