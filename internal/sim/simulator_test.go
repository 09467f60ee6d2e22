package sim

import (
	"math"
	"testing"

	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/maps"
)

type countingRule struct{}

func (countingRule) Name() string { return "count" }
func (countingRule) Dim() int     { return 1 }
func (countingRule) Init(v ...float64) dynamo.State {
	return dynamo.NewState(1, v...)
}
func (countingRule) Update(s dynamo.State, in dynamo.Input, rng dynamo.Source) dynamo.State {
	return s.Next(s.X.At(0) + in.At(0) + rng.Float64())
}

func TestIterateMatchesSequentialUpdates(t *testing.T) {
	r := maps.Logistic{R: 3.9}
	s := r.Init(0.2)

	manual := s
	for i := 0; i < 25; i++ {
		manual = r.Update(manual, nil, nil)
	}

	got := Iterate(r, s, 25, Options{})
	if got.X[0] != manual.X[0] {
		t.Errorf("expected %f, got %f", manual.X[0], got.X[0])
	}
	if got.T != 25 {
		t.Errorf("expected t=25, got %d", got.T)
	}
}

func TestIterateZeroSteps(t *testing.T) {
	r := maps.Logistic{R: 3}
	s := r.Init(0.4)
	if got := Iterate(r, s, 0, Options{}); got.X[0] != 0.4 || got.T != 0 {
		t.Errorf("expected unchanged state, got %v", got)
	}
	if got := Rollout(r, s, -1, Options{}); len(got) != 0 {
		t.Errorf("expected empty rollout, got %d states", len(got))
	}
}

func TestRolloutLengthAndLastState(t *testing.T) {
	r := maps.NewOscillator()
	s := r.Init(1, 0)

	states := Rollout(r, s, 10, Options{})
	if len(states) != 10 {
		t.Fatalf("expected 10 states, got %d", len(states))
	}
	final := Iterate(r, s, 10, Options{})
	last := states[len(states)-1]
	for i := range final.X {
		if last.X[i] != final.X[i] {
			t.Errorf("component %d: expected %f, got %f", i, final.X[i], last.X[i])
		}
	}
	for i, st := range states {
		if st.T != i+1 {
			t.Errorf("state %d: expected t=%d, got %d", i, i+1, st.T)
		}
	}
}

func TestRolloutDrawsEveryStep(t *testing.T) {
	src := dynamo.Sequence(0.1, 0.2, 0.3)
	states := Rollout(countingRule{}, countingRule{}.Init(0), 3, Options{Rand: src})

	expected := []float64{0.1, 0.3, 0.6}
	for i, e := range expected {
		if math.Abs(states[i].X[0]-e) > 1e-12 {
			t.Errorf("step %d: expected %f, got %f", i, e, states[i].X[0])
		}
	}
	if src.Drawn() != 3 {
		t.Errorf("expected 3 draws, got %d", src.Drawn())
	}
}

func TestImpulseSchedule(t *testing.T) {
	r := maps.Impulse{Gain: 0.8, ImpulseGain: 0.5, Magnitude: 1}
	states := Rollout(r, r.Init(0), 3, Options{Input: Impulses([]bool{true, false, false})})

	expected := []float64{0.5, 0.4, 0.32}
	for i, e := range expected {
		if math.Abs(states[i].X[0]-e) > 1e-12 {
			t.Errorf("step %d: expected %f, got %f", i, e, states[i].X[0])
		}
	}
}

func TestConstantInput(t *testing.T) {
	r := maps.Saturation{S: 0.5}
	s := Iterate(r, r.Init(0), 40, Options{Input: Constant(dynamo.Input{0.8})})
	if math.Abs(s.X[0]-0.8) > 1e-6 {
		t.Errorf("expected convergence to 0.8, got %f", s.X[0])
	}
}

func TestComponentAndPoints(t *testing.T) {
	states := []dynamo.State{
		{T: 1, X: dynamo.Vec{1, 2}},
		{T: 2, X: dynamo.Vec{3, 4}},
	}
	xs := Component(states, 1)
	if xs[0] != 2 || xs[1] != 4 {
		t.Errorf("unexpected component %v", xs)
	}
	pts := Points(states)
	if pts[1] != (dynamo.Vec2{X: 3, Y: 4}) {
		t.Errorf("unexpected point %v", pts[1])
	}
}

func TestSchedule(t *testing.T) {
	got := Schedule(5, []int{1, 3, 7, -1})
	expected := []bool{false, true, false, true, false}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("step %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
	if len(Schedule(-2, []int{0})) != 0 {
		t.Error("expected empty schedule for negative length")
	}
}

func TestTriggeredUsesKick(t *testing.T) {
	d := maps.Decay{D: 0.5, Strength: 0.8}
	states := Rollout(d, d.Init(0), 3, Options{Input: Triggered(d, Schedule(3, []int{1}))})
	expected := []float64{0, 0.8, 0.4}
	for i, e := range expected {
		if math.Abs(states[i].X[0]-e) > 1e-12 {
			t.Errorf("step %d: expected %f, got %f", i, e, states[i].X[0])
		}
	}

	imp := maps.Impulse{Gain: 0, ImpulseGain: 1, Magnitude: 2}
	states = Rollout(imp, imp.Init(0), 2, Options{Input: Triggered(imp, Schedule(2, []int{0}))})
	if states[0].X[0] != 2 || states[1].X[0] != 0 {
		t.Errorf("expected unit impulse at step 0, got %v and %v", states[0].X, states[1].X)
	}
}
