package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/maps"
)

// SampleSet holds the post-transient observations for one control value.
type SampleSet struct {
	Control float64
	Values  []float64
}

// Sampler sweeps a one-parameter family of rules.
type Sampler struct {
	// Family builds the rule for a control value.
	Family func(control float64) dynamo.Rule
	// Observe reads the recorded scalar from a state. nil reads component 0.
	Observe func(dynamo.State) float64
	// Rand is passed to every Update. nil uses the system source.
	Rand dynamo.Source
}

// Sample runs every control value in order. Each one starts from a fresh
// Init(initial), discards warmup updates and records samples observations.
// Results are independent of the order and count of the other controls.
func (sp *Sampler) Sample(controls []float64, initial float64, warmup, samples int) []SampleSet {
	observe := sp.Observe
	if observe == nil {
		observe = Component(0)
	}
	rng := dynamo.OrSystem(sp.Rand)
	if samples < 0 {
		samples = 0
	}

	out := make([]SampleSet, 0, len(controls))
	for _, c := range controls {
		r := sp.Family(c)
		s := r.Init(initial)
		for i := 0; i < warmup; i++ {
			s = r.Update(s, nil, rng)
		}
		values := make([]float64, 0, samples)
		for i := 0; i < samples; i++ {
			s = r.Update(s, nil, rng)
			values = append(values, observe(s))
		}
		out = append(out, SampleSet{Control: c, Values: values})
	}

	dynamo.Logger().Debug("sweep sampled",
		"controls", len(controls), "warmup", warmup, "samples", samples)
	return out
}

// SampleBifurcation samples the logistic map x' = r·x·(1-x) at each r.
func SampleBifurcation(rs []float64, initial float64, warmup, samples int) []SampleSet {
	sp := Sampler{Family: func(r float64) dynamo.Rule { return maps.Logistic{R: r} }}
	return sp.Sample(rs, initial, warmup, samples)
}

// Component observes state component i.
func Component(i int) func(dynamo.State) float64 {
	return func(s dynamo.State) float64 { return s.X.At(i) }
}

// Family sweeps the named parameter of a tunable rule.
func Family(r dynamo.Rule, param string) (func(float64) dynamo.Rule, error) {
	t, ok := r.(dynamo.Tunable)
	if !ok {
		return nil, fmt.Errorf("%s has no parameters: %w", r.Name(), dynamo.ErrUnknownParam)
	}
	if _, ok := t.Params()[param]; !ok {
		return nil, &dynamo.ParamError{Rule: r.Name(), Name: param}
	}
	return func(c float64) dynamo.Rule {
		next, err := t.With(param, c)
		if err != nil {
			return r
		}
		return next
	}, nil
}

// Linspace returns n evenly spaced values from min to max inclusive.
// An empty or inverted range yields nil.
func Linspace(min, max float64, n int) []float64 {
	if n < 1 || !(max > min) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if n == 1 {
		return []float64{min}
	}
	out := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	out[n-1] = max
	return out
}

// Chunks splits controls into consecutive slices of at most size values.
// The slices share the backing array of controls.
func Chunks(controls []float64, size int) [][]float64 {
	if size <= 0 || len(controls) <= size {
		if len(controls) == 0 {
			return nil
		}
		return [][]float64{controls}
	}
	out := make([][]float64, 0, (len(controls)+size-1)/size)
	for start := 0; start < len(controls); start += size {
		end := min(start+size, len(controls))
		out = append(out, controls[start:end])
	}
	return out
}

// PointBuffer packs (control, value) pairs as [c0, v0, c1, v1, ...].
type PointBuffer []float32

// Len is the number of complete pairs.
func (b PointBuffer) Len() int { return len(b) / 2 }

func (b PointBuffer) At(i int) (c, v float64) {
	return float64(b[2*i]), float64(b[2*i+1])
}

// Pack flattens sample sets into a point buffer, in order.
func Pack(sets []SampleSet) PointBuffer {
	n := 0
	for _, s := range sets {
		n += len(s.Values)
	}
	buf := make(PointBuffer, 0, 2*n)
	for _, s := range sets {
		for _, v := range s.Values {
			buf = append(buf, float32(s.Control), float32(v))
		}
	}
	return buf
}

// Rescale maps every value from [lo, hi] onto the unit interval in place,
// so models with wider orbits share the accumulator's value axis.
// An empty range leaves b unchanged.
func (b PointBuffer) Rescale(lo, hi float64) {
	if !(hi > lo) || (lo == 0 && hi == 1) {
		return
	}
	span := hi - lo
	for i := 1; i < len(b); i += 2 {
		b[i] = float32((float64(b[i]) - lo) / span)
	}
}

// Distinct returns the values that differ by more than tol, in
// first-seen order. Used to report attractor branches.
func Distinct(values []float64, tol float64) []float64 {
	out := make([]float64, 0, 8)
	for _, v := range values {
		seen := false
		for _, d := range out {
			if math.Abs(d-v) <= tol {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, v)
		}
	}
	return out
}
