package dynamo

import (
	"math"
	"math/rand"
)

// Source supplies uniform draws in [0,1).
//
// Noisy rules take a Source on every Update instead of reaching for a
// global generator, so tests can replay a fixed sequence of draws.
type Source interface {
	Float64() float64
}

type systemSource struct{}

func (systemSource) Float64() float64 { return rand.Float64() }

// SystemSource returns the process-wide generator.
func SystemSource() Source { return systemSource{} }

// Seeded returns a reproducible generator.
func Seeded(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// OrSystem returns src, or the system source when src is nil.
func OrSystem(src Source) Source {
	if src == nil {
		return SystemSource()
	}
	return src
}

// SequenceSource replays a fixed list of draws and then yields 0.5.
type SequenceSource struct {
	vals []float64
	pos  int
}

func Sequence(vals ...float64) *SequenceSource {
	return &SequenceSource{vals: vals}
}

func (s *SequenceSource) Float64() float64 {
	if s.pos >= len(s.vals) {
		return 0.5
	}
	v := s.vals[s.pos]
	s.pos++
	return v
}

// Drawn reports how many values have been consumed.
func (s *SequenceSource) Drawn() int { return s.pos }

// Gaussian draws a standard normal variate with the Box-Muller transform.
// Zero draws are rejected so the logarithm stays finite.
func Gaussian(src Source) float64 {
	src = OrSystem(src)
	u, v := 0.0, 0.0
	for u == 0 {
		u = src.Float64()
	}
	for v == 0 {
		v = src.Float64()
	}
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}

// Uniform draws from [-1,1).
func Uniform(src Source) float64 {
	return OrSystem(src).Float64()*2 - 1
}
