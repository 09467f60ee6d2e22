package sim

import "github.com/san-kum/dynmap/internal/dynamo"

// InputFunc returns the external input applied at step t.
type InputFunc func(t int) dynamo.Input

// Options configure a trajectory run.
// A nil Input feeds no input; a nil Rand uses the system source.
type Options struct {
	Input InputFunc
	Rand  dynamo.Source
}

func (o Options) input(t int) dynamo.Input {
	if o.Input == nil {
		return nil
	}
	return o.Input(t)
}

// Constant feeds the same input on every step.
func Constant(in dynamo.Input) InputFunc {
	return func(int) dynamo.Input { return in }
}

// Impulses triggers a unit input on the steps marked true.
// Steps past the end of the schedule receive no input.
func Impulses(schedule []bool) InputFunc {
	return func(t int) dynamo.Input {
		if t >= 0 && t < len(schedule) && schedule[t] {
			return dynamo.Input{1}
		}
		return nil
	}
}

// Kicks feeds kick on the steps marked true, e.g. a Decay model's Kick.
func Kicks(schedule []bool, kick dynamo.Input) InputFunc {
	return func(t int) dynamo.Input {
		if t >= 0 && t < len(schedule) && schedule[t] {
			return kick
		}
		return nil
	}
}

// Schedule marks the given steps in a schedule of length n. Steps outside
// [0, n) are ignored.
func Schedule(n int, steps []int) []bool {
	out := make([]bool, max(n, 0))
	for _, t := range steps {
		if t >= 0 && t < len(out) {
			out[t] = true
		}
	}
	return out
}

// Kicker is implemented by rules that define their own triggered input.
type Kicker interface {
	Kick() dynamo.Input
}

// Triggered feeds r's kick on the marked steps when r is a Kicker, and a
// unit impulse otherwise.
func Triggered(r dynamo.Rule, schedule []bool) InputFunc {
	if k, ok := r.(Kicker); ok {
		return Kicks(schedule, k.Kick())
	}
	return Impulses(schedule)
}
