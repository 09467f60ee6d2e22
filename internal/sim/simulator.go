package sim

import "github.com/san-kum/dynmap/internal/dynamo"

// Iterate applies r exactly steps times and returns the final state.
// Each step is a separate Update call, so noisy rules draw afresh every
// step. steps <= 0 returns s unchanged.
func Iterate(r dynamo.Rule, s dynamo.State, steps int, opts Options) dynamo.State {
	rng := dynamo.OrSystem(opts.Rand)
	for i := 0; i < steps; i++ {
		s = r.Update(s, opts.input(s.T), rng)
	}
	return s
}

// Rollout is Iterate keeping every intermediate state, in order.
// The result has length steps and excludes s itself.
func Rollout(r dynamo.Rule, s dynamo.State, steps int, opts Options) []dynamo.State {
	if steps <= 0 {
		return []dynamo.State{}
	}
	rng := dynamo.OrSystem(opts.Rand)
	out := make([]dynamo.State, 0, steps)
	for i := 0; i < steps; i++ {
		s = r.Update(s, opts.input(s.T), rng)
		out = append(out, s)
	}
	return out
}

// Component extracts component i of every state.
func Component(states []dynamo.State, i int) []float64 {
	out := make([]float64, len(states))
	for k, s := range states {
		out[k] = s.X.At(i)
	}
	return out
}

// Points reads every state as a plane point.
func Points(states []dynamo.State) []dynamo.Vec2 {
	out := make([]dynamo.Vec2, len(states))
	for k, s := range states {
		out[k] = s.Point()
	}
	return out
}
