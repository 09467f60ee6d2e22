// Package dynamo provides the core primitives for discrete-time maps.
//
// The package defines the contract every model implements and the small
// value types passed between the sampler and the renderers:
//
//   - [State]: immutable state vector plus step counter
//   - [Rule]: state-transition interface (next = f(state, params, input))
//   - [Tunable]: by-name parameter access returning new rule values
//   - [Source]: injectable random source for noisy rules
//
// # Example
//
//	r := maps.Logistic{R: 3.5}
//	s := r.Init(0.2)
//	for i := 0; i < 100; i++ {
//	    s = r.Update(s, nil, nil)
//	}
//
// # Randomness
//
// Rules that add noise draw from the [Source] passed to Update. A nil
// source means [SystemSource]; tests pass [Sequence] to fix the draws.
package dynamo
