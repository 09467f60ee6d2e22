// Package analysis turns iterated maps into numbers.
//
//   - [Sampler]: parameter sweep with warm-up and sampling, the data behind
//     a bifurcation diagram
//   - [Pack]: flattens a sweep into a [PointBuffer] for the renderer
//   - [DetectPeriod]: period-doubling detection on a sampled orbit
//   - [LyapunovExponent]: largest exponent via trajectory separation
//   - [NewPhasePortrait]: plane projection or return map of a trajectory
//
// # Sweeping
//
// Every control value starts from a fresh state, so a sweep can be split
// with [Chunks] and rendered piece by piece:
//
//	sp := analysis.Sampler{Family: func(r float64) dynamo.Rule { return maps.Logistic{R: r} }}
//	for _, rs := range analysis.Chunks(analysis.Linspace(2.8, 4, 2000), 200) {
//	    acc.AppendPoints(analysis.Pack(sp.Sample(rs, 0.5, 500, 200)))
//	}
package analysis
