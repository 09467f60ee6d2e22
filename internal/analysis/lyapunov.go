package analysis

import (
	"math"

	"github.com/san-kum/dynmap/internal/dynamo"
)

// lyapunovSeed seeds the noise of stochastic rules. Both trajectories get
// their own generator with the same seed so they see the same draws.
const lyapunovSeed = 1

// LyapunovExponent estimates the largest Lyapunov exponent of r using the
// trajectory separation method. A positive value indicates chaos.
//
// Two trajectories start eps apart along component 0. After warmup steps,
// each update measures their separation d, accumulates ln(d/eps) and pulls
// the perturbed trajectory back to distance eps along the same direction.
func LyapunovExponent(r dynamo.Rule, s0 dynamo.State, warmup, steps int, eps float64) float64 {
	return lyapunovAlong(r, s0, 0, warmup, steps, eps)
}

// LyapunovSpectrum repeats the estimate with the initial perturbation
// along each state component in turn.
func LyapunovSpectrum(r dynamo.Rule, s0 dynamo.State, warmup, steps int, eps float64) []float64 {
	spectrum := make([]float64, len(s0.X))
	for i := range spectrum {
		spectrum[i] = lyapunovAlong(r, s0, i, warmup, steps, eps)
	}
	return spectrum
}

func lyapunovAlong(r dynamo.Rule, s0 dynamo.State, axis, warmup, steps int, eps float64) float64 {
	if len(s0.X) == 0 || axis >= len(s0.X) || steps <= 0 || eps <= 0 {
		return 0
	}

	x := s0
	warm := dynamo.Seeded(lyapunovSeed)
	for i := 0; i < warmup; i++ {
		x = r.Update(x, nil, warm)
	}
	rngA := dynamo.Seeded(lyapunovSeed + 1)
	rngB := dynamo.Seeded(lyapunovSeed + 1)

	xp := x.Clone()
	xp.X[axis] += eps

	sumLog := 0.0
	count := 0
	for i := 0; i < steps; i++ {
		x = r.Update(x, nil, rngA)
		xp = r.Update(xp, nil, rngB)

		sep := 0.0
		for k := range x.X {
			d := xp.X.At(k) - x.X[k]
			sep += d * d
		}
		sep = math.Sqrt(sep)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			xp = x.Clone()
			xp.X[axis] += eps
			continue
		}

		sumLog += math.Log(sep / eps)
		count++

		scale := eps / sep
		next := make(dynamo.Vec, len(x.X))
		for k := range next {
			next[k] = x.X[k] + (xp.X.At(k)-x.X[k])*scale
		}
		xp = dynamo.State{T: xp.T, X: next}
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}
