package analysis

import "math"

// DetectPeriod finds the smallest period in 1, 2, 4, ... up to maxPeriod
// after which the values repeat within tol. It returns -1 when no such
// period exists or the series is too short to show two full cycles.
func DetectPeriod(values []float64, tol float64, maxPeriod int) int {
	for period := 1; period <= maxPeriod; period *= 2 {
		if 2*period > len(values) {
			break
		}
		periodic := true
		for i := 0; i+period < len(values); i++ {
			if math.IsNaN(values[i]) || math.Abs(values[i]-values[i+period]) > tol {
				periodic = false
				break
			}
		}
		if periodic {
			return period
		}
	}
	return -1
}

// Amplitude returns max - min of values, or 0 when empty.
func Amplitude(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}
