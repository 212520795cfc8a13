package core

import "math"

const defaultEpsilon = 1e-12

// Clamp bounds value to the inclusive interval [min, max], accepting the
// bounds in either order. Filter loading uses it to tidy transmission
// samples that stray marginally outside [0, 1].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b agree within eps, absolutely for
// small magnitudes and relatively otherwise. A non-positive eps falls back
// to 1e-12.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsStrictlyIncreasing reports whether xs is strictly increasing with no
// duplicate abscissas. An empty or single-element slice is trivially
// increasing.
func IsStrictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}

	return true
}

// RelativeDiff returns |a-b| scaled by the larger magnitude of the two.
// Returns the absolute difference when both values are zero-magnitude.
func RelativeDiff(a, b float64) float64 {
	diff := math.Abs(a - b)
	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff
	}

	return diff / largest
}
