package drive

import "math"

// WrapOnce folds an angle into (-π, π] with at most one ±2π correction.
// Inputs further than 2π outside the interval are not fully normalized.
func WrapOnce(a float64) float64 {
	if a > math.Pi {
		return a - 2*math.Pi
	}
	if a <= -math.Pi {
		return a + 2*math.Pi
	}
	return a
}

// Normalize folds any angle into [-π, π] using atan2(sin a, cos a).
func Normalize(a float64) float64 {
	return math.Atan2(math.Sin(a), math.Cos(a))
}
