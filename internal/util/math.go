package util

import (
	"golang.org/x/exp/constraints"
)

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// Lerp maps input from the range [inMin..inMax] linearly onto [outMin..outMax].
// The output range may be inverted (outMin > outMax). The result is not clamped.
func Lerp(input, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + Ratio(input, inMin, inMax)*(outMax-outMin)
}

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Integer | constraints.Float](value, min, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}
