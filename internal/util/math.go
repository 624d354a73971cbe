package util

import "math"

// Coerce returns the given value, limited by the given min and max values.
func Coerce(value float64, min float64, max float64) float64 {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Smooth applies an exponential smoothing step to a measurement stream.
// The very first sample (no previous value, or a previous value that is not
// usable) is adopted directly so the filter does not ramp up from zero.
func Smooth(previous float64, newValue float64, alpha float64) float64 {
	if previous == 0.0 || math.IsNaN(previous) || math.IsInf(previous, 0) {
		return newValue
	}
	return previous + alpha*(newValue-previous)
}

// Ratio calculates the ratio that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}
