// Package core holds the small numeric helpers shared by the curve
// processing packages.
package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
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

// NearlyEqual reports whether a and b are equal within eps.
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

// LinSpace returns n evenly spaced values from start to stop inclusive.
// The last value is exactly stop.
func LinSpace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop

	return out
}

// MinMax returns the smallest and largest finite values of data.
// Both are NaN when data holds no finite value.
func MinMax(data []float64) (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}

	return min, max
}

// Sqrt returns the element-wise square root of data. Negative values map
// to zero.
func Sqrt(data []float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = math.Sqrt(math.Max(v, 0))
	}

	return out
}

// Square returns the element-wise square of data.
func Square(data []float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v * v
	}

	return out
}
