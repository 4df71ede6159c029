package interp

// Linear returns the piecewise-linear interpolation of (x, y) at xi.
// Values outside the range are clamped to the end samples. x must be
// increasing and non-empty.
func Linear(x, y []float64, xi float64) float64 {
	n := len(x)
	if n == 1 || xi <= x[0] {
		return y[0]
	}
	if xi >= x[n-1] {
		return y[n-1]
	}

	k := interval(x, xi)
	t := (xi - x[k]) / (x[k+1] - x[k])
	return y[k] + t*(y[k+1]-y[k])
}

// MakeIncreasing returns copies of x and y keeping only samples whose
// abscissa is strictly greater than the last kept one.
func MakeIncreasing(x, y []float64) ([]float64, []float64) {
	n := min(len(x), len(y))
	outX := make([]float64, 0, n)
	outY := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if len(outX) > 0 && !(x[i] > outX[len(outX)-1]) {
			continue
		}
		outX = append(outX, x[i])
		outY = append(outY, y[i])
	}
	return outX, outY
}
