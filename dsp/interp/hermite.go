package interp

import "sort"

// Hermite evaluates the cubic Hermite polynomial on one interval of width
// h joining (0, y0) with slope m0 to (h, y1) with slope m1, at local
// parameter t in [0, 1].
func Hermite(t, h, y0, y1, m0, m1 float64) float64 {
	t2 := t * t
	t3 := t2 * t
	// Written around y0 so a flat interval with zero slopes stays exact.
	return y0 + (y1-y0)*(3*t2-2*t3) + h*(m0*(t3-2*t2+t)+m1*(t3-t2))
}

// PCHIP is a monotone piecewise cubic Hermite interpolant. Between two
// samples it never overshoots the data, so monotone data stays monotone.
type PCHIP struct {
	x []float64
	y []float64
	d []float64
}

// NewPCHIP builds the interpolant through (x[i], y[i]). x must be
// strictly increasing and hold at least two samples.
func NewPCHIP(x, y []float64) (*PCHIP, error) {
	if err := validate(x, y, 2); err != nil {
		return nil, err
	}

	n := len(x)
	p := &PCHIP{
		x: append([]float64(nil), x...),
		y: append([]float64(nil), y...),
		d: make([]float64, n),
	}

	h := make([]float64, n-1)
	delta := make([]float64, n-1)
	for k := 0; k < n-1; k++ {
		h[k] = x[k+1] - x[k]
		delta[k] = (y[k+1] - y[k]) / h[k]
	}

	if n == 2 {
		p.d[0], p.d[1] = delta[0], delta[0]
		return p, nil
	}

	for k := 1; k < n-1; k++ {
		if delta[k-1]*delta[k] <= 0 {
			continue
		}
		w1 := 2*h[k] + h[k-1]
		w2 := h[k] + 2*h[k-1]
		p.d[k] = (w1 + w2) / (w1/delta[k-1] + w2/delta[k])
	}

	p.d[0] = pchipEnd(h[0], h[1], delta[0], delta[1])
	p.d[n-1] = pchipEnd(h[n-2], h[n-3], delta[n-2], delta[n-3])

	return p, nil
}

// pchipEnd is the shape-preserving three-point end derivative.
func pchipEnd(h0, h1, d0, d1 float64) float64 {
	d := ((2*h0+h1)*d0 - h0*d1) / (h0 + h1)
	switch {
	case sign(d) != sign(d0):
		return 0
	case sign(d0) != sign(d1) && abs(d) > abs(3*d0):
		return 3 * d0
	}
	return d
}

// At evaluates the interpolant at xi. Outside the sample range the end
// polynomials are extended.
func (p *PCHIP) At(xi float64) float64 {
	k := interval(p.x, xi)
	h := p.x[k+1] - p.x[k]
	t := (xi - p.x[k]) / h
	return Hermite(t, h, p.y[k], p.y[k+1], p.d[k], p.d[k+1])
}

// Eval evaluates the interpolant at every xi.
func (p *PCHIP) Eval(xi []float64) []float64 {
	out := make([]float64, len(xi))
	for i, v := range xi {
		out[i] = p.At(v)
	}
	return out
}

// interval returns k such that x[k] <= xi < x[k+1], clamped to the first
// and last interval.
func interval(x []float64, xi float64) int {
	k := sort.SearchFloat64s(x, xi) - 1
	if k < 0 {
		return 0
	}
	if k > len(x)-2 {
		return len(x) - 2
	}
	return k
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
