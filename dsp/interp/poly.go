package interp

import (
	"fmt"
	"math"
)

// Poly is a polynomial in the normalized variable u = (x - center) / scale.
// Normalizing keeps the least-squares system well conditioned for the
// degrees used on instrument curves.
type Poly struct {
	Coeffs []float64 // ascending powers of u
	Center float64
	Scale  float64
}

// At evaluates the polynomial at x.
func (p Poly) At(x float64) float64 {
	u := (x - p.Center) / p.Scale
	var acc float64
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		acc = acc*u + p.Coeffs[i]
	}
	return acc
}

// Eval evaluates the polynomial at every x.
func (p Poly) Eval(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = p.At(v)
	}
	return out
}

// PolyFit returns the least-squares polynomial of the given degree through
// (x[i], y[i]), solved by Householder QR on the Vandermonde matrix.
func PolyFit(x, y []float64, degree int) (Poly, error) {
	if degree < 0 {
		return Poly{}, ErrInvalidDegree
	}
	if len(x) != len(y) {
		return Poly{}, ErrLengthMismatch
	}
	cols := degree + 1
	rows := len(x)
	if rows < cols {
		return Poly{}, fmt.Errorf("%w: degree %d needs %d, got %d", ErrTooFewPoints, degree, cols, rows)
	}

	lo, hi := x[0], x[0]
	for _, v := range x {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	center := 0.5 * (lo + hi)
	scale := 0.5 * (hi - lo)
	if scale == 0 {
		scale = 1
	}

	a := make([][]float64, rows)
	b := append([]float64(nil), y...)
	for i, v := range x {
		u := (v - center) / scale
		row := make([]float64, cols)
		p := 1.0
		for j := range row {
			row[j] = p
			p *= u
		}
		a[i] = row
	}

	for k := 0; k < cols; k++ {
		var norm float64
		for i := k; i < rows; i++ {
			norm += a[i][k] * a[i][k]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return Poly{}, ErrSingular
		}
		if a[k][k] > 0 {
			norm = -norm
		}

		// v = a[k:,k] - norm*e_k, stored in place.
		a[k][k] -= norm
		var vnorm2 float64
		for i := k; i < rows; i++ {
			vnorm2 += a[i][k] * a[i][k]
		}

		for j := k + 1; j < cols; j++ {
			var dot float64
			for i := k; i < rows; i++ {
				dot += a[i][k] * a[i][j]
			}
			f := 2 * dot / vnorm2
			for i := k; i < rows; i++ {
				a[i][j] -= f * a[i][k]
			}
		}

		var dot float64
		for i := k; i < rows; i++ {
			dot += a[i][k] * b[i]
		}
		f := 2 * dot / vnorm2
		for i := k; i < rows; i++ {
			b[i] -= f * a[i][k]
		}

		// Diagonal of R.
		a[k][k] = norm
	}

	coeffs := make([]float64, cols)
	for k := cols - 1; k >= 0; k-- {
		acc := b[k]
		for j := k + 1; j < cols; j++ {
			acc -= a[k][j] * coeffs[j]
		}
		coeffs[k] = acc / a[k][k]
	}

	return Poly{Coeffs: coeffs, Center: center, Scale: scale}, nil
}
