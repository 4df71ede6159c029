package interp

// Boundary selects the end conditions of a [CubicSpline].
type Boundary int

const (
	// Natural sets the second derivative to zero at both ends.
	Natural Boundary = iota
	// Clamped fixes the first derivative at both ends.
	Clamped
)

// SplineOption configures a cubic spline.
type SplineOption func(*splineConfig)

type splineConfig struct {
	boundary    Boundary
	left, right float64
}

// WithClamped fixes the end slopes to left and right.
func WithClamped(left, right float64) SplineOption {
	return func(c *splineConfig) {
		c.boundary = Clamped
		c.left, c.right = left, right
	}
}

// CubicSpline is a C2 piecewise cubic through a set of samples.
type CubicSpline struct {
	x []float64
	y []float64
	m []float64 // second derivatives at the knots
}

// NewCubicSpline builds a spline through (x[i], y[i]). It is natural unless
// [WithClamped] is given.
func NewCubicSpline(x, y []float64, opts ...SplineOption) (*CubicSpline, error) {
	if err := validate(x, y, 2); err != nil {
		return nil, err
	}

	cfg := splineConfig{boundary: Natural}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(x)
	h := make([]float64, n-1)
	delta := make([]float64, n-1)
	for k := range h {
		h[k] = x[k+1] - x[k]
		delta[k] = (y[k+1] - y[k]) / h[k]
	}

	// Tridiagonal system sub[i]*m[i-1] + diag[i]*m[i] + sup[i]*m[i+1] = rhs[i].
	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	rhs := make([]float64, n)

	switch cfg.boundary {
	case Clamped:
		diag[0], sup[0] = 2*h[0], h[0]
		rhs[0] = 6 * (delta[0] - cfg.left)
		sub[n-1], diag[n-1] = h[n-2], 2*h[n-2]
		rhs[n-1] = 6 * (cfg.right - delta[n-2])
	default:
		diag[0], diag[n-1] = 1, 1
	}
	for i := 1; i < n-1; i++ {
		sub[i] = h[i-1]
		diag[i] = 2 * (h[i-1] + h[i])
		sup[i] = h[i]
		rhs[i] = 6 * (delta[i] - delta[i-1])
	}

	m, err := solveTridiagonal(sub, diag, sup, rhs)
	if err != nil {
		return nil, err
	}

	return &CubicSpline{
		x: append([]float64(nil), x...),
		y: append([]float64(nil), y...),
		m: m,
	}, nil
}

// At evaluates the spline at xi, extending the end cubics outside the
// knot range.
func (s *CubicSpline) At(xi float64) float64 {
	k := interval(s.x, xi)
	h := s.x[k+1] - s.x[k]
	a := s.x[k+1] - xi
	b := xi - s.x[k]
	return s.m[k]*a*a*a/(6*h) + s.m[k+1]*b*b*b/(6*h) +
		(s.y[k]/h-s.m[k]*h/6)*a + (s.y[k+1]/h-s.m[k+1]*h/6)*b
}

// Eval evaluates the spline at every xi.
func (s *CubicSpline) Eval(xi []float64) []float64 {
	out := make([]float64, len(xi))
	for i, v := range xi {
		out[i] = s.At(v)
	}
	return out
}

// solveTridiagonal runs the Thomas algorithm.
func solveTridiagonal(sub, diag, sup, rhs []float64) ([]float64, error) {
	n := len(diag)
	c := make([]float64, n)
	d := make([]float64, n)

	if diag[0] == 0 {
		return nil, ErrSingular
	}
	c[0] = sup[0] / diag[0]
	d[0] = rhs[0] / diag[0]
	for i := 1; i < n; i++ {
		den := diag[i] - sub[i]*c[i-1]
		if den == 0 {
			return nil, ErrSingular
		}
		c[i] = sup[i] / den
		d[i] = (rhs[i] - sub[i]*d[i-1]) / den
	}

	out := make([]float64, n)
	out[n-1] = d[n-1]
	for i := n - 2; i >= 0; i-- {
		out[i] = d[i] - c[i]*out[i+1]
	}
	return out, nil
}
