package geom

// QuadBez is a quadratic Bezier segment.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// Eval evaluates the segment at parameter t in [0, 1].
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	return q.P0.Mul(mt * mt).
		Add(q.P1.Mul(2 * mt * t)).
		Add(q.P2.Mul(t * t))
}

// YAt returns the ordinate of the segment at abscissa x. The segment must
// be monotone in x.
func (q QuadBez) YAt(x float64) float64 {
	return q.Eval(solveMonotone(x, q.P0.X, q.P2.X, func(t float64) float64 {
		return q.Eval(t).X
	})).Y
}

// CubicBez is a cubic Bezier segment.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

// Eval evaluates the segment at parameter t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	return c.P0.Mul(mt * mt * mt).
		Add(c.P1.Mul(3 * mt * mt * t)).
		Add(c.P2.Mul(3 * mt * t * t)).
		Add(c.P3.Mul(t * t * t))
}

// Deriv returns the derivative vector of the segment at t.
func (c CubicBez) Deriv(t float64) Point {
	mt := 1 - t
	return c.P1.Sub(c.P0).Mul(3 * mt * mt).
		Add(c.P2.Sub(c.P1).Mul(6 * mt * t)).
		Add(c.P3.Sub(c.P2).Mul(3 * t * t))
}

// YAt returns the ordinate of the segment at abscissa x. The control
// points must be ordered in x so that the segment is monotone in x.
func (c CubicBez) YAt(x float64) float64 {
	return c.Eval(solveMonotone(x, c.P0.X, c.P3.X, func(t float64) float64 {
		return c.Eval(t).X
	})).Y
}

// solveMonotone finds t in [0, 1] with fx(t) = x by bisection, fx being
// monotone between x0 = fx(0) and x1 = fx(1).
func solveMonotone(x, x0, x1 float64, fx func(float64) float64) float64 {
	if x0 == x1 {
		return 0
	}
	increasing := x1 > x0
	if (increasing && x <= x0) || (!increasing && x >= x0) {
		return 0
	}
	if (increasing && x >= x1) || (!increasing && x <= x1) {
		return 1
	}

	lo, hi := 0.0, 1.0
	for range 60 {
		mid := 0.5 * (lo + hi)
		if (fx(mid) < x) == increasing {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}
