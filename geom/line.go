package geom

import "math"

// Line is the straight line y = A*x + B.
type Line struct {
	A float64 // slope
	B float64 // intercept
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.A*x + l.B
}

// Eval evaluates the line at every x and returns a new slice.
func (l Line) Eval(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = l.A*v + l.B
	}
	return out
}

// PointAt returns the point of the line with abscissa x.
func (l Line) PointAt(x float64) Point {
	return Point{X: x, Y: l.At(x)}
}

// Intersect returns the point where l and o cross. ok is false for
// parallel lines.
func (l Line) Intersect(o Line) (Point, bool) {
	den := l.A - o.A
	if den == 0 {
		return Point{}, false
	}
	x := (o.B - l.B) / den
	p := Point{X: x, Y: l.At(x)}
	if !p.IsFinite() {
		return Point{}, false
	}
	return p, true
}

// LineThrough returns the line through p0 and p1. ok is false when the
// points share an abscissa.
func LineThrough(p0, p1 Point) (Line, bool) {
	dx := p1.X - p0.X
	if dx == 0 || math.IsNaN(dx) {
		return Line{}, false
	}
	a := (p1.Y - p0.Y) / dx
	return Line{A: a, B: p0.Y - a*p0.X}, true
}

// CrossingPoint computes where the infinite lines through segments
// (p0, p1) and (q0, q1) meet, using the determinant form. ok is false
// when the segments are parallel.
func CrossingPoint(p0, p1, q0, q1 Point) (Point, bool) {
	ab := p1.Sub(p0)
	cd := q1.Sub(q0)
	den := ab.Cross(cd)
	if den == 0 {
		return Point{}, false
	}
	h := ab.Cross(p0.Sub(q0)) / den
	return q0.Add(cd.Mul(h)), true
}

// FitLine returns the ordinary least-squares line through (x[i], y[i]).
// ok is false for fewer than two samples, mismatched lengths or a
// degenerate abscissa spread.
func FitLine(x, y []float64) (Line, bool) {
	n := len(x)
	if n < 2 || n != len(y) {
		return Line{}, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}

	nf := float64(n)
	denom := nf*sumXX - sumX*sumX
	if denom == 0 || math.IsNaN(denom) {
		return Line{}, false
	}

	a := (nf*sumXY - sumX*sumY) / denom
	b := (sumY - a*sumX) / nf
	if math.IsNaN(a) || math.IsNaN(b) {
		return Line{}, false
	}
	return Line{A: a, B: b}, true
}
