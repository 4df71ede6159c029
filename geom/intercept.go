package geom

// Intercept is a crossing of two sampled curves.
type Intercept struct {
	Point
	// Index is the left sample of the bracketing interval.
	Index int
}

// InterpolatedIntercepts returns every crossing of the sampled curves y1
// and y2 defined on the common abscissa x, in order of increasing index.
//
// A crossing is detected where sign(y1-y2) changes between neighbouring
// samples; its location is the intersection of the two local segments
// bracketing the change. Samples where the curves touch exactly are
// reported as they are.
func InterpolatedIntercepts(x, y1, y2 []float64) []Intercept {
	n := len(x)
	if n == 0 || len(y1) != n || len(y2) != n {
		return nil
	}

	var out []Intercept
	for i := 0; i < n; i++ {
		d0 := y1[i] - y2[i]
		if d0 == 0 {
			out = append(out, Intercept{Point: Point{X: x[i], Y: y1[i]}, Index: i})
			continue
		}
		if i == n-1 {
			break
		}
		d1 := y1[i+1] - y2[i+1]
		if d1 == 0 || (d0 < 0) == (d1 < 0) {
			continue
		}
		p, ok := CrossingPoint(
			Point{X: x[i], Y: y1[i]}, Point{X: x[i+1], Y: y1[i+1]},
			Point{X: x[i], Y: y2[i]}, Point{X: x[i+1], Y: y2[i+1]},
		)
		if !ok || !p.IsFinite() {
			continue
		}
		out = append(out, Intercept{Point: p, Index: i})
	}
	return out
}

// InterpolatedIntercept returns the first crossing of y1 and y2. When the
// curves never cross it returns the zero point (0, 0) and false.
func InterpolatedIntercept(x, y1, y2 []float64) (Point, bool) {
	all := InterpolatedIntercepts(x, y1, y2)
	if len(all) == 0 {
		return Point{}, false
	}
	return all[0].Point, true
}

// Constant returns a slice of length n filled with v, handy as the second
// curve when intersecting with a horizontal line.
func Constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
