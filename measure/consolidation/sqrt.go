package consolidation

import (
	"math"

	"github.com/cwbudde/algo-oedometer/geom"
)

const (
	// TimeFactor90 is the Terzaghi time factor at 90% consolidation.
	TimeFactor90 = 0.848
	// Line90Ratio is how much flatter the 0.9-line is than the fitted
	// initial straight portion.
	Line90Ratio = 1.15
)

// detectSqrt finds the straight initial portion of the strain vs sqrt(t)
// curve. Each preset is accepted only if its line yields a t90 point;
// otherwise the line through the first and last samples is used.
func detectSqrt(r *Resampled) SqrtLines {
	x, y := r.TimeSqrt, r.Strain

	strategies := make([]strategy[SqrtLines], 0, len(sqrtPresets))
	for _, p := range sqrtPresets {
		strategies = append(strategies, func() (SqrtLines, bool) {
			la, ok := p.find(x, y)
			if !ok {
				return SqrtLines{}, false
			}
			lines := SqrtLines{
				Start: ptr(la.PointAt(0)),
				End:   ptr(la.PointAt(x[la.End])),
			}
			lines.Cv = sqrtCvPoint(r, lines)
			return lines, lines.Cv != nil
		})
	}

	if lines, ok := firstMatch(strategies...); ok {
		return lines
	}

	n := len(x)
	lines := SqrtLines{End: ptr(geom.Pt(x[n-1], y[n-1]))}
	if l, ok := geom.LineThrough(geom.Pt(x[0], y[0]), *lines.End); ok {
		lines.Start = ptr(l.PointAt(0))
	} else {
		lines.Start = ptr(geom.Pt(0, y[0]))
	}
	lines.Cv = sqrtCvPoint(r, lines)
	return lines
}

// sqrtCvPoint intersects the 0.9-line with the curve. The 0.9-line starts
// at lines.Start with the fitted slope divided by [Line90Ratio]. Only a
// crossing where the curve leaves the steep side of the line counts, so a
// convex initial bend does not produce an early false hit.
func sqrtCvPoint(r *Resampled, lines SqrtLines) *geom.Point {
	if lines.Start == nil || lines.End == nil {
		return nil
	}
	fitted, ok := geom.LineThrough(*lines.Start, *lines.End)
	if !ok || fitted.A == 0 {
		return nil
	}

	a := fitted.A / Line90Ratio
	line90 := geom.Line{A: a, B: lines.Start.Y - a*lines.Start.X}
	ref := line90.Eval(r.TimeSqrt)
	steep := math.Signbit(fitted.A)

	for _, c := range geom.InterpolatedIntercepts(r.TimeSqrt, r.Strain, ref) {
		d, ok := diffBefore(r.Strain, ref, c)
		if ok && math.Signbit(d) == steep {
			return ptr(c.Point)
		}
	}
	return nil
}

// diffBefore returns curve minus line just before crossing c, looking back
// past samples where the two touch.
func diffBefore(curve, line []float64, c geom.Intercept) (float64, bool) {
	i := c.Index
	if d := curve[i] - line[i]; d != 0 {
		return d, true
	}
	for j := i - 1; j >= 0; j-- {
		if d := curve[j] - line[j]; d != 0 {
			return d, true
		}
	}
	return 0, false
}

// deriveSqrt fills lines.Cv and the square-root half of res.
func deriveSqrt(r *Resampled, lines *SqrtLines, sample Sample, res *Result) {
	res.clearSqrt()
	lines.Cv = sqrtCvPoint(r, *lines)
	if lines.Cv == nil {
		return
	}

	t90 := lines.Cv.X * lines.Cv.X
	if !(t90 > 0) {
		return
	}
	h := sample.heightCm()
	res.T90Sqrt = Some(t90)
	res.CvSqrt = Some(TimeFactor90 * h * h / (4 * t90))

	s0 := r.Strain[0]
	y100 := (lines.Cv.Y-s0)/0.9 + s0
	p100, ok := horizontalCrossing(r.TimeSqrt, r.Strain, y100)
	if !ok {
		return
	}
	res.T100Sqrt = Some(p100.X * p100.X)
	res.Strain100Sqrt = Some(p100.Y)

	y50 := s0 + 0.5*(p100.Y-s0)
	p50, ok := horizontalCrossing(r.TimeSqrt, r.Strain, y50)
	if !ok {
		return
	}
	t50 := p50.X * p50.X
	res.T50Sqrt = Some(t50)
	res.Strain50Sqrt = Some(p50.Y)
	if t50 > 0 {
		// Rate reaching 4% axial strain in ten times t50.
		res.Velocity = Some(0.04 * sample.Height / (10 * t50))
	}
}

// horizontalCrossing returns the first crossing of the curve with y = level.
func horizontalCrossing(x, y []float64, level float64) (geom.Point, bool) {
	return geom.InterpolatedIntercept(x, y, geom.Constant(level, len(x)))
}
