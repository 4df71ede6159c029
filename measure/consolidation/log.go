package consolidation

import (
	"math"

	"github.com/cwbudde/algo-oedometer/dsp/core"
	"github.com/cwbudde/algo-oedometer/geom"
)

const (
	// TimeFactor50 is the Terzaghi time factor at 50% consolidation.
	TimeFactor50 = 0.197

	gammaWater = 9.81 // kN/m³
)

// minLogPoints is the smallest grid the logarithm method works on.
const minLogPoints = 8

// minRefitSamples is the fewest cut samples a creep tangent is refit on.
const minRefitSamples = 5

// segment is a detected straight line between two points.
type segment struct {
	start, end geom.Point
}

func segmentFrom(la geom.LineArea, x []float64, offset int) segment {
	return segment{
		start: la.PointAt(x[offset+la.Start]),
		end:   la.PointAt(x[offset+la.End]),
	}
}

func presetStrategies(ps []preset, x, y []float64, offset int) []strategy[segment] {
	out := make([]strategy[segment], 0, len(ps)+1)
	for _, p := range ps {
		out = append(out, func() (segment, bool) {
			la, ok := p.find(x[offset:], y[offset:])
			if !ok {
				return segment{}, false
			}
			return segmentFrom(la, x, offset), true
		})
	}
	return out
}

func chord(x, y []float64, i, j int) strategy[segment] {
	return func() (segment, bool) {
		return segment{start: geom.Pt(x[i], y[i]), end: geom.Pt(x[j], y[j])}, true
	}
}

// refitCreep replaces s by the least-squares line through the cut samples
// whose log10 time lies inside its span. s is kept when fewer than
// minRefitSamples fall inside.
func refitCreep(s segment, c Series) segment {
	var xs, ys []float64
	for i, t := range c.Time {
		if !(t > 0) {
			continue
		}
		if u := math.Log10(t); u >= s.start.X && u <= s.end.X {
			xs = append(xs, u)
			ys = append(ys, c.Strain[i])
		}
	}
	if len(xs) < minRefitSamples {
		return s
	}
	l, ok := geom.FitLine(xs, ys)
	if !ok {
		return s
	}
	return segment{start: l.PointAt(s.start.X), end: l.PointAt(s.end.X)}
}

// detectLog finds the primary tangent over the first 80% of the log grid
// and the creep tangent over the last 25%. Fixed chords are the fallback.
// A creep tangent found by line detection is refit on the cut samples.
func detectLog(r *Resampled, cut Series) LogLines {
	x, y := r.logPoints()
	n := len(x)
	if n < minLogPoints {
		return LogLines{}
	}

	primaryEnd := int(0.8 * float64(n))
	primary, _ := firstMatch(append(
		presetStrategies(logPrimaryPresets, x[:primaryEnd], y[:primaryEnd], 0),
		chord(x, y, int(0.25*float64(n)), int(0.5*float64(n))),
	)...)

	creepStart := int(0.75 * float64(n))
	creepPresets := presetStrategies(logCreepPresets, x, y, creepStart)
	for i, find := range creepPresets {
		creepPresets[i] = func() (segment, bool) {
			s, ok := find()
			if !ok {
				return s, false
			}
			return refitCreep(s, cut), true
		}
	}
	creep, _ := firstMatch(append(creepPresets, chord(x, y, int(0.8*float64(n)), n-1))...)

	return LogLines{
		FirstStart:  ptr(primary.start),
		FirstEnd:    ptr(primary.end),
		SecondStart: ptr(creep.start),
		SecondEnd:   ptr(creep.end),
	}
}

// logCvPoint intersects the two tangents. A point outside the observed
// strain range cannot be a consolidation state and is rejected.
func logCvPoint(r *Resampled, lines LogLines) *geom.Point {
	if lines.FirstStart == nil || lines.FirstEnd == nil ||
		lines.SecondStart == nil || lines.SecondEnd == nil {
		return nil
	}
	first, ok := geom.LineThrough(*lines.FirstStart, *lines.FirstEnd)
	if !ok {
		return nil
	}
	second, ok := geom.LineThrough(*lines.SecondStart, *lines.SecondEnd)
	if !ok {
		return nil
	}
	p, ok := first.Intersect(second)
	if !ok {
		return nil
	}
	lo, hi := core.MinMax(r.Strain)
	if p.Y < lo || p.Y > hi {
		return nil
	}
	return ptr(p)
}

// correctedOrigin returns d0 = strain[0] + s(0.1) - s(0.4), the first
// strain moved by the strain difference between 0.1 and 0.4 minutes. When
// the stage is shorter than 0.4 minutes it falls back to the first strain.
func correctedOrigin(r *Resampled) float64 {
	last := r.TimeSqrt[len(r.TimeSqrt)-1]
	if last*last < 0.4 {
		return r.Strain[0]
	}
	return r.Strain[0] + r.strainAt(0.1) - r.strainAt(0.4)
}

// deriveLog fills lines.Cv and the logarithm half of res. Without the
// tangent intersection the whole half stays absent.
func deriveLog(r *Resampled, lines *LogLines, sample Sample, pressure float64, res *Result) {
	res.clearLog()
	lines.Cv = logCvPoint(r, *lines)
	if lines.Cv == nil {
		return
	}

	cv := *lines.Cv
	d0 := correctedOrigin(r)
	res.D0 = Some(d0)
	res.T100Log = Some(math.Pow(10, cv.X))
	res.Strain100Log = Some(cv.Y)

	start, end := *lines.SecondStart, *lines.SecondEnd
	if end.X != start.X {
		res.CaLog = Some((math.Abs(end.Y) - math.Abs(start.Y)) / (end.X - start.X))
	}

	x, y := r.logPoints()
	p50, ok := horizontalCrossing(x, y, (cv.Y+d0)/2)
	if !ok {
		return
	}
	t50 := math.Pow(10, p50.X)
	if !(t50 > 0) {
		return
	}
	h := sample.heightCm()
	res.T50Log = Some(t50)
	res.CvLog = Some(TimeFactor50 * h * h / (4 * t50))

	if pressure > 0 {
		res.KfLog = map2(res.CvLog, res.Strain100Log, func(cvLog, s100 float64) float64 {
			cvSI := cvLog * 1e-4 / 60 // m²/s
			mv := math.Abs(s100-d0) / pressure
			return cvSI * mv * gammaWater * 86400
		})
	}
}
