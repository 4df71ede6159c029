package consolidation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-oedometer/dsp/core"
	"github.com/cwbudde/algo-oedometer/geom"
	"github.com/cwbudde/algo-oedometer/internal/testutil"
)

// sqrtCurve is strain = -a*sqrt(t) on an even sqrt(t) grid up to last minutes.
func sqrtCurve(a, last float64, n int) *Resampled {
	x := core.LinSpace(0, math.Sqrt(last), n)
	r := &Resampled{TimeSqrt: x, TimeLog: make([]float64, n), Strain: make([]float64, n)}
	for i, v := range x {
		r.TimeLog[i] = math.Log10(v * v)
		r.Strain[i] = -a * v
	}
	return r
}

func TestCutCopiesWindow(t *testing.T) {
	raw := Series{Time: []float64{1, 2, 4, 8}, Strain: []float64{0, -1, -2, -3}}

	c := cut(raw, Window{Left: 1, Right: 3}, true)
	if c.Len() != 2 || c.Time[0] != 0 || c.Time[1] != 2 || c.Strain[1] != -2 {
		t.Fatalf("cut() = %+v", c)
	}
	c.Strain[0] = 99
	if raw.Strain[1] != -1 {
		t.Fatal("cut() aliases the raw series")
	}
}

func TestResampleDropsNonIncreasingTimes(t *testing.T) {
	c := Series{Time: []float64{0, 1, 1, 4, 9}, Strain: []float64{0, -1, -5, -2, -3}}
	r := resample(c, 10, InterpHermite, 0, true)
	if r == nil {
		t.Fatal("resample() = nil")
	}
	// The duplicate time 1 keeps its first strain.
	if got := r.strainAt(1); math.Abs(got+1) > 1e-12 {
		t.Fatalf("strainAt(1) = %v, want -1", got)
	}
}

func TestResampleDegenerate(t *testing.T) {
	if r := resample(Series{Time: []float64{0, 0}, Strain: []float64{0, -1}}, 10, InterpHermite, 1, true); r != nil {
		t.Fatalf("resample(single time) = %+v, want nil", r)
	}
	// Degree larger than the sample count cannot be fitted.
	if r := resample(Series{Time: []float64{0, 1, 4}, Strain: []float64{0, -1, -2}}, 10, InterpPoly, 5, true); r != nil {
		t.Fatalf("resample(poly degree 5 on 3 points) = %+v, want nil", r)
	}
}

func TestCorrectedOriginOfSqrtCurve(t *testing.T) {
	// Strain is linear in sqrt(t), so the grid interpolation is exact and
	// d0 = strain[0] + a*(sqrt(0.4)-sqrt(0.1)).
	const a = 0.01
	for _, offset := range []float64{0, -0.02} {
		r := sqrtCurve(a, 100, 200)
		for i := range r.Strain {
			r.Strain[i] += offset
		}
		want := offset + a*(math.Sqrt(0.4)-math.Sqrt(0.1))
		if d0 := correctedOrigin(r); math.Abs(d0-want) > 1e-12 {
			t.Fatalf("offset %v: correctedOrigin() = %v, want %v", offset, d0, want)
		}
	}
}

func TestCorrectedOriginFromSamples(t *testing.T) {
	r := &Resampled{
		TimeSqrt: []float64{0, math.Sqrt(0.1), math.Sqrt(0.4), 1},
		Strain:   []float64{0, -0.01, -0.02, -0.03},
	}
	if d0 := correctedOrigin(r); math.Abs(d0-0.01) > 1e-12 {
		t.Fatalf("correctedOrigin() = %v, want 0.01", d0)
	}
}

func TestCorrectedOriginShortStage(t *testing.T) {
	r := sqrtCurve(0.01, 0.3, 20)
	r.Strain[0] = -0.004
	if d0 := correctedOrigin(r); d0 != -0.004 {
		t.Fatalf("correctedOrigin() = %v, want first strain -0.004", d0)
	}
}

func TestFlat(t *testing.T) {
	r := sqrtCurve(0, 10, 20)
	if !r.flat() {
		t.Fatal("zero curve not flat")
	}
	if sqrtCurve(1e-4, 10, 20).flat() {
		t.Fatal("sloped curve reported flat")
	}
}

func TestLogPointsSkipsZeroTime(t *testing.T) {
	r := sqrtCurve(0.01, 100, 11)
	x, y := r.logPoints()
	if len(x) != 10 || len(y) != 10 {
		t.Fatalf("logPoints() returned %d points, want 10", len(x))
	}
	if math.Abs(x[len(x)-1]-2) > 1e-12 {
		t.Fatalf("last log time = %v, want 2", x[len(x)-1])
	}
}

func TestDetectSqrtOnStraightCurve(t *testing.T) {
	r := sqrtCurve(0.01, 100, 50)
	lines := detectSqrt(r)
	// A curve that never bends away from its initial line has no t90.
	if lines.Start == nil || lines.End == nil {
		t.Fatalf("detectSqrt() = %+v, want a line", lines)
	}
	if lines.Start.X != 0 {
		t.Fatalf("sqrt start X = %v, want 0", lines.Start.X)
	}
	if lines.Cv != nil {
		t.Fatalf("straight curve yielded t90 at %+v", *lines.Cv)
	}
}

func TestRefitCreepFollowsSamples(t *testing.T) {
	const slope, icept = -0.004, -0.1
	times := testutil.GeometricTimes(100, 10000, 40)
	noise := testutil.DeterministicNoise(3, 1e-5, len(times))
	c := Series{Time: times, Strain: make([]float64, len(times))}
	for i, tm := range times {
		if tm > 0 {
			c.Strain[i] = icept + slope*math.Log10(tm) + noise[i]
		}
	}

	// A tangent that is off by a quarter in slope.
	s := segment{start: geom.Pt(2.5, icept+1.25*slope*2.5), end: geom.Pt(4, icept+1.25*slope*4)}
	got := refitCreep(s, c)

	if got.start.X != s.start.X || got.end.X != s.end.X {
		t.Fatalf("refit moved the span: %+v", got)
	}
	k := (got.end.Y - got.start.Y) / (got.end.X - got.start.X)
	testutil.RequireRelative(t, "creep slope", k, slope, 0.01)
}

func TestRefitCreepKeepsSparseSegment(t *testing.T) {
	c := Series{Time: []float64{0, 1, 10, 100, 1000}, Strain: []float64{0, -0.01, -0.02, -0.03, -0.04}}
	s := segment{start: geom.Pt(1.5, -0.5), end: geom.Pt(3, -0.7)}
	if got := refitCreep(s, c); got != s {
		t.Fatalf("refitCreep() = %+v, want the tangent kept", got)
	}
}
