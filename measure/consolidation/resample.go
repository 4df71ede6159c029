package consolidation

import (
	"math"

	"github.com/cwbudde/algo-oedometer/dsp/core"
	"github.com/cwbudde/algo-oedometer/dsp/interp"
	"github.com/cwbudde/algo-oedometer/dsp/smooth"
)

// cut copies samples [w.Left, w.Right) of raw. With shift the times are
// moved so the first one is zero.
func cut(raw Series, w Window, shift bool) Series {
	out := Series{
		Time:   append([]float64(nil), raw.Time[w.Left:w.Right]...),
		Strain: append([]float64(nil), raw.Strain[w.Left:w.Right]...),
	}
	if shift && len(out.Time) > 0 {
		t0 := out.Time[0]
		for i := range out.Time {
			out.Time[i] -= t0
		}
	}
	return out
}

// resample puts the cut series on an even sqrt(t) grid of n points. It
// returns nil when the series is too degenerate to interpolate.
func resample(c Series, n int, typ InterpType, param float64, fromZero bool) *Resampled {
	x, y := interp.MakeIncreasing(core.Sqrt(c.Time), c.Strain)
	if len(x) < 2 {
		return nil
	}

	lo := x[0]
	if fromZero {
		lo = 0
	}
	hi := x[len(x)-1]
	if !(hi > lo) {
		return nil
	}
	grid := core.LinSpace(lo, hi, n)

	var strain []float64
	switch typ {
	case InterpPoly:
		p, err := interp.PolyFit(x, y, int(math.Round(param)))
		if err != nil {
			return nil
		}
		strain = p.Eval(grid)
	default:
		p, err := interp.NewPCHIP(x, y)
		if err != nil {
			return nil
		}
		strain, err = smooth.Gaussian(p.Eval(grid), param)
		if err != nil {
			return nil
		}
	}

	logT := make([]float64, n)
	for i, v := range grid {
		logT[i] = math.Log10(v * v)
	}

	return &Resampled{TimeSqrt: grid, TimeLog: logT, Strain: strain}
}

// strainAt returns the resampled strain at time t (minutes) by linear
// interpolation on the sqrt(t) grid.
func (r *Resampled) strainAt(t float64) float64 {
	return interp.Linear(r.TimeSqrt, r.Strain, math.Sqrt(t))
}

// logPoints returns the samples with a finite log10 time.
func (r *Resampled) logPoints() (x, y []float64) {
	for i, v := range r.TimeLog {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		x = append(x, v)
		y = append(y, r.Strain[i])
	}
	return x, y
}

// flat reports whether the strain carries no usable variation.
func (r *Resampled) flat() bool {
	lo, hi := core.MinMax(r.Strain)
	return math.IsNaN(lo) || core.NearlyEqual(lo, hi, 1e-12)
}
