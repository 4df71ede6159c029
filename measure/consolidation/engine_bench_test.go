package consolidation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-oedometer/dsp/core"
	"github.com/cwbudde/algo-oedometer/internal/testutil"
)

// benchSeries is a noisy stage of n samples on an even sqrt(t) grid, the
// way the generator and most loggers deliver them.
func benchSeries(n int) Series {
	times := core.Square(core.LinSpace(0, math.Sqrt(144*testT90), n))
	strain := testutil.TerzaghiStrain(times, testFinal, testT90, testCa)
	vecmath.AddBlockInPlace(strain, testutil.DeterministicNoise(1, 1e-5, n))
	return Series{Time: times, Strain: strain}
}

func BenchmarkEngineProcess(b *testing.B) {
	s := benchSeries(10000)
	e, err := New(WithLogger(nil))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for b.Loop() {
		if _, err := e.Process(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEngineChangeBorders(b *testing.B) {
	s := benchSeries(10000)
	e, err := New(WithLogger(nil))
	if err != nil {
		b.Fatal(err)
	}
	if _, err := e.Process(s); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for b.Loop() {
		if err := e.ChangeBorders(100, s.Len()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResample(b *testing.B) {
	s := benchSeries(10000)

	b.ResetTimer()

	for b.Loop() {
		if r := resample(s, DefaultPointsCount, InterpHermite, 1, true); r == nil {
			b.Fatal("resample() = nil")
		}
	}
}
