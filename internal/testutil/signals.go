package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// GeometricTimes returns n times spaced evenly in log10 between first and
// last, preceded by a zero sample the way an instrument log starts.
func GeometricTimes(first, last float64, n int) []float64 {
	out := make([]float64, 0, n+1)
	out = append(out, 0)
	if n == 1 {
		return append(out, first)
	}
	lo, hi := math.Log10(first), math.Log10(last)
	for i := 0; i < n; i++ {
		out = append(out, math.Pow(10, lo+(hi-lo)*float64(i)/float64(n-1)))
	}
	return out
}

// DegreeOfConsolidation approximates Terzaghi's average degree of
// consolidation U for time factor tv (Sivakugan-Das fit).
func DegreeOfConsolidation(tv float64) float64 {
	if tv <= 0 {
		return 0
	}
	a := 4 * tv / math.Pi
	return math.Sqrt(a) / math.Pow(1+math.Pow(a, 2.8), 0.179)
}

// TerzaghiStrain returns a negative strain curve that reaches 90 % of
// final at t90 and then creeps by ca per log10 cycle.
func TerzaghiStrain(times []float64, final, t90, ca float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		u := DegreeOfConsolidation(0.848 * t / t90)
		out[i] = -final * u
		if t > t90 {
			out[i] -= ca * math.Log10(t/t90)
		}
	}
	return out
}
