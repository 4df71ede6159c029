package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-oedometer/internal/testutil"
)

func TestDirectKnownValues(t *testing.T) {
	got, err := Direct([]float64{1, 2, 3}, []float64{0, 1, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 1, 2.5, 4, 1.5}, 1e-12)
}

func TestDirectSIMDPathMatchesScalar(t *testing.T) {
	a := testutil.DeterministicNoise(7, 0.5, 40)
	b := []float64{0.1, 0.2, 0.4, 0.2, 0.1}

	got, err := Direct(a, b)
	if err != nil {
		t.Fatal(err)
	}

	want := make([]float64, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			want[i+j] += a[i] * b[j]
		}
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestFFTMatchesDirect(t *testing.T) {
	a := testutil.DeterministicNoise(3, 1, 300)
	b := testutil.DeterministicNoise(11, 1, 100)

	want, err := Direct(a, b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := FFT(a, b)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func TestConvolveSwapsShorterKernel(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{1, 1, 1, 1}
	got, err := Convolve(a, b)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 3, 3, 3, 2}, 1e-12)
}

func TestConvolveModeSame(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	k := []float64{0, 1, 0}
	got, err := ConvolveMode(a, k, ModeSame)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, a, 1e-12)
}

func TestConvolveModeValid(t *testing.T) {
	got, err := ConvolveMode([]float64{1, 2, 3, 4}, []float64{1, 1}, ModeValid)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{3, 5, 7}, 1e-12)
}

func TestEmptyInputs(t *testing.T) {
	if _, err := Convolve(nil, []float64{1}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err=%v, want ErrEmptyInput", err)
	}
	if _, err := Convolve([]float64{1}, nil); !errors.Is(err, ErrEmptyKernel) {
		t.Fatalf("err=%v, want ErrEmptyKernel", err)
	}
	if err := DirectTo(make([]float64, 2), []float64{1, 2}, []float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err=%v, want ErrLengthMismatch", err)
	}
}

func TestFFTPreservesSum(t *testing.T) {
	a := testutil.DeterministicNoise(5, 1, 200)
	b := make([]float64, 129)
	for i := range b {
		b[i] = 1.0 / float64(len(b))
	}
	got, err := Convolve(a, b)
	if err != nil {
		t.Fatal(err)
	}

	var sa, sg float64
	for _, v := range a {
		sa += v
	}
	for _, v := range got {
		sg += v
	}
	if math.Abs(sa-sg) > 1e-9 {
		t.Fatalf("sum=%v, want %v", sg, sa)
	}
}
