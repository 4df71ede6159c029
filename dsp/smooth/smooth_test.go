package smooth

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-oedometer/internal/testutil"
)

func TestGaussianKernelUnitSum(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2.5, 20} {
		k, err := GaussianKernel(sigma)
		if err != nil {
			t.Fatal(err)
		}
		if len(k) != 2*int(math.Ceil(4*sigma))+1 {
			t.Fatalf("sigma %v: len=%d", sigma, len(k))
		}
		var sum float64
		for _, v := range k {
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("sigma %v: sum=%v, want 1", sigma, sum)
		}
	}
}

func TestGaussianKernelMatchesNormalDensity(t *testing.T) {
	k, err := GaussianKernel(1)
	if err != nil {
		t.Fatal(err)
	}
	c := len(k) / 2
	ratio := k[c+1] / k[c]
	if math.Abs(ratio-math.Exp(-0.5)) > 1e-12 {
		t.Fatalf("k[c+1]/k[c] = %v, want %v", ratio, math.Exp(-0.5))
	}
}

func TestGaussianKeepsLines(t *testing.T) {
	data := make([]float64, 50)
	for i := range data {
		data[i] = 0.3 - 0.01*float64(i)
	}
	for _, sigma := range []float64{1, 3, 10} {
		got, err := Gaussian(data, sigma)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireSliceNearlyEqual(t, got, data, 1e-9)
	}
}

func TestGaussianReducesNoise(t *testing.T) {
	noise := testutil.DeterministicNoise(9, 1, 400)
	got, err := Gaussian(noise, 2)
	if err != nil {
		t.Fatal(err)
	}
	var in, out float64
	for i := range noise {
		in += noise[i] * noise[i]
		out += got[i] * got[i]
	}
	if out > 0.5*in {
		t.Fatalf("energy %v not reduced from %v", out, in)
	}
}

func TestGaussianEdgeCases(t *testing.T) {
	if _, err := Gaussian(nil, 1); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err=%v, want ErrEmpty", err)
	}
	got, err := Gaussian([]float64{1, 2, 3}, 0)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 2, 3}, 0)

	got, err = Gaussian([]float64{5}, 1)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{5}, 0)

	if _, err := GaussianKernel(-1); err == nil {
		t.Fatal("expected error for negative sigma")
	}
}
