// Package smooth low-pass filters short measurement series without
// shifting their level at the ends.
package smooth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-oedometer/dsp/conv"
	"github.com/cwbudde/algo-oedometer/dsp/window"
)

// ErrEmpty is returned for empty input.
var ErrEmpty = errors.New("smooth: empty input")

// GaussianKernel returns a unit-sum Gaussian kernel with standard deviation
// sigma samples, truncated at ceil(4*sigma).
func GaussianKernel(sigma float64) ([]float64, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("smooth: sigma must be > 0: %v", sigma)
	}

	radius := int(math.Ceil(4 * sigma))
	size := 2*radius + 1
	alpha := float64(size-1) / (sigma * math.Sqrt(8*math.Ln2))

	kernel, err := window.Gaussian(size, alpha)
	if err != nil {
		return nil, err
	}

	var sum float64
	for _, v := range kernel {
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel, nil
}

// Gaussian smooths data with a Gaussian of standard deviation sigma
// samples. The series is extended point-symmetrically about each end
// sample (2*d[0] - d[j]) so straight lines pass through unchanged.
// A non-positive sigma returns a copy of data.
func Gaussian(data []float64, sigma float64) ([]float64, error) {
	n := len(data)
	if n == 0 {
		return nil, ErrEmpty
	}
	if sigma <= 0 || n == 1 {
		return append([]float64(nil), data...), nil
	}

	kernel, err := GaussianKernel(sigma)
	if err != nil {
		return nil, err
	}
	radius := len(kernel) / 2

	padded := make([]float64, n+2*radius)
	copy(padded[radius:], data)
	for k := 0; k < radius; k++ {
		j := min(k+1, n-1)
		padded[radius-1-k] = 2*data[0] - data[j]
		padded[radius+n+k] = 2*data[n-1] - data[max(n-2-k, 0)]
	}

	// Only the fully overlapped part is centred on data.
	return conv.ConvolveMode(padded, kernel, conv.ModeValid)
}
