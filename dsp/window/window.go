// Package window generates the kernel shapes used by the curve smoother.
package window

import (
	"math"

	"github.com/cwbudde/algo-oedometer/dsp/core"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeGauss
)

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha float64
}

func defaultConfig() config {
	return config{alpha: 1}
}

// WithAlpha configures the shape parameter of the Gauss window.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length), cfg)
	}

	return out
}

// Gaussian returns Gaussian window coefficients. The window falls to half
// its peak at (1 ± 1/alpha)/2 of its span.
func Gaussian(size int, alpha float64, opts ...Option) ([]float64, error) {
	if size <= 0 || alpha <= 0 {
		return nil, validateGauss(size, alpha)
	}

	return Generate(TypeGauss, size, append(opts, WithAlpha(alpha))...), nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	x = core.Clamp(x, 0, 1)

	switch t {
	case TypeGauss:
		v := (2*x - 1) * cfg.alpha
		return math.Exp(-math.Ln2 * v * v)
	default:
		return 1
	}
}

func samplePosition(n, size int) float64 {
	if size <= 1 {
		return 0.5
	}

	return float64(n) / float64(size-1)
}
