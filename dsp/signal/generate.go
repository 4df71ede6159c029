// Package signal generates the random ingredients of synthetic instrument
// curves: sensor noise, smooth shape deviations, and ADC quantization.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-oedometer/dsp/interp"
)

// Generator creates deterministic random signals from a seed. Every call
// restarts from the seed, so equal calls give equal output.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SetSeed replaces the random seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the random seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

func (g *Generator) rng() *rand.Rand {
	return rand.New(rand.NewSource(g.seed))
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := g.rng()
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// DeviationOption configures [Generator.Deviation].
type DeviationOption func(*deviationConfig)

type deviationConfig struct {
	minControls int
	maxControls int
	oneSided    bool
	tapered     bool
	taperEnd    float64
}

// WithControls sets the range of random interior control points.
func WithControls(lo, hi int) DeviationOption {
	return func(c *deviationConfig) {
		if lo >= 1 && hi >= lo {
			c.minControls, c.maxControls = lo, hi
		}
	}
}

// WithOneSided keeps every control on the positive side.
func WithOneSided() DeviationOption {
	return func(c *deviationConfig) {
		c.oneSided = true
	}
}

// WithTaper scales the control offsets by a weight that falls linearly
// from 1 at the start of the range to end at its finish. Negative end is
// ignored.
func WithTaper(end float64) DeviationOption {
	return func(c *deviationConfig) {
		if end >= 0 {
			c.tapered, c.taperEnd = true, end
		}
	}
}

// Deviation returns a smooth random curve sampled at x with peak magnitude
// amplitude. It is zero with zero slope at both ends of x. x must be
// increasing and span a non-zero range.
func (g *Generator) Deviation(x []float64, amplitude float64, opts ...DeviationOption) ([]float64, error) {
	if len(x) < 2 {
		return nil, fmt.Errorf("deviation needs at least 2 samples: %d", len(x))
	}
	lo, hi := x[0], x[len(x)-1]
	if !(hi > lo) {
		return nil, fmt.Errorf("deviation range must be increasing: [%v, %v]", lo, hi)
	}

	cfg := deviationConfig{minControls: 5, maxControls: 10}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	rng := g.rng()
	count := cfg.minControls + rng.Intn(cfg.maxControls-cfg.minControls+1)

	knotsX := make([]float64, count+2)
	knotsY := make([]float64, count+2)
	knotsX[count+1] = hi
	knotsX[0] = lo
	for i := 1; i <= count; i++ {
		knotsX[i] = lo + (hi-lo)*float64(i)/float64(count+1)
		v := rng.Float64()*2 - 1
		if cfg.oneSided {
			v = math.Abs(v)
		}
		if cfg.tapered {
			v *= 1 + (cfg.taperEnd-1)*(knotsX[i]-lo)/(hi-lo)
		}
		knotsY[i] = v
	}

	spline, err := interp.NewCubicSpline(knotsX, knotsY, interp.WithClamped(0, 0))
	if err != nil {
		return nil, err
	}

	out := spline.Eval(x)
	out[0], out[len(out)-1] = 0, 0

	return Normalize(out, amplitude)
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, errors.New("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	maxAbs := vecmath.MaxAbs(data)
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/maxAbs)
	return out, nil
}

// Quantize rounds every sample to the nearest multiple of step, the way a
// converter with that resolution would. A non-positive step copies data.
func Quantize(data []float64, step float64) []float64 {
	out := make([]float64, len(data))
	if step <= 0 {
		copy(out, data)
		return out
	}
	for i, v := range data {
		out[i] = math.Round(v/step) * step
	}
	return out
}
