package synth

import "github.com/cwbudde/algo-oedometer/measure/consolidation"

const (
	DefaultPoints     = 10000
	DefaultNoise      = 1e-5
	DefaultResolution = 1e-5
	DefaultDeviation  = 0.002
)

type config struct {
	seed       int64
	noise      float64
	resolution float64
	deviation  float64
	points     int
	offset     float64
	reverse    bool
	sample     consolidation.Sample
}

func defaultConfig() config {
	return config{
		seed:       1,
		noise:      DefaultNoise,
		resolution: DefaultResolution,
		deviation:  DefaultDeviation,
		points:     DefaultPoints,
		sample:     consolidation.DefaultSample,
	}
}

// Option configures [Consolidation].
type Option func(*config)

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithNoise sets the peak of the uniform sensor noise. Zero disables it.
func WithNoise(amplitude float64) Option {
	return func(c *config) {
		c.noise = amplitude
	}
}

// WithResolution sets the converter step the strain is quantized to. Zero
// disables quantization.
func WithResolution(step float64) Option {
	return func(c *config) {
		c.resolution = step
	}
}

// WithDeviation sets the relative peak of the random shape deviation
// applied up to creep onset. Zero disables it.
func WithDeviation(amplitude float64) Option {
	return func(c *config) {
		c.deviation = amplitude
	}
}

// WithPoints sets the size of the even sqrt(t) grid.
func WithPoints(n int) Option {
	return func(c *config) {
		c.points = n
	}
}

// WithOffset shifts the whole curve, e.g. by the strain reached in the
// previous load stage.
func WithOffset(strain float64) Option {
	return func(c *config) {
		c.offset = strain
	}
}

// WithReverse starts the curve with a convex bend instead of a seating
// step.
func WithReverse() Option {
	return func(c *config) {
		c.reverse = true
	}
}

// WithSample sets the specimen geometry that Cv refers to.
func WithSample(s consolidation.Sample) Option {
	return func(c *config) {
		c.sample = s
	}
}
