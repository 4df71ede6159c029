package synth

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-oedometer/dsp/core"
	"github.com/cwbudde/algo-oedometer/dsp/signal"
	"github.com/cwbudde/algo-oedometer/measure/consolidation"
)

// Marker names a characteristic point of a generated stage.
type Marker struct {
	Name   string
	Time   float64 // min
	Strain float64
}

// Curve is a generated stage.
type Curve struct {
	Time   []float64 // min
	Strain []float64
	// Markers are t90, creep onset, the end of the stage and the ends of
	// the initial bend (xP) and of the straight portion (xK), on the
	// noiseless curve.
	Markers []Marker
	// Params are the parameters actually used: MaxTime is filled in and Ca
	// may have been reduced.
	Params Params
	// T90 is the analytic time to 90% consolidation, minutes.
	T90 float64
	// CaCorrected is set when Ca was too large for the final strain.
	CaCorrected bool
}

// Series returns the curve as engine input.
func (c Curve) Series() consolidation.Series {
	return consolidation.Series{
		Time:   append([]float64(nil), c.Time...),
		Strain: append([]float64(nil), c.Strain...),
	}
}

// Consolidation generates a stage for p. The strain is negative and
// decreasing apart from noise, and reaches about -|FinalStrain| at the end.
//
// A Ca that would drive the creep line below zero settlement before t100
// is silently reduced to 90% of the largest consistent value.
func Consolidation(p Params, opts ...Option) (Curve, error) {
	if err := p.validate(); err != nil {
		return Curve{}, err
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return Curve{}, err
	}

	rng := rand.New(rand.NewSource(cfg.seed))

	h := cfg.sample.Height / 10
	t90 := consolidation.TimeFactor90 * h * h / (4 * p.Cv)
	x90 := math.Sqrt(t90)
	u90 := math.Log10(t90)

	maxTime := p.MaxTime
	if !(maxTime > t90) {
		maxTime = (4 + rng.Float64()) * t90
	}
	umax := math.Log10(maxTime)
	uc := u90 + (0.6+0.1*rng.Float64())*(umax-u90)

	ef, ca := math.Abs(p.FinalStrain), math.Abs(p.Ca)
	corrected := false
	if rest := umax - u90 - primaryTail; rest > 0 && ca*rest >= ef {
		ca = 0.9 * ef / rest
		corrected = true
	}

	bendDepth, bendLength := rng.Float64(), rng.Float64()
	y0Frac := -(0.01 + 0.02*bendDepth)
	x1Frac := 0.1 + 0.05*bendLength
	if cfg.reverse {
		// The convex bend starts between convexExcess/2 and convexExcess
		// steeper than the straight portion and flattens onto it at x1.
		x1Frac = 0.25 + 0.1*bendLength
		excess := convexExcess * (1 + bendDepth) / 2
		y0Frac = excess * slopeRatio90 * 0.9 * x1Frac / 2
	}
	s := newShape(x90, uc, umax, ef, ca, y0Frac, x1Frac)

	x := core.LinSpace(0, math.Sqrt(maxTime), cfg.points)
	d := make([]float64, len(x))
	for i, v := range x {
		d[i] = s.at(v)
	}

	gen := signal.NewGenerator()
	if cfg.deviation > 0 {
		xc := math.Sqrt(math.Pow(10, uc))
		kc := sort.Search(len(x), func(i int) bool { return x[i] > xc })
		if kc >= 2 {
			dev, err := deviation(gen, rng, x[:kc], s.x1, cfg.deviation)
			if err != nil {
				return Curve{}, fmt.Errorf("synth: deviation: %w", err)
			}
			for i, v := range dev {
				d[i] *= 1 + v
			}
		}
	}

	strain := make([]float64, len(x))
	for i, v := range d {
		strain[i] = cfg.offset - v
	}
	if cfg.noise > 0 {
		gen.SetSeed(rng.Int63())
		noise, err := gen.WhiteNoise(cfg.noise, len(strain))
		if err != nil {
			return Curve{}, fmt.Errorf("synth: noise: %w", err)
		}
		vecmath.AddBlockInPlace(strain, noise)
	}
	strain = signal.Quantize(strain, cfg.resolution)

	times := core.Square(x)
	times[len(times)-1] = maxTime

	clean := func(name string, t float64) Marker {
		return Marker{Name: name, Time: t, Strain: cfg.offset - s.at(math.Sqrt(t))}
	}

	used := p
	used.MaxTime = maxTime
	used.Ca = math.Copysign(ca, p.Ca)

	return Curve{
		Time:   times,
		Strain: strain,
		Markers: []Marker{
			clean("xP", s.x1*s.x1),
			clean("xK", s.xb*s.xb),
			clean("t90", t90),
			clean("t_creep", math.Pow(10, uc)),
			clean("max_time", maxTime),
		},
		Params:      used,
		T90:         t90,
		CaCorrected: corrected,
	}, nil
}

// deviation returns the relative shape deviation over x, peaking at
// amplitude. On top of the two-sided waviness the initial bend up to x1
// gets a one-sided seating bump that fades out toward the straight
// portion.
func deviation(gen *signal.Generator, rng *rand.Rand, x []float64, x1, amplitude float64) ([]float64, error) {
	gen.SetSeed(rng.Int63())
	dev, err := gen.Deviation(x, amplitude)
	if err != nil {
		return nil, err
	}

	gen.SetSeed(rng.Int63())
	kb := sort.Search(len(x), func(i int) bool { return x[i] > x1 })
	if kb < 2 {
		return dev, nil
	}
	seating, err := gen.Deviation(x[:kb], amplitude, signal.WithOneSided(), signal.WithTaper(0))
	if err != nil {
		return nil, err
	}
	vecmath.AddBlockInPlace(dev[:kb], seating)
	return signal.Normalize(dev, amplitude)
}

func (c config) validate() error {
	if c.points < 16 {
		return fmt.Errorf("%w: %d grid points", ErrInvalidOption, c.points)
	}
	for name, v := range map[string]float64{"noise": c.noise, "resolution": c.resolution, "deviation": c.deviation} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidOption, name, v)
		}
	}
	if math.IsNaN(c.offset) || math.IsInf(c.offset, 0) {
		return fmt.Errorf("%w: offset = %v", ErrInvalidOption, c.offset)
	}
	if !(c.sample.Height > 0) || !(c.sample.Diameter > 0) {
		return fmt.Errorf("%w: sample %+v", ErrInvalidOption, c.sample)
	}
	return nil
}
