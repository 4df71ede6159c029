// Package config loads the YAML run configuration of the oedo command.
// Fields left out or at zero take the library defaults. The generator's
// noise, resolution and deviation are only defaulted when left out, so an
// explicit zero turns them off.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-oedometer/measure/consolidation"
	"github.com/cwbudde/algo-oedometer/stats/recovery"
	"github.com/cwbudde/algo-oedometer/synth"
)

var ErrInvalid = errors.New("config: invalid configuration")

// Config is the top-level configuration of a run.
type Config struct {
	Sample    Sample    `yaml:"sample"`
	Specimen  Specimen  `yaml:"specimen"`
	Generator Generator `yaml:"generator"`
	Engine    Engine    `yaml:"engine"`
	Calibrate Calibrate `yaml:"calibrate"`
}

type Sample struct {
	HeightMM   float64 `yaml:"height_mm"`
	DiameterMM float64 `yaml:"diameter_mm"`
}

// Specimen holds the target parameters of a generated stage.
type Specimen struct {
	Cv      float64 `yaml:"cv"`   // cm²/min
	Ca      float64 `yaml:"ca"`   // strain per log10 cycle
	Eoed    float64 `yaml:"eoed"` // kPa
	PMax    float64 `yaml:"p_max"`
	M       float64 `yaml:"m"`
	MaxTime float64 `yaml:"max_time"` // min, 0 = automatic
}

type Generator struct {
	Seed       int64    `yaml:"seed"`
	Points     int      `yaml:"points"`
	Noise      *float64 `yaml:"noise,omitempty"`
	Resolution *float64 `yaml:"resolution,omitempty"`
	Deviation  *float64 `yaml:"deviation,omitempty"`
	Offset     float64  `yaml:"offset"`
	Reverse    bool     `yaml:"reverse"`
}

type Engine struct {
	PointsCount   int     `yaml:"points_count"`
	Interpolation string  `yaml:"interpolation"` // "hermite" or "poly"
	Param         float64 `yaml:"param"`

	// Pressure in kPa; zero uses the specimen's p_max.
	Pressure  float64 `yaml:"pressure"`
	TimeShift *bool   `yaml:"time_shift,omitempty"`
}

type Calibrate struct {
	Seeds     int        `yaml:"seeds"`
	FirstSeed int64      `yaml:"first_seed"`
	Params    []ParamSet `yaml:"params"`
	Tolerance Tolerance  `yaml:"tolerance"`
}

type ParamSet struct {
	Cv          float64 `yaml:"cv"`
	Ca          float64 `yaml:"ca"`
	FinalStrain float64 `yaml:"final_strain"`
	MaxTime     float64 `yaml:"max_time"`
}

// Tolerance is the accepted p99 relative recovery error per quantity.
type Tolerance struct {
	Cv float64 `yaml:"cv"`
	Ca float64 `yaml:"ca"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads and parses a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse unmarshals YAML, fills in defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) setDefaults() {
	if c.Sample.HeightMM == 0 {
		c.Sample.HeightMM = consolidation.DefaultSample.Height
	}
	if c.Sample.DiameterMM == 0 {
		c.Sample.DiameterMM = consolidation.DefaultSample.Diameter
	}

	if c.Specimen.Cv == 0 {
		c.Specimen.Cv = 0.01
	}
	if c.Specimen.Ca == 0 {
		c.Specimen.Ca = -0.005
	}
	if c.Specimen.Eoed == 0 {
		c.Specimen.Eoed = 10000
	}
	if c.Specimen.PMax == 0 {
		c.Specimen.PMax = 200
	}

	g := &c.Generator
	if g.Seed == 0 {
		g.Seed = 1
	}
	if g.Points == 0 {
		g.Points = synth.DefaultPoints
	}
	setDefault(&g.Noise, synth.DefaultNoise)
	setDefault(&g.Resolution, synth.DefaultResolution)
	setDefault(&g.Deviation, synth.DefaultDeviation)

	e := &c.Engine
	if e.PointsCount == 0 {
		e.PointsCount = consolidation.DefaultPointsCount
	}
	if e.Interpolation == "" {
		e.Interpolation = consolidation.InterpHermite.String()
	}
	if e.Param == 0 {
		e.Param = 1
	}
	if e.TimeShift == nil {
		shift := true
		e.TimeShift = &shift
	}

	cal := &c.Calibrate
	if cal.Seeds == 0 {
		cal.Seeds = 5
	}
	if cal.FirstSeed == 0 {
		cal.FirstSeed = 1
	}
	if len(cal.Params) == 0 {
		cal.Params = []ParamSet{
			{Cv: 0.01, Ca: -0.005, FinalStrain: -0.2},
			{Cv: 0.05, Ca: -0.002, FinalStrain: -0.1},
			{Cv: 0.003, Ca: -0.004, FinalStrain: -0.12},
		}
	}
	if cal.Tolerance.Cv == 0 {
		cal.Tolerance.Cv = 0.15
	}
	if cal.Tolerance.Ca == 0 {
		cal.Tolerance.Ca = 0.2
	}
}

// setDefault points an unset *p at v.
func setDefault(p **float64, v float64) {
	if *p == nil {
		*p = &v
	}
}

// valueOr returns *p, or def when p is unset.
func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Validate checks the values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Sample.HeightMM < 0 || c.Sample.DiameterMM < 0 {
		return fmt.Errorf("%w: negative sample dimensions %+v", ErrInvalid, c.Sample)
	}
	if c.Specimen.Cv < 0 || c.Specimen.Eoed < 0 || c.Specimen.PMax < 0 || c.Specimen.M < 0 {
		return fmt.Errorf("%w: negative specimen value %+v", ErrInvalid, c.Specimen)
	}
	if _, err := consolidation.ParseInterpType(c.Engine.Interpolation); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Engine.Param < 0 || c.Engine.Pressure < 0 {
		return fmt.Errorf("%w: engine %+v", ErrInvalid, c.Engine)
	}
	if c.Generator.Points < 16 {
		return fmt.Errorf("%w: generator points %d", ErrInvalid, c.Generator.Points)
	}
	for name, p := range map[string]*float64{
		"noise":      c.Generator.Noise,
		"resolution": c.Generator.Resolution,
		"deviation":  c.Generator.Deviation,
	} {
		if p != nil && *p < 0 {
			return fmt.Errorf("%w: generator %s %v", ErrInvalid, name, *p)
		}
	}
	if c.Calibrate.Seeds < 0 {
		return fmt.Errorf("%w: calibrate seeds %d", ErrInvalid, c.Calibrate.Seeds)
	}
	return nil
}

// SampleGeometry returns the specimen geometry.
func (c *Config) SampleGeometry() consolidation.Sample {
	return consolidation.Sample{Height: c.Sample.HeightMM, Diameter: c.Sample.DiameterMM}
}

// SynthParams converts the specimen section to generator parameters.
func (c *Config) SynthParams() (synth.Params, error) {
	s := c.Specimen
	return synth.Specimen{Cv: s.Cv, Ca: s.Ca, Eoed: s.Eoed, PMax: s.PMax, M: s.M}.Params(s.MaxTime)
}

// SynthOptions returns the generator options.
func (c *Config) SynthOptions() []synth.Option {
	g := c.Generator
	opts := []synth.Option{
		synth.WithSample(c.SampleGeometry()),
		synth.WithSeed(g.Seed),
		synth.WithPoints(g.Points),
		synth.WithNoise(valueOr(g.Noise, synth.DefaultNoise)),
		synth.WithResolution(valueOr(g.Resolution, synth.DefaultResolution)),
		synth.WithDeviation(valueOr(g.Deviation, synth.DefaultDeviation)),
		synth.WithOffset(g.Offset),
	}
	if g.Reverse {
		opts = append(opts, synth.WithReverse())
	}
	return opts
}

// EngineOptions returns the processing-engine options. pressure overrides
// the configured pressure when positive.
func (c *Config) EngineOptions(pressure float64) ([]consolidation.Option, error) {
	e := c.Engine
	typ, err := consolidation.ParseInterpType(e.Interpolation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if pressure <= 0 {
		pressure = e.Pressure
	}
	if pressure <= 0 {
		pressure = c.Specimen.PMax
	}

	opts := []consolidation.Option{
		consolidation.WithSample(c.SampleGeometry()),
		consolidation.WithPointsCount(e.PointsCount),
		consolidation.WithInterpolation(typ, e.Param),
		consolidation.WithPressure(pressure),
	}
	if e.TimeShift != nil && !*e.TimeShift {
		opts = append(opts, consolidation.WithoutTimeShift())
	}
	return opts, nil
}

// RecoveryConfig returns the calibration run described by the calibrate
// section. The generator seed is replaced per trial.
func (c *Config) RecoveryConfig() (recovery.Config, error) {
	engine, err := c.EngineOptions(0)
	if err != nil {
		return recovery.Config{}, err
	}
	params := make([]synth.Params, len(c.Calibrate.Params))
	for i, p := range c.Calibrate.Params {
		params[i] = synth.Params{Cv: p.Cv, Ca: p.Ca, FinalStrain: p.FinalStrain, MaxTime: p.MaxTime}
	}

	g := c.Generator
	return recovery.Config{
		Params:    params,
		Seeds:     c.Calibrate.Seeds,
		FirstSeed: c.Calibrate.FirstSeed,
		Sample:    c.SampleGeometry(),
		Synth: []synth.Option{
			synth.WithPoints(g.Points),
			synth.WithNoise(valueOr(g.Noise, synth.DefaultNoise)),
			synth.WithResolution(valueOr(g.Resolution, synth.DefaultResolution)),
			synth.WithDeviation(valueOr(g.Deviation, synth.DefaultDeviation)),
		},
		Engine: engine,
	}, nil
}
