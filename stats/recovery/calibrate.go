package recovery

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-oedometer/measure/consolidation"
	"github.com/cwbudde/algo-oedometer/synth"
)

// Config describes a calibration run: every parameter set is generated
// with Seeds consecutive seeds starting at FirstSeed and processed.
type Config struct {
	Params    []synth.Params
	Seeds     int
	FirstSeed int64
	Sample    consolidation.Sample
	// Synth and Engine are passed through to the generator and the engine.
	Synth  []synth.Option
	Engine []consolidation.Option
}

// Calibrate runs the round trips of cfg and returns the tracked errors of
// Cv_sqrt, Cv_log, Ca_log and t90_sqrt. It stops early when ctx is done.
func Calibrate(ctx context.Context, cfg Config) (*Tracker, error) {
	if cfg.Seeds <= 0 {
		return nil, fmt.Errorf("recovery: seeds must be > 0: %d", cfg.Seeds)
	}
	sample := cfg.Sample
	if sample == (consolidation.Sample{}) {
		sample = consolidation.DefaultSample
	}

	engine, err := consolidation.New(append([]consolidation.Option{
		consolidation.WithSample(sample),
		consolidation.WithLogger(nil),
	}, cfg.Engine...)...)
	if err != nil {
		return nil, fmt.Errorf("recovery: %w", err)
	}

	t := NewTracker(CvSqrt, CvLog, CaLog, T90)
	for _, p := range cfg.Params {
		for i := 0; i < cfg.Seeds; i++ {
			if err := ctx.Err(); err != nil {
				return t, err
			}

			opts := append([]synth.Option{
				synth.WithSample(sample),
				synth.WithSeed(cfg.FirstSeed + int64(i)),
			}, cfg.Synth...)
			c, err := synth.Consolidation(p, opts...)
			if err != nil {
				return t, fmt.Errorf("recovery: generate %+v: %w", p, err)
			}
			res, err := engine.Process(c.Series())
			if err != nil {
				return t, fmt.Errorf("recovery: process %+v: %w", p, err)
			}

			for _, r := range []struct {
				name string
				got  consolidation.Value
				want float64
			}{
				{CvSqrt, res.CvSqrt, p.Cv},
				{CvLog, res.CvLog, p.Cv},
				{CaLog, res.CaLog, math.Abs(c.Params.Ca)},
				{T90, res.T90Sqrt, c.T90},
			} {
				if err := t.Record(r.name, r.got, r.want); err != nil {
					return t, err
				}
			}
		}
	}
	return t, nil
}
