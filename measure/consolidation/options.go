package consolidation

import (
	"io"
	"log"
)

// DefaultPointsCount is the default size of the resampling grid.
const DefaultPointsCount = 50

// Option configures an Engine.
type Option func(*Engine)

// WithSample sets the specimen geometry.
func WithSample(s Sample) Option {
	return func(e *Engine) {
		e.sample = s
	}
}

// WithPointsCount sets the size of the sqrt(t) resampling grid.
func WithPointsCount(n int) Option {
	return func(e *Engine) {
		if n >= minLogPoints+1 {
			e.pointsCount = n
		}
	}
}

// WithPressure sets the load-stage pressure in kPa. It enables the
// filtration coefficient.
func WithPressure(kPa float64) Option {
	return func(e *Engine) {
		if kPa >= 0 {
			e.pressure = kPa
		}
	}
}

// WithInterpolation sets the initial interpolation type and parameter.
func WithInterpolation(t InterpType, param float64) Option {
	return func(e *Engine) {
		e.interpType = t
		e.interpParam = param
	}
}

// WithoutTimeShift keeps the raw time origin of the cut instead of moving
// it to zero.
func WithoutTimeShift() Option {
	return func(e *Engine) {
		e.shift = false
	}
}

// WithLogger sets where notices are written. Nil discards them.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		e.logger = l
	}
}
