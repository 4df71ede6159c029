package interp

import "errors"

// Errors returned by the interpolators.
var (
	ErrTooFewPoints   = errors.New("interp: not enough points")
	ErrLengthMismatch = errors.New("interp: x and y lengths differ")
	ErrNotIncreasing  = errors.New("interp: x must be strictly increasing")
	ErrInvalidDegree  = errors.New("interp: polynomial degree must be >= 0")
	ErrSingular       = errors.New("interp: system is singular")
)

func validate(x, y []float64, minPoints int) error {
	if len(x) != len(y) {
		return ErrLengthMismatch
	}
	if len(x) < minPoints {
		return ErrTooFewPoints
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return ErrNotIncreasing
		}
	}
	return nil
}
