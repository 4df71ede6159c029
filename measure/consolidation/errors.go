package consolidation

import "errors"

// Errors returned for contract violations. Inconclusive data never
// produces an error.
var (
	ErrLengthMismatch       = errors.New("consolidation: time and strain lengths differ")
	ErrInvalidSeries        = errors.New("consolidation: series contains invalid samples")
	ErrInvalidBorders       = errors.New("consolidation: invalid border window")
	ErrNotCut               = errors.New("consolidation: borders have not been set")
	ErrUnknownPoint         = errors.New("consolidation: unknown point")
	ErrUnknownMethod        = errors.New("consolidation: unknown method")
	ErrUnknownInterpolation = errors.New("consolidation: unknown interpolation type")
	ErrInvalidParam         = errors.New("consolidation: invalid interpolation parameter")
	ErrInvalidSample        = errors.New("consolidation: sample dimensions must be positive")
)
