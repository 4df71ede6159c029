package consolidation

import "github.com/cwbudde/algo-oedometer/geom"

// strategy is one way of producing a construction; ok is false when it
// did not yield a usable one.
type strategy[T any] func() (T, bool)

// firstMatch runs the strategies in order and returns the first result
// that succeeds.
func firstMatch[T any](strategies ...strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// preset is a parameter set for [geom.FindLineArea].
type preset struct {
	tolerance float64
	window    int
	band      geom.Band
}

func (p preset) find(x, y []float64) (geom.LineArea, bool) {
	la, ok := geom.FindLineArea(x, y, p.tolerance, p.window, p.band)
	if !ok || la.End <= la.Start {
		return geom.LineArea{}, false
	}
	return la, true
}

var (
	sqrtPresets = []preset{
		{tolerance: 0.3, window: 3, band: geom.Band{Lo: 0.95, Hi: 1}},
		{tolerance: 0.5, window: 10, band: geom.Band{Lo: 0.9, Hi: 1}},
	}
	logPrimaryPresets = []preset{
		{tolerance: 0.3, window: 3, band: geom.Band{Lo: 0.8, Hi: 1}},
		{tolerance: 0.5, window: 5, band: geom.Band{Lo: 0.7, Hi: 1}},
	}
	logCreepPresets = []preset{
		{tolerance: 2, window: 3, band: geom.Band{Lo: 0.3, Hi: 1}},
		{tolerance: 4, window: 5, band: geom.Band{Lo: 0.1, Hi: 1}},
	}
)
