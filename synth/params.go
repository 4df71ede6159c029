package synth

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidParams   = errors.New("synth: invalid curve parameters")
	ErrInvalidSpecimen = errors.New("synth: invalid specimen parameters")
	ErrInvalidOption   = errors.New("synth: invalid option")
)

// Params is the target of a generated stage. Signs of Ca and FinalStrain
// are ignored; the curve always compresses.
type Params struct {
	Cv          float64 // cm²/min
	Ca          float64 // strain per log10 cycle
	FinalStrain float64 // strain at the end of the stage
	// MaxTime is the stage duration in minutes. Zero, or anything not
	// past t90, picks a random 4 to 5 times t90.
	MaxTime float64
}

func (p Params) validate() error {
	for _, v := range []float64{p.Cv, p.Ca, p.FinalStrain, p.MaxTime} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v", ErrInvalidParams, p)
		}
	}
	if !(p.Cv > 0) {
		return fmt.Errorf("%w: Cv must be > 0, got %v", ErrInvalidParams, p.Cv)
	}
	if p.FinalStrain == 0 {
		return fmt.Errorf("%w: final strain must not be zero", ErrInvalidParams)
	}
	if p.MaxTime < 0 {
		return fmt.Errorf("%w: negative max time %v", ErrInvalidParams, p.MaxTime)
	}
	return nil
}

// Specimen holds the per-specimen values a project supplies for a load
// stage.
type Specimen struct {
	Cv   float64 // cm²/min
	Ca   float64 // strain per log10 cycle
	Eoed float64 // oedometer modulus, kPa
	PMax float64 // stage pressure, kPa
	// M corrects the laboratory modulus; zero means 1.
	M float64
}

// Params converts the specimen to generator parameters. The final strain
// is -PMax*M/Eoed.
func (s Specimen) Params(maxTime float64) (Params, error) {
	if !(s.Eoed > 0) || !(s.PMax > 0) || s.M < 0 {
		return Params{}, fmt.Errorf("%w: %+v", ErrInvalidSpecimen, s)
	}
	m := s.M
	if m == 0 {
		m = 1
	}
	p := Params{
		Cv:          s.Cv,
		Ca:          s.Ca,
		FinalStrain: -s.PMax * m / s.Eoed,
		MaxTime:     maxTime,
	}
	if err := p.validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
