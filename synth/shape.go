package synth

import (
	"math"

	"github.com/cwbudde/algo-oedometer/dsp/core"
	"github.com/cwbudde/algo-oedometer/dsp/interp"
	"github.com/cwbudde/algo-oedometer/geom"
)

const (
	// slopeRatio90 is how much steeper the straight initial portion is
	// than the line from the origin to the 90% point.
	slopeRatio90 = 1.15
	// slopeAt90 is the tangent at the 90% point relative to e100/sqrt(t90).
	slopeAt90 = 0.419
	// primaryTail is the log10 distance from t90 to t100.
	primaryTail = 0.1
	// linearFraction is where the straight portion hands over to the
	// taper, as a fraction of e100.
	linearFraction = 0.6
	// convexExcess bounds how much steeper than the straight portion a
	// convex bend starts, relative to the straight slope.
	convexExcess = 0.04
)

// shape is the settlement d(x) >= 0 of a stage over x = sqrt(minutes),
// before offset, deviation and noise. u denotes log10(minutes).
type shape struct {
	x1  float64 // end of the initial bend
	xb  float64 // end of the straight portion
	x90 float64

	y0 float64 // intercept of the straight portion
	k  float64 // slope of the straight portion

	e100 float64
	d90  float64
	m90  float64

	uc   float64 // creep onset
	umax float64
	ef   float64
	ca   float64

	bend       geom.QuadBez
	transition geom.CubicBez
}

// line is the creep asymptote through (umax, ef).
func (s *shape) line(u float64) float64 {
	return s.ef - s.ca*(s.umax-u)
}

func newShape(x90, uc, umax, ef, ca, y0Frac, x1Frac float64) *shape {
	s := &shape{x90: x90, uc: uc, umax: umax, ef: ef, ca: ca}
	u90 := 2 * math.Log10(x90)

	s.e100 = s.line(u90 + primaryTail)
	s.y0 = y0Frac * s.e100
	s.x1 = x1Frac * x90
	s.k = slopeRatio90 * 0.9 * s.e100 / x90
	s.xb = linearFraction * s.e100 / s.k
	s.d90 = 0.9*s.e100 + s.y0
	s.m90 = slopeAt90 * s.e100 / x90

	s.bend = geom.QuadBez{
		P0: geom.Pt(0, 0),
		P1: geom.Pt(s.x1/2, s.y0+s.k*s.x1/2),
		P2: geom.Pt(s.x1, s.y0+s.k*s.x1),
	}

	// Leave t90 along the taper's tangent, expressed in log time, and meet
	// the creep line tangentially at uc.
	m0 := s.m90 * x90 * math.Ln10 / 2
	span := uc - u90
	b := span / 4
	endY := s.line(uc)
	a := (endY - s.d90 - ca*b) / m0
	a = core.Clamp(a, 0, 0.9*(span-b))
	s.transition = geom.CubicBez{
		P0: geom.Pt(u90, s.d90),
		P1: geom.Pt(u90+a, s.d90+a*m0),
		P2: geom.Pt(uc-b, endY-b*ca),
		P3: geom.Pt(uc, endY),
	}
	return s
}

// at evaluates the settlement at x = sqrt(minutes).
func (s *shape) at(x float64) float64 {
	switch {
	case x <= s.x1:
		// The bend is linear in x along its parameter.
		return s.bend.Eval(x / s.x1).Y
	case x <= s.xb:
		return s.y0 + s.k*x
	case x <= s.x90:
		h := s.x90 - s.xb
		return interp.Hermite((x-s.xb)/h, h, s.y0+s.k*s.xb, s.d90, s.k, s.m90)
	}

	u := 2 * math.Log10(x)
	if u < s.uc {
		return s.transition.YAt(u)
	}
	return s.line(u)
}
