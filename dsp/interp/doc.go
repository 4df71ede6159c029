// Package interp provides the interpolation and curve-fitting primitives
// used to put irregular instrument series onto regular grids.
//
// Available methods:
//
//   - [Hermite]:      cubic Hermite basis on one interval
//   - [PCHIP]:        monotone piecewise cubic Hermite (Fritsch-Carlson)
//   - [CubicSpline]:  natural or clamped cubic spline
//   - [PolyFit]:      least-squares polynomial of a given degree
//   - [Linear]:       piecewise-linear lookup with end clamping
//
// [MakeIncreasing] drops samples whose abscissa does not strictly increase,
// which every interpolator here requires.
package interp
