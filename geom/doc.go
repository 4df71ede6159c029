// Package geom provides the planar primitives used to reproduce graphical
// curve constructions on sampled data.
//
// The building blocks are:
//
//   - [Point] and [Line]: a 2D point and the straight line y = A*x + B
//   - [FitLine]: ordinary least squares over a set of samples
//   - [InterpolatedIntercept]: crossing of two sampled curves found by
//     sign-change bracketing and a local segment intersection
//   - [FindLineArea]: windowed detector for the dominant straight portion
//     of a curve inside a band of slopes
//   - [QuadBez] and [CubicBez]: Bezier segments used to build smooth
//     piecewise curves
//
// All functions are pure; none keep state between calls.
package geom
