// Package synth generates synthetic oedometer consolidation stages.
//
// [Consolidation] is the forward model of the processing engine in
// measure/consolidation: given a target coefficient of consolidation Cv,
// a secondary compression rate Ca and a final strain it builds a curve
// with a Taylor-like initial bend and straight portion, a smooth taper into
// 90% consolidation and a log-time transition onto the creep line. A random
// shape deviation, sensor noise and converter quantization make the result
// look measured.
//
// Every random choice comes from the seed, so equal inputs give equal
// curves.
package synth
