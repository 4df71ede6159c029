// Package conv provides linear convolution for smoothing kernels.
//
// Two strategies are available:
//
//   - [Direct]: O(N*M) time-domain convolution, best for short kernels
//   - [FFT]: one-shot frequency-domain convolution for long kernels
//
// [Convolve] picks between them based on kernel length, and [ConvolveMode]
// trims the full result to the requested [Mode].
package conv
