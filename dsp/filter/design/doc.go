// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: RBJ-cookbook lowpass, highpass
// and bandpass responses from a center/corner frequency and quality factor.
// Degenerate inputs (non-positive sample rate, frequency at or beyond
// Nyquist) yield zero coefficients rather than an error.
package design
