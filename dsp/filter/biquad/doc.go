// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form I processing for a single second-order
// section defined by [Coefficients], carrying its two most recent inputs and
// outputs as persistent state across calls.
//
// This package provides the processing runtime only. Coefficient design
// (lowpass, highpass, bandpass) lives in dsp/filter/design.
package biquad
