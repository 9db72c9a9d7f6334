// Package analyze provides one-shot offline measurements on rendered
// buffers: simplified LUFS loudness, crest factor, and an FFT-based
// spectral centroid.
package analyze

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/ken0182/synthgraph/dsp/core"
	"github.com/ken0182/synthgraph/dsp/window"
)

// lufsOffset maps full-scale RMS to the LUFS scale. The measurement
// skips K-weighting and gating, so it is a coarse stand-in for
// BS.1770, not a compliant meter.
const lufsOffset = -23.0

// crestRMSFloor guards the crest ratio against silent buffers.
const crestRMSFloor = 1e-10

// Loudness returns the simplified LUFS of a buffer. Silence and empty
// buffers read as -223.
func Loudness(buf []float64) float64 {
	rms := 0.0
	if len(buf) > 0 {
		rms = math.Sqrt(vecmath.DotProduct(buf, buf) / float64(len(buf)))
	}
	return core.AmplitudeToDB(rms) + lufsOffset
}

// CrestFactor returns the peak-to-RMS ratio in dB, or 0 for a buffer
// too quiet to have a meaningful ratio.
func CrestFactor(buf []float64) float64 {
	rms := 0.0
	if len(buf) > 0 {
		rms = math.Sqrt(vecmath.DotProduct(buf, buf) / float64(len(buf)))
	}
	if rms < crestRMSFloor {
		return 0
	}
	return 20 * math.Log10(vecmath.MaxAbs(buf)/rms)
}

// SpectralCentroid returns the magnitude-weighted mean frequency of
// the buffer in Hz. The signal is Hann windowed, zero padded to a
// power of two, and transformed; bins up to Nyquist contribute. A
// silent or empty buffer has no centroid and returns 0.
func SpectralCentroid(buf []float64, sampleRate float64) float64 {
	if len(buf) == 0 || sampleRate <= 0 {
		return 0
	}

	fftSize := nextPowerOf2(len(buf))
	coeffs := window.Generate(window.TypeHann, len(buf))

	inData := make([]complex128, fftSize)
	for i := range buf {
		inData[i] = complex(buf[i]*coeffs[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return 0
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	binWidth := sampleRate / float64(fftSize)
	weightedSum := 0.0
	for i, m := range mag {
		weightedSum += float64(i) * binWidth * m
	}

	magnitudeSum := vecmath.Sum(mag)
	if magnitudeSum <= 0 {
		return 0
	}
	return weightedSum / magnitudeSum
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
