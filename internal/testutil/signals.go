package testutil

import (
	"math"
	"math/rand"
)

// Sine returns n samples of amplitude * sin(2*pi*frequency*i/sampleRate),
// starting at phase zero.
func Sine(frequency, sampleRate, amplitude float64, n int) []float64 {
	buf := make([]float64, n)
	step := 2 * math.Pi * frequency / sampleRate
	for i := range buf {
		buf[i] = amplitude * math.Sin(step*float64(i))
	}
	return buf
}

// SquareWave alternates between amplitude and -amplitude every sample,
// the densest square a sample grid can carry. Its RMS equals its peak,
// which keeps loudness and crest expectations exact.
func SquareWave(amplitude float64, n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		if i%2 == 0 {
			buf[i] = amplitude
		} else {
			buf[i] = -amplitude
		}
	}
	return buf
}

// Impulse returns a buffer that is zero everywhere except a single unit
// sample at pos. Out-of-range positions yield all zeros.
func Impulse(n, pos int) []float64 {
	buf := make([]float64, n)
	if pos >= 0 && pos < n {
		buf[pos] = 1
	}
	return buf
}

// DC returns n copies of value.
func DC(value float64, n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = value
	}
	return buf
}

// Noise returns uniform white noise in [-amplitude, amplitude] from a
// fixed seed, so failures reproduce.
func Noise(seed int64, amplitude float64, n int) []float64 {
	buf := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range buf {
		buf[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return buf
}
