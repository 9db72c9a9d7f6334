package stage

import "math"

// Waveform names understood by Oscillator and LFO.
const (
	WaveSine     = "sine"
	WaveSaw      = "saw"
	WaveSquare   = "square"
	WaveTriangle = "triangle"
)

const twoPi = 2 * math.Pi

// waveSample evaluates the named waveform at phase, expected in [0, 2π).
// Unrecognized names yield silence.
func waveSample(wave string, phase float64) float64 {
	switch wave {
	case WaveSine:
		return math.Sin(phase)
	case WaveSaw:
		return 2*(phase/twoPi) - 1
	case WaveSquare:
		if phase < math.Pi {
			return 1
		}
		return -1
	case WaveTriangle:
		if phase < math.Pi {
			return 2*phase/math.Pi - 1
		}
		return 3 - 2*phase/math.Pi
	}
	return 0
}

// advancePhase steps a phase accumulator and wraps it back into [0, 2π).
func advancePhase(phase, increment float64) float64 {
	phase += increment
	for phase >= twoPi {
		phase -= twoPi
	}
	return phase
}
