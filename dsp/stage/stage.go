package stage

import (
	"fmt"
	"math"
)

// defaultSampleRate is assumed until SetSampleRate is called.
const defaultSampleRate = 44100.0

// Kind identifies one of the closed set of stage types.
type Kind int

const (
	// KindOscillator is an additive waveform generator.
	KindOscillator Kind = iota
	// KindFilter is a biquad filter with a selectable response.
	KindFilter
	// KindEnvelope is an input-gated ADSR amplitude shaper.
	KindEnvelope
	// KindLFO is a low-frequency modulator added onto its input.
	KindLFO
)

// String returns the wire-format name of the kind.
func (k Kind) String() string {
	switch k {
	case KindOscillator:
		return "oscillator"
	case KindFilter:
		return "filter"
	case KindEnvelope:
		return "envelope"
	case KindLFO:
		return "lfo"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Stage is a named processing unit in a signal graph.
//
// Process filters or generates one block in place; the slice keeps its
// length and continuous state (phase, delay lines, envelope position)
// carries over to the next call. Parameter access is tagged: SetParameter
// rejects wrong-typed values and ranged numerics outside their declared
// bounds. Reset clears transient state only and leaves parameter values
// untouched.
type Stage interface {
	Process(buf []float64)
	SetParameter(name string, value Value) error
	Parameter(name string) (Value, error)
	ParameterNames() []string
	Reset()
	Describe() string
	Kind() Kind
	SetSampleRate(sampleRate float64) error
}

// checkSampleRate validates a sample rate for SetSampleRate.
func checkSampleRate(k Kind, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%s sample rate must be > 0 and finite: %f", k, sampleRate)
	}
	return nil
}
