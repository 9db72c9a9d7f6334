package stage

import (
	"fmt"

	"github.com/ken0182/synthgraph/dsp/filter/biquad"
	"github.com/ken0182/synthgraph/dsp/filter/design"
)

// Filter response names understood by the filter stage.
const (
	FilterLowpass  = "lowpass"
	FilterHighpass = "highpass"
	FilterBandpass = "bandpass"
)

const (
	defaultCutoff    = 1000.0
	defaultResonance = 0.1

	minCutoff, maxCutoff       = 20.0, 20000.0
	minResonance, maxResonance = 0.0, 0.99
)

// Filter runs its input through a single second-order section whose
// coefficients are redesigned from cutoff and resonance on every Process
// call, so parameter changes take effect at the next block boundary
// while the four delay scalars persist across calls.
//
// Resonance is applied directly as the filter Q. The filterType label
// selects the response; unrecognized labels design a lowpass.
type Filter struct {
	cutoff     float64
	resonance  float64
	filterType string

	sampleRate float64
	section    biquad.Section
}

// NewFilter returns a lowpass filter at 1 kHz, resonance 0.1.
func NewFilter() *Filter {
	return &Filter{
		cutoff:     defaultCutoff,
		resonance:  defaultResonance,
		filterType: FilterLowpass,
		sampleRate: defaultSampleRate,
	}
}

// Process filters one block in place.
func (f *Filter) Process(buf []float64) {
	var c biquad.Coefficients
	switch f.filterType {
	case FilterHighpass:
		c = design.Highpass(f.cutoff, f.resonance, f.sampleRate)
	case FilterBandpass:
		c = design.Bandpass(f.cutoff, f.resonance, f.sampleRate)
	default:
		c = design.Lowpass(f.cutoff, f.resonance, f.sampleRate)
	}
	f.section.Coefficients = c
	f.section.ProcessBlock(buf)
}

// SetParameter updates one of cutoff, resonance, or filterType.
func (f *Filter) SetParameter(name string, value Value) error {
	switch name {
	case "cutoff":
		return setRanged(&f.cutoff, "cutoff", value, minCutoff, maxCutoff)
	case "resonance":
		return setRanged(&f.resonance, "resonance", value, minResonance, maxResonance)
	case "filterType":
		return setString(&f.filterType, "filterType", value)
	}
	return unknownParameter(KindFilter, name)
}

// Parameter returns the named parameter value.
func (f *Filter) Parameter(name string) (Value, error) {
	switch name {
	case "cutoff":
		return FloatValue(f.cutoff), nil
	case "resonance":
		return FloatValue(f.resonance), nil
	case "filterType":
		return StringValue(f.filterType), nil
	}
	return Value{}, unknownParameter(KindFilter, name)
}

// ParameterNames lists the filter's parameters.
func (f *Filter) ParameterNames() []string {
	return []string{"cutoff", "resonance", "filterType"}
}

// Reset clears the delay scalars; parameters are preserved.
func (f *Filter) Reset() {
	f.section.Reset()
}

// Describe returns a one-line summary.
func (f *Filter) Describe() string {
	return fmt.Sprintf("Filter: %s at %g Hz", f.filterType, f.cutoff)
}

// Kind returns KindFilter.
func (f *Filter) Kind() Kind { return KindFilter }

// SetSampleRate updates the rate used when designing coefficients.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if err := checkSampleRate(KindFilter, sampleRate); err != nil {
		return err
	}
	f.sampleRate = sampleRate
	return nil
}
