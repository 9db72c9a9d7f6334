package stage

import "fmt"

const (
	defaultFrequency   = 440.0
	defaultAmplitude   = 0.5
	defaultPhaseOffset = 0.0

	minFrequency, maxFrequency     = 20.0, 20000.0
	minAmplitude, maxAmplitude     = 0.0, 1.0
	minPhaseOffset, maxPhaseOffset = 0.0, 1.0
)

// Oscillator generates a periodic waveform and adds it onto its input,
// so independent oscillators feeding the same buffer mix additively.
//
// The phase parameter is a starting offset in cycles [0, 1]. It shifts
// the sine waveform only; the piecewise waveforms read the accumulator
// directly.
type Oscillator struct {
	frequency   float64
	amplitude   float64
	phaseOffset float64
	waveType    string

	sampleRate float64
	phaseAcc   float64
}

// NewOscillator returns a sine oscillator at 440 Hz, amplitude 0.5.
func NewOscillator() *Oscillator {
	return &Oscillator{
		frequency:   defaultFrequency,
		amplitude:   defaultAmplitude,
		phaseOffset: defaultPhaseOffset,
		waveType:    WaveSine,
		sampleRate:  defaultSampleRate,
	}
}

// Process adds one block of the waveform onto buf. The phase accumulator
// advances after each sample, so the first sample of a fresh oscillator
// is taken at phase zero.
func (o *Oscillator) Process(buf []float64) {
	inc := twoPi * o.frequency / o.sampleRate
	offset := 0.0
	if o.waveType == WaveSine {
		offset = o.phaseOffset * twoPi
	}

	phase := o.phaseAcc
	amp := o.amplitude
	for i := range buf {
		buf[i] += waveSample(o.waveType, phase+offset) * amp
		phase = advancePhase(phase, inc)
	}
	o.phaseAcc = phase
}

// SetParameter updates one of frequency, amplitude, phase, or waveType.
func (o *Oscillator) SetParameter(name string, value Value) error {
	switch name {
	case "frequency":
		return setRanged(&o.frequency, "frequency", value, minFrequency, maxFrequency)
	case "amplitude":
		return setRanged(&o.amplitude, "amplitude", value, minAmplitude, maxAmplitude)
	case "phase":
		return setRanged(&o.phaseOffset, "phase", value, minPhaseOffset, maxPhaseOffset)
	case "waveType":
		return setString(&o.waveType, "waveType", value)
	}
	return unknownParameter(KindOscillator, name)
}

// Parameter returns the named parameter value.
func (o *Oscillator) Parameter(name string) (Value, error) {
	switch name {
	case "frequency":
		return FloatValue(o.frequency), nil
	case "amplitude":
		return FloatValue(o.amplitude), nil
	case "phase":
		return FloatValue(o.phaseOffset), nil
	case "waveType":
		return StringValue(o.waveType), nil
	}
	return Value{}, unknownParameter(KindOscillator, name)
}

// ParameterNames lists the oscillator's parameters.
func (o *Oscillator) ParameterNames() []string {
	return []string{"frequency", "amplitude", "phase", "waveType"}
}

// Reset rewinds the phase accumulator; parameters are preserved.
func (o *Oscillator) Reset() {
	o.phaseAcc = 0
}

// Describe returns a one-line summary.
func (o *Oscillator) Describe() string {
	return fmt.Sprintf("Oscillator: %s wave at %g Hz", o.waveType, o.frequency)
}

// Kind returns KindOscillator.
func (o *Oscillator) Kind() Kind { return KindOscillator }

// SetSampleRate updates the rate used to derive the phase increment.
func (o *Oscillator) SetSampleRate(sampleRate float64) error {
	if err := checkSampleRate(KindOscillator, sampleRate); err != nil {
		return err
	}
	o.sampleRate = sampleRate
	return nil
}
