package stage

import "fmt"

const (
	defaultRate  = 1.0
	defaultDepth = 0.5

	minRate, maxRate   = 0.01, 20.0
	minDepth, maxDepth = 0.0, 1.0
)

// LFO adds a slow modulation waveform onto its input, centered around
// zero and scaled by depth. It shares the oscillator's waveform set but
// has no phase offset parameter.
type LFO struct {
	rate     float64
	depth    float64
	waveType string

	sampleRate float64
	phase      float64
}

// NewLFO returns a sine LFO at 1 Hz, depth 0.5.
func NewLFO() *LFO {
	return &LFO{
		rate:       defaultRate,
		depth:      defaultDepth,
		waveType:   WaveSine,
		sampleRate: defaultSampleRate,
	}
}

// Process adds one block of modulation onto buf.
func (l *LFO) Process(buf []float64) {
	inc := twoPi * l.rate / l.sampleRate

	phase := l.phase
	depth := l.depth
	for i := range buf {
		buf[i] += waveSample(l.waveType, phase) * depth
		phase = advancePhase(phase, inc)
	}
	l.phase = phase
}

// SetParameter updates one of rate, depth, or waveType.
func (l *LFO) SetParameter(name string, value Value) error {
	switch name {
	case "rate":
		return setRanged(&l.rate, "rate", value, minRate, maxRate)
	case "depth":
		return setRanged(&l.depth, "depth", value, minDepth, maxDepth)
	case "waveType":
		return setString(&l.waveType, "waveType", value)
	}
	return unknownParameter(KindLFO, name)
}

// Parameter returns the named parameter value.
func (l *LFO) Parameter(name string) (Value, error) {
	switch name {
	case "rate":
		return FloatValue(l.rate), nil
	case "depth":
		return FloatValue(l.depth), nil
	case "waveType":
		return StringValue(l.waveType), nil
	}
	return Value{}, unknownParameter(KindLFO, name)
}

// ParameterNames lists the LFO's parameters.
func (l *LFO) ParameterNames() []string {
	return []string{"rate", "depth", "waveType"}
}

// Reset rewinds the phase; parameters are preserved.
func (l *LFO) Reset() {
	l.phase = 0
}

// Describe returns a one-line summary.
func (l *LFO) Describe() string {
	return fmt.Sprintf("LFO: %s at %g Hz, depth %g", l.waveType, l.rate, l.depth)
}

// Kind returns KindLFO.
func (l *LFO) Kind() Kind { return KindLFO }

// SetSampleRate updates the rate used to derive the phase increment.
func (l *LFO) SetSampleRate(sampleRate float64) error {
	if err := checkSampleRate(KindLFO, sampleRate); err != nil {
		return err
	}
	l.sampleRate = sampleRate
	return nil
}
