package stage

import (
	"fmt"
	"math"
)

const (
	defaultAttack  = 0.01
	defaultDecay   = 0.1
	defaultSustain = 0.7
	defaultRelease = 0.5

	minAttack, maxAttack   = 0.001, 2.0
	minDecay, maxDecay     = 0.001, 2.0
	minSustain, maxSustain = 0.0, 1.0
	minRelease, maxRelease = 0.001, 5.0

	// gateThreshold is the input magnitude above which the envelope
	// considers the gate open.
	gateThreshold = 0.001
)

type envState int

const (
	envIdle envState = iota
	envAttack
	envDecay
	envSustain
	envRelease
)

// Envelope shapes its input's amplitude with an ADSR contour. The gate is
// inferred per sample from the input magnitude: a sample above the
// threshold opens it, one at or below closes it. Attack starts from level
// zero and only from idle, so a re-trigger during release waits for the
// release to finish.
//
// Segment rates are linear: attack climbs to 1 in attack seconds, decay
// falls to the sustain level in decay seconds, release falls from
// wherever it was to 0 in release seconds' worth of full-scale travel.
type Envelope struct {
	attack  float64
	decay   float64
	sustain float64
	release float64

	sampleRate float64
	state      envState
	level      float64
	rate       float64
}

// NewEnvelope returns an envelope with A=10ms D=100ms S=0.7 R=500ms.
func NewEnvelope() *Envelope {
	return &Envelope{
		attack:     defaultAttack,
		decay:      defaultDecay,
		sustain:    defaultSustain,
		release:    defaultRelease,
		sampleRate: defaultSampleRate,
	}
}

// Process scales one block in place by the envelope level.
func (e *Envelope) Process(buf []float64) {
	for i := range buf {
		gate := math.Abs(buf[i]) > gateThreshold
		if gate && e.state == envIdle {
			e.state = envAttack
			e.level = 0
			e.rate = 1 / (e.attack * e.sampleRate)
		} else if !gate && e.state != envIdle && e.state != envRelease {
			e.state = envRelease
			e.rate = 1 / (e.release * e.sampleRate)
		}

		switch e.state {
		case envAttack:
			e.level += e.rate
			if e.level >= 1 {
				e.level = 1
				e.state = envDecay
				e.rate = (1 - e.sustain) / (e.decay * e.sampleRate)
			}
		case envDecay:
			e.level -= e.rate
			if e.level <= e.sustain {
				e.level = e.sustain
				e.state = envSustain
			}
		case envSustain:
			e.level = e.sustain
		case envRelease:
			e.level -= e.rate
			if e.level <= 0 {
				e.level = 0
				e.state = envIdle
			}
		case envIdle:
			e.level = 0
		}

		buf[i] *= e.level
	}
}

// SetParameter updates one of attack, decay, sustain, or release.
func (e *Envelope) SetParameter(name string, value Value) error {
	switch name {
	case "attack":
		return setRanged(&e.attack, "attack", value, minAttack, maxAttack)
	case "decay":
		return setRanged(&e.decay, "decay", value, minDecay, maxDecay)
	case "sustain":
		return setRanged(&e.sustain, "sustain", value, minSustain, maxSustain)
	case "release":
		return setRanged(&e.release, "release", value, minRelease, maxRelease)
	}
	return unknownParameter(KindEnvelope, name)
}

// Parameter returns the named parameter value.
func (e *Envelope) Parameter(name string) (Value, error) {
	switch name {
	case "attack":
		return FloatValue(e.attack), nil
	case "decay":
		return FloatValue(e.decay), nil
	case "sustain":
		return FloatValue(e.sustain), nil
	case "release":
		return FloatValue(e.release), nil
	}
	return Value{}, unknownParameter(KindEnvelope, name)
}

// ParameterNames lists the envelope's parameters.
func (e *Envelope) ParameterNames() []string {
	return []string{"attack", "decay", "sustain", "release"}
}

// Reset returns the state machine to idle; parameters are preserved.
func (e *Envelope) Reset() {
	e.state = envIdle
	e.level = 0
	e.rate = 0
}

// Describe returns a one-line summary.
func (e *Envelope) Describe() string {
	return fmt.Sprintf("Envelope: A=%gs D=%gs S=%g R=%gs", e.attack, e.decay, e.sustain, e.release)
}

// Kind returns KindEnvelope.
func (e *Envelope) Kind() Kind { return KindEnvelope }

// SetSampleRate updates the rate used to derive segment increments.
func (e *Envelope) SetSampleRate(sampleRate float64) error {
	if err := checkSampleRate(KindEnvelope, sampleRate); err != nil {
		return err
	}
	e.sampleRate = sampleRate
	return nil
}
