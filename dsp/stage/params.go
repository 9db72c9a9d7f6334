package stage

import "fmt"

// paramRange is the declared [min, max] of a ranged numeric parameter.
type paramRange struct {
	min, max float64
}

var parameterRanges = map[Kind]map[string]paramRange{
	KindOscillator: {
		"frequency": {minFrequency, maxFrequency},
		"amplitude": {minAmplitude, maxAmplitude},
		"phase":     {minPhaseOffset, maxPhaseOffset},
	},
	KindFilter: {
		"cutoff":    {minCutoff, maxCutoff},
		"resonance": {minResonance, maxResonance},
	},
	KindEnvelope: {
		"attack":  {minAttack, maxAttack},
		"decay":   {minDecay, maxDecay},
		"sustain": {minSustain, maxSustain},
		"release": {minRelease, maxRelease},
	},
	KindLFO: {
		"rate":  {minRate, maxRate},
		"depth": {minDepth, maxDepth},
	},
}

// ParameterRange reports the declared [min, max] of a ranged numeric
// parameter. ok is false for string parameters and unknown names.
func ParameterRange(k Kind, name string) (min, max float64, ok bool) {
	r, ok := parameterRanges[k][name]
	if !ok {
		return 0, 0, false
	}
	return r.min, r.max, true
}

// setRanged validates a float value against [min, max] and stores it.
// The comparisons are ordered, so NaN passes and is stored as-is; the
// chaos repair pass in dsp/safety is responsible for healing it.
func setRanged(dst *float64, name string, value Value, min, max float64) error {
	if value.Kind() != ValueFloat {
		return fmt.Errorf("%s: %w: want float, got %s", name, ErrTypeMismatch, value.Kind())
	}
	v := value.Float()
	if v < min || v > max {
		return fmt.Errorf("%s: %w: must be in [%v, %v]: %v", name, ErrOutOfRange, min, max, v)
	}
	*dst = v
	return nil
}

// setString stores a string value. Names outside the recognized waveform
// or response sets are stored unchanged; the stages define fallback
// behavior for them.
func setString(dst *string, name string, value Value) error {
	if value.Kind() != ValueString {
		return fmt.Errorf("%s: %w: want string, got %s", name, ErrTypeMismatch, value.Kind())
	}
	*dst = value.Str()
	return nil
}

func unknownParameter(k Kind, name string) error {
	return fmt.Errorf("%s: %w: %q", k, ErrUnknownParameter, name)
}
