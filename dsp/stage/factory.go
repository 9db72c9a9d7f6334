package stage

import "fmt"

// ParseKind maps a wire-format type name ("oscillator", "filter",
// "envelope", "lfo") to its Kind. Unknown names are rejected, so a bad
// preset fails before any stage is constructed.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "oscillator":
		return KindOscillator, nil
	case "filter":
		return KindFilter, nil
	case "envelope":
		return KindEnvelope, nil
	case "lfo":
		return KindLFO, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// New constructs a fresh stage of kind k with default parameters.
func New(k Kind) (Stage, error) {
	switch k {
	case KindOscillator:
		return NewOscillator(), nil
	case KindFilter:
		return NewFilter(), nil
	case KindEnvelope:
		return NewEnvelope(), nil
	case KindLFO:
		return NewLFO(), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
}
