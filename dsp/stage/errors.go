package stage

import "errors"

var (
	// ErrUnknownParameter is returned when a stage does not declare the
	// named parameter.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrTypeMismatch is returned when a tagged value's type does not
	// match the parameter's declared type.
	ErrTypeMismatch = errors.New("parameter type mismatch")

	// ErrOutOfRange is returned when a ranged numeric parameter falls
	// outside its declared [min, max].
	ErrOutOfRange = errors.New("parameter out of range")

	// ErrUnknownKind is returned by the factory for a stage type outside
	// the closed kind set.
	ErrUnknownKind = errors.New("unknown stage kind")
)
