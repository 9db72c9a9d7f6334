// Package stage implements the processing units that populate a signal
// graph: oscillator, filter, envelope, and low-frequency oscillator.
//
// Every stage satisfies the Stage interface: block processing in place,
// tagged parameter access by name with type and range checking, transient
// state reset, and a human-readable description. The set of kinds is
// closed; new units are added here rather than registered at runtime.
package stage
