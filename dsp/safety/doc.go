// Package safety keeps arbitrary graph configurations from producing
// unsafe audio: gain staging, true-peak limiting, feedback guarding,
// parameter repair, headroom management, validation, and threshold
// monitoring.
//
// Every function here is a single stateless pass over a Graph and/or a
// rendered buffer. Nothing raises: analyzers return finding lists or
// booleans, mutators move the graph or buffer to a safer state and
// swallow anything that cannot be fixed. All dB conversions floor
// their argument at 1e-10, so silence reads as -200 dB instead of
// negative infinity.
package safety
