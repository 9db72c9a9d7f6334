// Package graph owns a named collection of processing stages and the
// directed connections between them.
//
// Execution is deliberately linear: Process pushes one evolving buffer
// through every stage in topological order, so a fan-in edge hears the
// mixed result of everything sorted before it rather than an isolated
// branch. Structural problems (cycles, disconnected components, hot
// gain) never raise; Validate reports them as advisory findings while
// Process keeps producing audio.
//
// All iteration over the stage map happens in sorted-name order, which
// makes TopologicalOrder, TotalGain, and Validate reproducible across
// runs.
package graph
