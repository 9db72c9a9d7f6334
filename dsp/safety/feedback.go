package safety

import "github.com/ken0182/synthgraph/dsp/graph"

// stabilityMargin leaves headroom under the theoretical runaway point:
// loop gain is flagged at 0.99 rather than 1.0.
const stabilityMargin = 0.99

// ProtectionFunc inserts protective measures (limiter stages, gain
// trims) into an unstable graph. ApplyFeedbackProtection calls it only
// when the stability check fails.
type ProtectionFunc func(g *graph.Graph)

// LoopGain estimates the graph's feedback loop gain as the product of
// oscillator amplitudes. It is the same coarse proxy as
// Graph.TotalGain; filters and modulators are ignored.
func LoopGain(g *graph.Graph) float64 {
	return g.TotalGain()
}

// IsStable reports whether a loop gain stays under the safety margin.
func IsStable(loopGain float64) bool {
	return loopGain < stabilityMargin
}

// CheckFeedbackStability reports whether the graph's estimated loop
// gain is within the stability margin.
func CheckFeedbackStability(g *graph.Graph) bool {
	return IsStable(LoopGain(g))
}

// CheckRootLocusStability applies the textbook bound instead of the
// margined one: stable iff loop gain < 1.0.
func CheckRootLocusStability(g *graph.Graph) bool {
	return LoopGain(g) < 1.0
}

// ApplyFeedbackProtection runs the caller's protection hook when the
// graph is unstable and reports whether instability was found. A nil
// hook keeps the baseline behavior: detection without intervention.
func ApplyFeedbackProtection(g *graph.Graph, protect ProtectionFunc) bool {
	if CheckFeedbackStability(g) {
		return false
	}
	if protect != nil {
		protect(g)
	}
	return true
}
