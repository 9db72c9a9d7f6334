package safety

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/ken0182/synthgraph/dsp/core"
	"github.com/ken0182/synthgraph/dsp/graph"
	"github.com/ken0182/synthgraph/dsp/stage"
)

const (
	// maxParameterMagnitude is the runaway bound: float parameters
	// beyond ±1000 are treated as chaotic.
	maxParameterMagnitude = 1000.0

	// chaosVarianceLimit flags a buffer whose sample variance exceeds
	// it. A heuristic, not a Lyapunov measure.
	chaosVarianceLimit = 1.0
)

// PreventChaos repairs runaway float parameters in place: NaN and Inf
// become 0.0, magnitudes beyond 1000 are clamped into [-1000, 1000].
// A repair value outside the parameter's declared range is clamped
// into the range instead, so the pass always lands on a settable
// value and never errors.
func PreventChaos(g *graph.Graph) {
	for _, name := range g.StageNames() {
		s, ok := g.Stage(name)
		if !ok {
			continue
		}
		for _, param := range s.ParameterNames() {
			v, err := s.Parameter(param)
			if err != nil || v.Kind() != stage.ValueFloat {
				continue
			}
			value := v.Float()

			var repaired float64
			switch {
			case math.IsNaN(value) || math.IsInf(value, 0):
				repaired = 0
			case math.Abs(value) > maxParameterMagnitude:
				repaired = core.Clamp(value, -maxParameterMagnitude, maxParameterMagnitude)
			default:
				continue
			}

			if min, max, ok := stage.ParameterRange(s.Kind(), param); ok {
				repaired = core.Clamp(repaired, min, max)
			}
			_ = s.SetParameter(param, stage.FloatValue(repaired))
		}
	}
}

// CheckChaosIndicators reports runaway float parameters without
// mutating anything. An infinity trips both the NaN/Inf check and the
// magnitude check, so it yields two findings.
func CheckChaosIndicators(g *graph.Graph) []string {
	var indicators []string
	for _, name := range g.StageNames() {
		s, ok := g.Stage(name)
		if !ok {
			continue
		}
		for _, param := range s.ParameterNames() {
			v, err := s.Parameter(param)
			if err != nil || v.Kind() != stage.ValueFloat {
				continue
			}
			value := v.Float()
			if math.IsNaN(value) || math.IsInf(value, 0) {
				indicators = append(indicators,
					fmt.Sprintf("Stage %s parameter %s is NaN/Inf", name, param))
			}
			if math.Abs(value) > maxParameterMagnitude {
				indicators = append(indicators,
					fmt.Sprintf("Stage %s parameter %s has extreme value: %g", name, param, value))
			}
		}
	}
	return indicators
}

// CheckParameterBounds reports whether every float parameter on every
// stage is finite and within the runaway bound.
func CheckParameterBounds(g *graph.Graph) bool {
	for _, name := range g.StageNames() {
		s, ok := g.Stage(name)
		if !ok {
			continue
		}
		for _, param := range s.ParameterNames() {
			v, err := s.Parameter(param)
			if err != nil || v.Kind() != stage.ValueFloat {
				continue
			}
			value := v.Float()
			if math.IsNaN(value) || math.IsInf(value, 0) || math.Abs(value) > maxParameterMagnitude {
				return false
			}
		}
	}
	return true
}

// MonitorRunawayParameters is CheckParameterBounds under its
// monitoring name.
func MonitorRunawayParameters(g *graph.Graph) bool {
	return CheckParameterBounds(g)
}

// DetectChaos flags a buffer whose sample variance exceeds 1.0. An
// empty buffer is never chaotic.
func DetectChaos(buf []float64) bool {
	if len(buf) == 0 {
		return false
	}

	n := float64(len(buf))
	mean := vecmath.Sum(buf) / n

	variance := 0.0
	for _, sample := range buf {
		diff := sample - mean
		variance += diff * diff
	}
	variance /= n

	return variance > chaosVarianceLimit
}
