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
	// dcOffsetThreshold flags a buffer whose mean drifts further
	// than this from zero.
	dcOffsetThreshold = 0.001

	// silenceThresholdRMS flags a buffer quieter than this RMS.
	silenceThresholdRMS = 0.001
)

// ValidateAudio inspects a rendered buffer and returns human-readable
// findings for clipping, DC offset, silence, and denormals. An empty
// slice means the audio passed every check.
func ValidateAudio(buf []float64) []string {
	var issues []string
	if CheckClipping(buf) {
		issues = append(issues, "Audio clipping detected")
	}
	if CheckDCOffset(buf) {
		issues = append(issues, "DC offset detected")
	}
	if CheckSilence(buf) {
		issues = append(issues, "Audio is silent or too quiet")
	}
	if CheckDenormals(buf) {
		issues = append(issues, "Denormal numbers detected")
	}
	return issues
}

// CheckAudioIssues is ValidateAudio under its inspection name.
func CheckAudioIssues(buf []float64) []string {
	return ValidateAudio(buf)
}

// ValidateGraph checks graph structure and parameter health in one
// pass: cycles, disconnected components, and per-parameter findings
// from CheckParameterViolations.
func ValidateGraph(g *graph.Graph) []string {
	var issues []string
	if g.HasCycles() {
		issues = append(issues, "Graph contains cycles")
	}
	if !g.IsConnected() {
		issues = append(issues, "Graph has disconnected components")
	}
	issues = append(issues, CheckParameterViolations(g)...)
	return issues
}

// CheckParameterViolations reads every parameter of every stage and
// reports NaN or Inf floats, plus any parameter that cannot be read
// at all.
func CheckParameterViolations(g *graph.Graph) []string {
	var violations []string
	for _, name := range g.StageNames() {
		s, ok := g.Stage(name)
		if !ok {
			continue
		}
		for _, param := range s.ParameterNames() {
			v, err := s.Parameter(param)
			if err != nil {
				violations = append(violations,
					fmt.Sprintf("Stage %s parameter %s error: %v", name, param, err))
				continue
			}
			if v.Kind() != stage.ValueFloat {
				continue
			}
			if value := v.Float(); math.IsNaN(value) || math.IsInf(value, 0) {
				violations = append(violations,
					fmt.Sprintf("Stage %s parameter %s is invalid", name, param))
			}
		}
	}
	return violations
}

// CheckClipping reports whether any sample reaches full scale.
func CheckClipping(buf []float64) bool {
	return vecmath.MaxAbs(buf) >= 1.0
}

// CheckDCOffset reports whether the buffer mean drifts from zero.
func CheckDCOffset(buf []float64) bool {
	if len(buf) == 0 {
		return false
	}
	mean := vecmath.Sum(buf) / float64(len(buf))
	return math.Abs(mean) > dcOffsetThreshold
}

// CheckSilence reports whether the buffer RMS falls below the silence
// threshold. An empty buffer has no level to judge and passes.
func CheckSilence(buf []float64) bool {
	if len(buf) == 0 {
		return false
	}
	rms := math.Sqrt(vecmath.DotProduct(buf, buf) / float64(len(buf)))
	return rms < silenceThresholdRMS
}

// CheckDenormals reports whether any sample is subnormal.
func CheckDenormals(buf []float64) bool {
	for _, sample := range buf {
		if core.IsSubnormal(sample) {
			return true
		}
	}
	return false
}
