package safety

import (
	"strings"

	"github.com/ken0182/synthgraph/dsp/graph"
)

// ApplyProtection runs the full protection chain on a graph: gain
// staging toward the loudness target, feedback protection, chaos
// repair, and headroom reservation.
func ApplyProtection(g *graph.Graph, c Constraints) {
	StageGain(g, c.LUFSTarget)
	ApplyFeedbackProtection(g, nil)
	PreventChaos(g)
	ManageHeadroom(g, DefaultTargetHeadroomDB)
}

// ProtectAgainstIssues runs only the basic measures: gain staging
// toward the default target and feedback protection.
func ProtectAgainstIssues(g *graph.Graph) {
	AutoGainStage(g)
	ApplyFeedbackProtection(g, nil)
}

// EmergencyLimit reins in a buffer that already escaped: hard clamp
// at -0.1 dB, then true peak limiting to -1 dB.
func EmergencyLimit(buf []float64) {
	HardLimit(buf, DefaultHardLimitDB)
	LimitTruePeak(buf, DefaultTruePeakLimitDB)
}

// IsProtected reports whether the graph carries a protection stage,
// recognized by "limiter" or "protection" in the stage name.
func IsProtected(g *graph.Graph) bool {
	for _, name := range g.StageNames() {
		if strings.Contains(name, "limiter") || strings.Contains(name, "protection") {
			return true
		}
	}
	return false
}
