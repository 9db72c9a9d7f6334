package safety

import (
	"fmt"

	"github.com/ken0182/synthgraph/dsp/core"
	"github.com/ken0182/synthgraph/dsp/graph"
	"github.com/ken0182/synthgraph/dsp/stage"
)

const (
	// DefaultTargetGainDB is the gain-staging target used by AutoGainStage.
	DefaultTargetGainDB = -18.0

	// gainToleranceDB is how far above target a stage may sit before
	// StageGain pulls it down.
	gainToleranceDB = 3.0
)

// CalculateStageGain estimates one stage's gain contribution in dB.
// Only oscillators are modeled (20*log10 of their amplitude); every
// other kind reads as 0 dB. The estimate deliberately ignores filter,
// envelope, and LFO contributions.
func CalculateStageGain(s stage.Stage) float64 {
	if s.Kind() != stage.KindOscillator {
		return 0
	}
	v, err := s.Parameter("amplitude")
	if err != nil || v.Kind() != stage.ValueFloat {
		return 0
	}
	return core.AmplitudeToDB(v.Float())
}

// StageGain pulls every stage sitting more than 3 dB above targetDB
// down to the target by overwriting its amplitude.
func StageGain(g *graph.Graph, targetDB float64) {
	for _, name := range g.StageNames() {
		s, ok := g.Stage(name)
		if !ok {
			continue
		}
		if CalculateStageGain(s) > targetDB+gainToleranceDB {
			adjustStageGain(s, targetDB)
		}
	}
}

// AutoGainStage runs StageGain at the -18 dB default target.
func AutoGainStage(g *graph.Graph) {
	StageGain(g, DefaultTargetGainDB)
}

// CheckGainStaging reports stages with positive gain or gain below
// -30 dB. Non-oscillator stages read as 0 dB and are never reported.
func CheckGainStaging(g *graph.Graph) []string {
	var issues []string
	for _, name := range g.StageNames() {
		s, ok := g.Stage(name)
		if !ok {
			continue
		}
		gain := CalculateStageGain(s)
		if gain > 0 {
			issues = append(issues, fmt.Sprintf("Stage %s has positive gain: %g dB", name, gain))
		}
		if gain < -30 {
			issues = append(issues, fmt.Sprintf("Stage %s has very low gain: %g dB", name, gain))
		}
	}
	return issues
}

func adjustStageGain(s stage.Stage, targetDB float64) {
	if s.Kind() != stage.KindOscillator {
		return
	}
	_ = s.SetParameter("amplitude", stage.FloatValue(core.DBToLinear(targetDB)))
}
