package safety

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/ken0182/synthgraph/dsp/core"
	"github.com/ken0182/synthgraph/dsp/graph"
	"github.com/ken0182/synthgraph/dsp/stage"
)

const (
	// DefaultTargetHeadroomDB is the headroom reserved above the
	// rendered peak when staging a graph.
	DefaultTargetHeadroomDB = 6.0

	// DefaultMinHeadroomDB is the floor below which MonitorHeadroom
	// reports trouble.
	DefaultMinHeadroomDB = 3.0
)

// Headroom returns the distance in dB between the buffer peak and
// full scale. A peak above 1.0 yields a negative result; a silent
// buffer yields 0 because there is no peak to measure against.
func Headroom(buf []float64) float64 {
	peak := vecmath.MaxAbs(buf)
	if peak <= 0 {
		return 0
	}
	return 20 * math.Log10(1/peak)
}

// ManageHeadroom scales every oscillator amplitude in the graph down
// by targetDB. The scaling is unconditional, so applying it twice
// halves the level twice; callers reserve headroom once, after gain
// staging.
func ManageHeadroom(g *graph.Graph, targetDB float64) {
	scale := core.DBToLinear(-targetDB)
	for _, name := range g.StageNames() {
		s, ok := g.Stage(name)
		if !ok || s.Kind() != stage.KindOscillator {
			continue
		}
		v, err := s.Parameter("amplitude")
		if err != nil || v.Kind() != stage.ValueFloat {
			continue
		}
		_ = s.SetParameter("amplitude", stage.FloatValue(v.Float()*scale))
	}
}

// ApplyHeadroomCompensation reserves the default headroom on a graph.
func ApplyHeadroomCompensation(g *graph.Graph) {
	ManageHeadroom(g, DefaultTargetHeadroomDB)
}

// AdjustHeadroom attenuates the buffer so its headroom reaches
// targetDB. It only ever turns the level down: a buffer that already
// has more headroom than the target is left alone.
func AdjustHeadroom(buf []float64, targetDB float64) {
	current := Headroom(buf)
	if current >= targetDB {
		return
	}
	vecmath.ScaleBlockInPlace(buf, core.DBToLinear(current-targetDB))
}

// MonitorHeadroom reports whether the buffer keeps at least minDB of
// headroom.
func MonitorHeadroom(buf []float64, minDB float64) bool {
	return Headroom(buf) >= minDB
}
