package graph

import (
	"fmt"

	"github.com/ken0182/synthgraph/dsp/core"
	"github.com/ken0182/synthgraph/dsp/stage"
)

// Process runs one block through the graph in place. Every stage sees
// the buffer as left by the stages sorted before it, a single evolving
// signal rather than per-edge routing. An empty graph or an empty
// order passes the input through untouched. Names in the order that
// are not registered stages are skipped.
func (g *Graph) Process(buf []float64) {
	if len(g.stages) == 0 {
		return
	}

	order := g.TopologicalOrder()
	if len(order) == 0 {
		return
	}

	for _, name := range order {
		if s, ok := g.stages[name]; ok {
			s.Process(buf)
		}
	}
}

// TotalGain estimates the graph's gain as the product of all oscillator
// amplitudes, 1.0 when there are none. Filters, envelopes, and LFOs do
// not contribute.
func (g *Graph) TotalGain() float64 {
	total := 1.0
	for _, name := range g.StageNames() {
		s := g.stages[name]
		if s.Kind() != stage.KindOscillator {
			continue
		}
		v, err := s.Parameter("amplitude")
		if err != nil || v.Kind() != stage.ValueFloat {
			continue
		}
		total *= v.Float()
	}
	return total
}

// Render synthesizes numSamples of output from silence: it propagates
// the sample rate to every stage and processes a zero buffer, so
// generator stages drive the result.
func Render(g *Graph, numSamples int, sampleRate float64) ([]float64, error) {
	if numSamples < 0 {
		return nil, fmt.Errorf("render length must be >= 0: %d", numSamples)
	}
	if err := g.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	buf := core.Silence(numSamples)
	g.Process(buf)
	return buf, nil
}
