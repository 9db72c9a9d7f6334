package safety

import (
	"fmt"
	"sort"
	"testing"

	"github.com/ken0182/synthgraph/dsp/graph"
	"github.com/ken0182/synthgraph/dsp/stage"
)

func mustStage(t *testing.T, k stage.Kind) stage.Stage {
	t.Helper()
	s, err := stage.New(k)
	if err != nil {
		t.Fatalf("New(%v): %v", k, err)
	}
	return s
}

func setFloat(t *testing.T, s stage.Stage, name string, value float64) {
	t.Helper()
	if err := s.SetParameter(name, stage.FloatValue(value)); err != nil {
		t.Fatalf("SetParameter(%s, %g): %v", name, value, err)
	}
}

func floatParam(t *testing.T, s stage.Stage, name string) float64 {
	t.Helper()
	v, err := s.Parameter(name)
	if err != nil {
		t.Fatalf("Parameter(%s): %v", name, err)
	}
	return v.Float()
}

func oscillatorGraph(t *testing.T, amps map[string]float64) *graph.Graph {
	t.Helper()
	g := graph.New()
	for name, amp := range amps {
		s := mustStage(t, stage.KindOscillator)
		setFloat(t, s, "amplitude", amp)
		g.AddStage(name, s)
	}
	return g
}

// stubStage lets tests plant parameter values the built-in stages
// reject, such as amplitudes above 1 or infinities in ranged fields.
type stubStage struct {
	kind     stage.Kind
	params   map[string]stage.Value
	errParam string
}

func newStub(k stage.Kind) *stubStage {
	return &stubStage{kind: k, params: make(map[string]stage.Value)}
}

func (s *stubStage) Process(buf []float64) {}

func (s *stubStage) SetParameter(name string, value stage.Value) error {
	s.params[name] = value
	return nil
}

func (s *stubStage) Parameter(name string) (stage.Value, error) {
	if name == s.errParam {
		return stage.Value{}, fmt.Errorf("parameter %s is unreadable", name)
	}
	v, ok := s.params[name]
	if !ok {
		return stage.Value{}, stage.ErrUnknownParameter
	}
	return v, nil
}

func (s *stubStage) ParameterNames() []string {
	names := make([]string, 0, len(s.params))
	for name := range s.params {
		names = append(names, name)
	}
	if s.errParam != "" {
		names = append(names, s.errParam)
	}
	sort.Strings(names)
	return names
}

func (s *stubStage) Reset() {}

func (s *stubStage) Describe() string { return "stub" }

func (s *stubStage) Kind() stage.Kind { return s.kind }

func (s *stubStage) SetSampleRate(sampleRate float64) error { return nil }
