package engine

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/cwbudde/algo-vecmath"
	"github.com/rs/zerolog"

	"github.com/ken0182/synthgraph/dsp/core"
	"github.com/ken0182/synthgraph/dsp/graph"
	"github.com/ken0182/synthgraph/dsp/stage"
	"github.com/ken0182/synthgraph/internal/testutil"
)

func newStage(t *testing.T, k stage.Kind) stage.Stage {
	t.Helper()
	s, err := stage.New(k)
	if err != nil {
		t.Fatalf("New(%v): %v", k, err)
	}
	return s
}

func setFloat(t *testing.T, e *Engine, stageName, param string, value float64) {
	t.Helper()
	if err := e.SetParameter(stageName, param, stage.FloatValue(value)); err != nil {
		t.Fatalf("SetParameter(%s, %s, %g): %v", stageName, param, value, err)
	}
}

// rateRecorder captures the last sample rate pushed into it.
type rateRecorder struct {
	rate float64
}

func (r *rateRecorder) Process([]float64) {}

func (r *rateRecorder) SetParameter(string, stage.Value) error {
	return stage.ErrUnknownParameter
}

func (r *rateRecorder) Parameter(string) (stage.Value, error) {
	return stage.Value{}, stage.ErrUnknownParameter
}

func (r *rateRecorder) ParameterNames() []string { return nil }
func (r *rateRecorder) Reset()                   {}
func (r *rateRecorder) Describe() string         { return "rate recorder" }
func (r *rateRecorder) Kind() stage.Kind         { return stage.KindFilter }

func (r *rateRecorder) SetSampleRate(rate float64) error {
	r.rate = rate
	return nil
}

func TestNewDefaults(t *testing.T) {
	e := New()

	if got := e.SampleRate(); got != 44100 {
		t.Errorf("SampleRate() = %g, want 44100", got)
	}
	if got := e.BlockSize(); got != 1024 {
		t.Errorf("BlockSize() = %d, want 1024", got)
	}
	if got := e.LastError(); got != "" {
		t.Errorf("LastError() = %q, want empty", got)
	}
	if got := e.NumStages(); got != 0 {
		t.Errorf("NumStages() = %d, want 0", got)
	}
	if got := e.TotalGain(); got != 1.0 {
		t.Errorf("TotalGain() = %g, want 1", got)
	}
}

func TestNewAppliesOptions(t *testing.T) {
	e := New(WithSampleRate(48000), WithBlockSize(256))

	if got := e.SampleRate(); got != 48000 {
		t.Errorf("SampleRate() = %g, want 48000", got)
	}
	if got := e.BlockSize(); got != 256 {
		t.Errorf("BlockSize() = %d, want 256", got)
	}
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	e := New(WithSampleRate(-1), WithSampleRate(math.Inf(1)), WithBlockSize(0))

	if got := e.SampleRate(); got != 44100 {
		t.Errorf("SampleRate() = %g, want default 44100", got)
	}
	if got := e.BlockSize(); got != 1024 {
		t.Errorf("BlockSize() = %d, want default 1024", got)
	}
}

func TestProcessBlockEmptyGraphPassesThrough(t *testing.T) {
	e := New()
	buf := []float64{0.25, -0.5, 0.125, 0}
	want := core.Clone(buf)

	e.ProcessBlock(buf)

	if !reflect.DeepEqual(buf, want) {
		t.Errorf("ProcessBlock on empty graph altered buffer: %v, want %v", buf, want)
	}
}

func TestProcessBlockRunsGraph(t *testing.T) {
	e := New()
	e.AddStage("osc1", newStage(t, stage.KindOscillator))

	buf := make([]float64, 128)
	e.ProcessBlock(buf)

	if peak := vecmath.MaxAbs(buf); peak == 0 {
		t.Error("ProcessBlock with an oscillator left the buffer silent")
	}
}

func TestSetSampleRatePropagatesToStages(t *testing.T) {
	e := New()
	rec := &rateRecorder{}
	e.AddStage("rec", rec)

	if err := e.SetSampleRate(48000); err != nil {
		t.Fatalf("SetSampleRate(48000): %v", err)
	}
	if rec.rate != 48000 {
		t.Errorf("stage saw sample rate %g, want 48000", rec.rate)
	}
	if got := e.SampleRate(); got != 48000 {
		t.Errorf("SampleRate() = %g, want 48000", got)
	}
}

func TestSetSampleRateRejectsInvalid(t *testing.T) {
	for _, rate := range []float64{0, -44100, math.NaN(), math.Inf(1)} {
		e := New()
		if err := e.SetSampleRate(rate); err == nil {
			t.Errorf("SetSampleRate(%g) accepted, want error", rate)
		}
		if got := e.SampleRate(); got != 44100 {
			t.Errorf("SampleRate() after rejected set = %g, want 44100", got)
		}
	}
}

func TestSetBlockSize(t *testing.T) {
	e := New()
	if err := e.SetBlockSize(256); err != nil {
		t.Fatalf("SetBlockSize(256): %v", err)
	}
	if got := e.BlockSize(); got != 256 {
		t.Errorf("BlockSize() = %d, want 256", got)
	}

	for _, n := range []int{0, -64} {
		if err := e.SetBlockSize(n); err == nil {
			t.Errorf("SetBlockSize(%d) accepted, want error", n)
		}
	}
	if got := e.BlockSize(); got != 256 {
		t.Errorf("BlockSize() after rejected set = %d, want 256", got)
	}
}

func TestSetParameterMissingStageIsNoOp(t *testing.T) {
	e := New()
	if err := e.SetParameter("ghost", "frequency", stage.FloatValue(880)); err != nil {
		t.Errorf("SetParameter on missing stage = %v, want nil", err)
	}
}

func TestSetParameterReturnsStageErrors(t *testing.T) {
	e := New()
	e.AddStage("osc1", newStage(t, stage.KindOscillator))

	err := e.SetParameter("osc1", "frequency", stage.FloatValue(-5))
	if !errors.Is(err, stage.ErrOutOfRange) {
		t.Fatalf("SetParameter(frequency, -5) = %v, want ErrOutOfRange", err)
	}

	v, err := e.Parameter("osc1", "frequency")
	if err != nil {
		t.Fatalf("Parameter(frequency): %v", err)
	}
	if v.Float() != 440 {
		t.Errorf("frequency after rejected set = %g, want 440", v.Float())
	}
}

func TestParameterDefaultsForMissingStage(t *testing.T) {
	e := New()
	v, err := e.Parameter("ghost", "frequency")
	if err != nil {
		t.Fatalf("Parameter on missing stage: %v", err)
	}
	if v.Kind() != stage.ValueFloat || v.Float() != 0 {
		t.Errorf("Parameter on missing stage = %v, want float 0", v)
	}
}

func TestParameterReadsLiveValue(t *testing.T) {
	e := New()
	e.AddStage("osc1", newStage(t, stage.KindOscillator))
	setFloat(t, e, "osc1", "frequency", 880)

	v, err := e.Parameter("osc1", "frequency")
	if err != nil {
		t.Fatalf("Parameter(frequency): %v", err)
	}
	if v.Float() != 880 {
		t.Errorf("frequency = %g, want 880", v.Float())
	}
}

func TestStageAndConnectionOps(t *testing.T) {
	e := New()
	e.AddStage("osc1", newStage(t, stage.KindOscillator))
	e.AddStage("filter1", newStage(t, stage.KindFilter))
	e.AddConnection(graph.NewConnection("osc1", "filter1"))

	if got := e.StageNames(); !reflect.DeepEqual(got, []string{"filter1", "osc1"}) {
		t.Errorf("StageNames() = %v, want [filter1 osc1]", got)
	}
	if got := len(e.Connections()); got != 1 {
		t.Errorf("len(Connections()) = %d, want 1", got)
	}

	e.RemoveConnection("osc1", "filter1")
	if got := len(e.Connections()); got != 0 {
		t.Errorf("len(Connections()) after remove = %d, want 0", got)
	}

	e.RemoveStage("filter1")
	if got := e.NumStages(); got != 1 {
		t.Errorf("NumStages() after remove = %d, want 1", got)
	}
}

func TestRenderMatchesUnchunkedGraphRender(t *testing.T) {
	e := New(WithBlockSize(64))
	e.AddStage("osc1", newStage(t, stage.KindOscillator))
	setFloat(t, e, "osc1", "frequency", 441)

	got, err := e.Render(256)
	if err != nil {
		t.Fatalf("Render(256): %v", err)
	}
	testutil.RequireFinite(t, got)

	g := graph.New()
	s := newStage(t, stage.KindOscillator)
	if err := s.SetParameter("frequency", stage.FloatValue(441)); err != nil {
		t.Fatalf("SetParameter(frequency, 441): %v", err)
	}
	g.AddStage("osc1", s)
	want, err := graph.Render(g, 256, 44100)
	if err != nil {
		t.Fatalf("graph.Render: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Error("chunked engine render differs from one-shot graph render")
	}
}

func TestRenderNegativeCountFails(t *testing.T) {
	e := New()
	if _, err := e.Render(-1); err == nil {
		t.Error("Render(-1) accepted, want error")
	}
}

func TestRenderZeroSamples(t *testing.T) {
	e := New()
	buf, err := e.Render(0)
	if err != nil {
		t.Fatalf("Render(0): %v", err)
	}
	if len(buf) != 0 {
		t.Errorf("len(Render(0)) = %d, want 0", len(buf))
	}
}

func TestRenderOutputLimit(t *testing.T) {
	build := func(limited bool) *Engine {
		var e *Engine
		if limited {
			e = New(WithOutputLimit(true))
		} else {
			e = New()
		}
		e.AddStage("osc1", newStage(t, stage.KindOscillator))
		setFloat(t, e, "osc1", "frequency", 441)
		setFloat(t, e, "osc1", "amplitude", 1.0)
		return e
	}

	raw, err := build(false).Render(1024)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if peak := vecmath.MaxAbs(raw); math.Abs(peak-1.0) > 1e-12 {
		t.Fatalf("unlimited peak = %g, want 1.0", peak)
	}

	limited, err := build(true).Render(1024)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := core.DBToLinear(-1)
	if peak := vecmath.MaxAbs(limited); math.Abs(peak-want) > 1e-12 {
		t.Errorf("limited peak = %g, want %g", peak, want)
	}
}

func TestResetRewindsStageState(t *testing.T) {
	e := New()
	e.AddStage("osc1", newStage(t, stage.KindOscillator))

	first, err := e.Render(100)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := e.Render(100)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if reflect.DeepEqual(first, second) {
		t.Fatal("second render equals first, expected phase to advance")
	}

	e.Reset()
	third, err := e.Render(100)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !reflect.DeepEqual(first, third) {
		t.Error("render after Reset differs from a fresh render")
	}
}

func TestValidateReportsGraphFindings(t *testing.T) {
	e := New()
	want := []string{"Total gain >= 1.0, potential feedback instability"}
	if got := e.Validate(); !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() on empty graph = %v, want %v", got, want)
	}

	e.AddStage("osc1", newStage(t, stage.KindOscillator))
	if got := e.Validate(); len(got) != 0 {
		t.Errorf("Validate() on healthy graph = %v, want none", got)
	}
}

func TestRenderLogsEvent(t *testing.T) {
	var buf bytes.Buffer
	e := New(WithLogger(zerolog.New(&buf)))
	e.AddStage("osc1", newStage(t, stage.KindOscillator))

	if _, err := e.Render(64); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"message":"render"`) {
		t.Errorf("log output missing render event: %s", out)
	}
	if !strings.Contains(out, `"samples":64`) {
		t.Errorf("log output missing sample count: %s", out)
	}
}

func TestConcurrentAccessIsSerialized(t *testing.T) {
	e := New(WithBlockSize(32))
	e.AddStage("osc1", newStage(t, stage.KindOscillator))

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := range 50 {
			freq := 220.0 + float64(i)
			if err := e.SetParameter("osc1", "frequency", stage.FloatValue(freq)); err != nil {
				t.Errorf("SetParameter: %v", err)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for range 50 {
			if _, err := e.Render(64); err != nil {
				t.Errorf("Render: %v", err)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for range 50 {
			if _, err := e.Parameter("osc1", "frequency"); err != nil {
				t.Errorf("Parameter: %v", err)
			}
			e.TotalGain()
		}
	}()
	wg.Wait()
}
