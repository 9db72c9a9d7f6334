// Package engine wraps a signal graph for application use: one mutex
// makes every structural edit, parameter access, preset load/save, and
// render call exclusive, so edits and renders never interleave.
//
// Renders always run to completion; the engine measures wall-clock
// duration afterwards and logs a warning when a render missed its
// real-time budget. It never preempts. Settings come from functional
// options or a TOML config file, and all logging goes through an
// injected zerolog.Logger that defaults to a no-op.
package engine

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ken0182/synthgraph/dsp/core"
	"github.com/ken0182/synthgraph/dsp/graph"
	"github.com/ken0182/synthgraph/dsp/safety"
)

// Engine owns a graph and serializes all access to it.
type Engine struct {
	mu sync.Mutex

	graph       *graph.Graph
	sampleRate  float64
	blockSize   int
	autoProtect bool
	limitOutput bool
	constraints safety.Constraints
	lastError   string
	log         zerolog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithSampleRate sets the render sample rate. Non-positive and
// non-finite rates are ignored.
func WithSampleRate(sampleRate float64) Option {
	return func(e *Engine) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 0) {
			e.sampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the render block size. Non-positive sizes are
// ignored.
func WithBlockSize(blockSize int) Option {
	return func(e *Engine) {
		if blockSize > 0 {
			e.blockSize = blockSize
		}
	}
}

// WithLogger routes engine logging through logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = logger
	}
}

// WithAutoProtect enables the protection pass on preset load: loaded
// graphs are gain-staged and headroom-managed before validation, so
// hot but repairable presets install instead of being rejected.
func WithAutoProtect(enabled bool) Option {
	return func(e *Engine) {
		e.autoProtect = enabled
	}
}

// WithOutputLimit enables true-peak limiting of every rendered buffer
// at the configured constraint ceiling.
func WithOutputLimit(enabled bool) Option {
	return func(e *Engine) {
		e.limitOutput = enabled
	}
}

// WithConstraints replaces the safety constraints used by the
// protection pass and the output limiter.
func WithConstraints(c safety.Constraints) Option {
	return func(e *Engine) {
		e.constraints = c
	}
}

// New returns an engine with an empty graph at 44.1 kHz and
// 1024-sample blocks, protection and limiting off, and no-op logging.
func New(opts ...Option) *Engine {
	cfg := core.DefaultProcessorConfig()
	e := &Engine{
		graph:       graph.New(),
		sampleRate:  cfg.SampleRate,
		blockSize:   cfg.BlockSize,
		constraints: safety.DefaultConstraints(),
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// ProcessBlock runs one block through the graph in place. An empty
// graph passes the audio through untouched.
func (e *Engine) ProcessBlock(buf []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.graph.Process(buf)
}

// Render synthesizes numSamples of output from silence, processing in
// block-size chunks. The sample rate is pushed to every stage first,
// so stages added since the last render pick it up. Wall-clock
// duration is compared to the real-time budget numSamples/sampleRate
// afterwards; an overrun logs a warning but the buffer is still
// returned whole.
func (e *Engine) Render(numSamples int) ([]float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if numSamples < 0 {
		return nil, fmt.Errorf("render length must be >= 0: %d", numSamples)
	}
	if err := e.graph.SetSampleRate(e.sampleRate); err != nil {
		return nil, err
	}

	start := time.Now()
	buf := core.Silence(numSamples)
	for off := 0; off < numSamples; off += e.blockSize {
		end := off + e.blockSize
		if end > numSamples {
			end = numSamples
		}
		e.graph.Process(buf[off:end])
	}
	if e.limitOutput {
		safety.LimitTruePeak(buf, e.constraints.TruePeakLimitDB)
	}
	elapsed := time.Since(start)

	budget := time.Duration(float64(numSamples) / e.sampleRate * float64(time.Second))
	event := e.log.Debug()
	if budget > 0 && elapsed > budget {
		event = e.log.Warn()
	}
	event.
		Int("samples", numSamples).
		Float64("sample_rate", e.sampleRate).
		Dur("elapsed", elapsed).
		Dur("budget", budget).
		Msg("render")

	return buf, nil
}

// Reset clears the transient state of every stage; topology and
// parameters are preserved.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.graph.Reset()
}

// SetSampleRate validates the rate, pushes it to every stage, and
// stores it for future renders.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sample rate must be > 0 and finite: %f", sampleRate)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.graph.SetSampleRate(sampleRate); err != nil {
		return err
	}
	e.sampleRate = sampleRate
	return nil
}

// SampleRate returns the current render sample rate.
func (e *Engine) SampleRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sampleRate
}

// SetBlockSize sets the chunk length used by Render.
func (e *Engine) SetBlockSize(blockSize int) error {
	if blockSize <= 0 {
		return fmt.Errorf("block size must be > 0: %d", blockSize)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.blockSize = blockSize
	return nil
}

// BlockSize returns the render chunk length.
func (e *Engine) BlockSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blockSize
}

// LastError returns the failure reason recorded by the most recent
// preset load or save, empty after a success.
func (e *Engine) LastError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastError
}

// fail records msg as the last error and logs it. It always returns
// false so preset operations can fail in one statement.
func (e *Engine) fail(op, msg string) bool {
	e.lastError = msg
	e.log.Error().Str("op", op).Msg(msg)
	return false
}
