package engine

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/ken0182/synthgraph/dsp/core"
	"github.com/ken0182/synthgraph/dsp/safety"
)

// Config holds the engine settings read from a TOML file.
type Config struct {
	// SampleRate is the render sample rate in Hz.
	SampleRate float64
	// BlockSize is the render chunk length in samples.
	BlockSize int
	// AutoProtect runs the protection pass on every preset load.
	AutoProtect bool
	// LimitOutput true-peak limits every rendered buffer.
	LimitOutput bool
	// LUFSTargetDB is the loudness target used by the protection pass.
	LUFSTargetDB float64
	// TruePeakLimitDB is the output limiter ceiling.
	TruePeakLimitDB float64
}

// config.toml key mapping to Config fields.
type fileConfig struct {
	SampleRate      float64 `toml:"sample_rate"`
	BlockSize       int     `toml:"block_size"`
	AutoProtect     bool    `toml:"auto_protect"`
	LimitOutput     bool    `toml:"limit_output"`
	LUFSTargetDB    float64 `toml:"lufs_target_db"`
	TruePeakLimitDB float64 `toml:"true_peak_limit_db"`
}

// DefaultConfig returns the nominal engine settings: 44.1 kHz,
// 1024-sample blocks, protection and limiting off, and the production
// safety targets.
func DefaultConfig() Config {
	proc := core.DefaultProcessorConfig()
	c := safety.DefaultConstraints()
	return Config{
		SampleRate:      proc.SampleRate,
		BlockSize:       proc.BlockSize,
		AutoProtect:     false,
		LimitOutput:     false,
		LUFSTargetDB:    c.LUFSTarget,
		TruePeakLimitDB: c.TruePeakLimitDB,
	}
}

// LoadConfig reads a TOML settings file and overlays it on the
// defaults: keys absent from the file keep their default values, and
// unknown keys are rejected rather than silently dropped.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load engine config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load engine config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("sample_rate") {
		cfg.SampleRate = raw.SampleRate
	}
	if meta.IsDefined("block_size") {
		cfg.BlockSize = raw.BlockSize
	}
	if meta.IsDefined("auto_protect") {
		cfg.AutoProtect = raw.AutoProtect
	}
	if meta.IsDefined("limit_output") {
		cfg.LimitOutput = raw.LimitOutput
	}
	if meta.IsDefined("lufs_target_db") {
		cfg.LUFSTargetDB = raw.LUFSTargetDB
	}
	if meta.IsDefined("true_peak_limit_db") {
		cfg.TruePeakLimitDB = raw.TruePeakLimitDB
	}

	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return Config{}, fmt.Errorf("load engine config: sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return Config{}, fmt.Errorf("load engine config: block size must be > 0: %d", cfg.BlockSize)
	}

	return cfg, nil
}

// NewFromConfig builds an engine from cfg. Options given after the
// config are applied on top of it.
func NewFromConfig(cfg Config, opts ...Option) *Engine {
	c := safety.DefaultConstraints()
	c.LUFSTarget = cfg.LUFSTargetDB
	c.TruePeakLimitDB = cfg.TruePeakLimitDB

	base := []Option{
		WithSampleRate(cfg.SampleRate),
		WithBlockSize(cfg.BlockSize),
		WithAutoProtect(cfg.AutoProtect),
		WithOutputLimit(cfg.LimitOutput),
		WithConstraints(c),
	}
	return New(append(base, opts...)...)
}
