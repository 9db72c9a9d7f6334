package engine

import (
	"os"

	"github.com/ken0182/synthgraph/dsp/safety"
	"github.com/ken0182/synthgraph/preset"
)

// LoadPreset replaces the graph with the one described by the preset
// file at path. The incoming graph is validated and rejected on any
// finding, so a load either installs a clean graph or leaves the
// current one untouched; the reason lands in LastError. With auto
// protection enabled the protection pass runs before validation, so
// repairable hazards (hot gain, low headroom) are healed and only
// structural defects still reject.
func (e *Engine) LoadPreset(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return e.fail("load_preset", "Cannot open preset file: "+path)
	}

	g, err := preset.Parse(data)
	if err != nil {
		return e.fail("load_preset", "Error loading preset: "+err.Error())
	}

	if e.autoProtect {
		safety.ApplyProtection(g, e.constraints)
	}
	if issues := g.Validate(); len(issues) > 0 {
		return e.fail("load_preset", "Preset validation failed: "+issues[0])
	}
	if err := g.SetSampleRate(e.sampleRate); err != nil {
		return e.fail("load_preset", "Error loading preset: "+err.Error())
	}

	e.graph = g
	e.lastError = ""
	e.log.Info().
		Str("path", path).
		Int("stages", g.NumStages()).
		Int("connections", len(g.Connections())).
		Bool("protected", e.autoProtect).
		Msg("preset loaded")
	return true
}

// SavePreset serializes the current graph to the preset wire format
// and writes it to path. On failure the reason lands in LastError and
// the file is left as the write left it.
func (e *Engine) SavePreset(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, err := preset.Marshal(e.graph)
	if err != nil {
		return e.fail("save_preset", "Error saving preset: "+err.Error())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return e.fail("save_preset", "Cannot create preset file: "+path)
	}

	e.lastError = ""
	e.log.Info().
		Str("path", path).
		Int("bytes", len(data)).
		Msg("preset saved")
	return true
}
