package engine

import (
	"github.com/ken0182/synthgraph/dsp/graph"
	"github.com/ken0182/synthgraph/dsp/stage"
)

// AddStage registers s under name, replacing any existing stage with
// that name. Nil stages are ignored.
func (e *Engine) AddStage(name string, s stage.Stage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.graph.AddStage(name, s)
}

// RemoveStage drops the named stage and every connection touching it.
func (e *Engine) RemoveStage(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.graph.RemoveStage(name)
}

// AddConnection appends an edge to the graph.
func (e *Engine) AddConnection(c graph.Connection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.graph.AddConnection(c)
}

// RemoveConnection drops every edge from source to destination.
func (e *Engine) RemoveConnection(source, destination string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.graph.RemoveConnection(source, destination)
}

// SetParameter sets one parameter on the named stage. Naming a stage
// that does not exist is a no-op, so automation can keep writing while
// a preset swap is in flight; type and range errors from the stage
// itself are returned.
func (e *Engine) SetParameter(stageName, param string, value stage.Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.graph.Stage(stageName)
	if !ok {
		return nil
	}
	return s.SetParameter(param, value)
}

// Parameter reads one parameter from the named stage. A stage that
// does not exist reads as the zero float value.
func (e *Engine) Parameter(stageName, param string) (stage.Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.graph.Stage(stageName)
	if !ok {
		return stage.FloatValue(0), nil
	}
	return s.Parameter(param)
}

// Validate returns the graph's advisory findings.
func (e *Engine) Validate() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Validate()
}

// StageNames returns all stage names in sorted order.
func (e *Engine) StageNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.StageNames()
}

// NumStages returns the number of registered stages.
func (e *Engine) NumStages() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.NumStages()
}

// Connections returns a copy of the connection list.
func (e *Engine) Connections() []graph.Connection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Connections()
}

// TotalGain returns the graph's estimated gain, 1.0 for an empty
// graph.
func (e *Engine) TotalGain() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.TotalGain()
}
