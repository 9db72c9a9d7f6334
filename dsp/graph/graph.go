package graph

import (
	"fmt"
	"sort"

	"github.com/ken0182/synthgraph/dsp/stage"
)

// Graph holds stages by name plus the connection list. The zero value
// is not usable; construct with New.
type Graph struct {
	stages      map[string]stage.Stage
	connections []Connection
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{stages: make(map[string]stage.Stage)}
}

// AddStage registers s under name, replacing any existing stage with
// that name. Nil stages are ignored.
func (g *Graph) AddStage(name string, s stage.Stage) {
	if s == nil {
		return
	}
	g.stages[name] = s
}

// RemoveStage drops the named stage and prunes every connection that
// touches it, so no edge is left referencing a gone stage.
func (g *Graph) RemoveStage(name string) {
	delete(g.stages, name)

	kept := g.connections[:0]
	for _, c := range g.connections {
		if c.Source == name || c.Destination == name {
			continue
		}
		kept = append(kept, c)
	}
	g.connections = kept
}

// AddConnection appends an edge. Endpoints are not required to exist
// yet; edges to absent names are skipped during processing.
func (g *Graph) AddConnection(c Connection) {
	g.connections = append(g.connections, c)
}

// RemoveConnection drops every edge from source to destination.
func (g *Graph) RemoveConnection(source, destination string) {
	kept := g.connections[:0]
	for _, c := range g.connections {
		if c.Source == source && c.Destination == destination {
			continue
		}
		kept = append(kept, c)
	}
	g.connections = kept
}

// Stage returns the named stage.
func (g *Graph) Stage(name string) (stage.Stage, bool) {
	s, ok := g.stages[name]
	return s, ok
}

// NumStages returns the number of registered stages.
func (g *Graph) NumStages() int {
	return len(g.stages)
}

// StageNames returns all stage names in sorted order.
func (g *Graph) StageNames() []string {
	names := make([]string, 0, len(g.stages))
	for name := range g.stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connections returns a copy of the connection list in insertion order.
func (g *Graph) Connections() []Connection {
	return append([]Connection(nil), g.connections...)
}

// Reset clears the transient state of every stage; topology and
// parameters are preserved.
func (g *Graph) Reset() {
	for _, name := range g.StageNames() {
		g.stages[name].Reset()
	}
}

// SetSampleRate propagates the rate to every stage and stops at the
// first stage that rejects it.
func (g *Graph) SetSampleRate(sampleRate float64) error {
	for _, name := range g.StageNames() {
		if err := g.stages[name].SetSampleRate(sampleRate); err != nil {
			return fmt.Errorf("stage %s: %w", name, err)
		}
	}
	return nil
}
