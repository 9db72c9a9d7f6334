// Package preset reads and writes the JSON patch format: a named set
// of stages with typed parameters plus a connection list. Parsing
// builds a ready-to-run graph; marshaling captures a graph so it can
// be restored later.
package preset

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ken0182/synthgraph/dsp/graph"
	"github.com/ken0182/synthgraph/dsp/stage"
)

// Document is the root of the wire format. Both sections are
// optional; an empty document parses to an empty graph.
type Document struct {
	Stages      map[string]StageSpec `json:"stages,omitempty"`
	Connections []ConnectionSpec     `json:"connections,omitempty"`
}

// StageSpec declares one stage: its type name and its parameter
// values. Numbers, strings, and booleans apply to the stage; other
// JSON values are ignored.
type StageSpec struct {
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ConnectionSpec is one routing edge. When decoding, a missing amount
// defaults to 1 and a missing enabled flag to true.
type ConnectionSpec struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Parameter   string  `json:"parameter,omitempty"`
	Amount      float64 `json:"amount"`
	Enabled     bool    `json:"enabled"`
}

// UnmarshalJSON decodes a connection with the wire defaults in place.
func (c *ConnectionSpec) UnmarshalJSON(data []byte) error {
	type plain ConnectionSpec
	spec := plain{Amount: 1, Enabled: true}
	if err := json.Unmarshal(data, &spec); err != nil {
		return err
	}
	*c = ConnectionSpec(spec)
	return nil
}

// Parse builds a graph from preset JSON. An unknown stage type fails
// before any stage is constructed for it, and parameter errors carry
// the stage name. Stages apply in name order so errors are
// reproducible.
func Parse(data []byte) (*graph.Graph, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid preset json: %w", err)
	}
	return Build(doc)
}

// Build turns a decoded document into a graph.
func Build(doc Document) (*graph.Graph, error) {
	g := graph.New()

	names := make([]string, 0, len(doc.Stages))
	for name := range doc.Stages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := doc.Stages[name]
		kind, err := stage.ParseKind(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", name, err)
		}
		s, err := stage.New(kind)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", name, err)
		}
		if err := applyParameters(s, spec.Parameters); err != nil {
			return nil, fmt.Errorf("stage %s: %w", name, err)
		}
		g.AddStage(name, s)
	}

	for _, spec := range doc.Connections {
		g.AddConnection(graph.Connection{
			Source:      spec.Source,
			Destination: spec.Destination,
			Parameter:   spec.Parameter,
			Amount:      spec.Amount,
			Enabled:     spec.Enabled,
		})
	}

	return g, nil
}

// Marshal captures a graph as indented preset JSON. Stage entries
// sort by name through the JSON object encoding, so output is stable.
func Marshal(g *graph.Graph) ([]byte, error) {
	doc, err := Describe(g)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Describe captures a graph as a document without encoding it.
func Describe(g *graph.Graph) (Document, error) {
	doc := Document{}
	if n := g.NumStages(); n > 0 {
		doc.Stages = make(map[string]StageSpec, n)
	}

	for _, name := range g.StageNames() {
		s, ok := g.Stage(name)
		if !ok {
			continue
		}
		params := make(map[string]any, len(s.ParameterNames()))
		for _, param := range s.ParameterNames() {
			v, err := s.Parameter(param)
			if err != nil {
				return Document{}, fmt.Errorf("stage %s parameter %s: %w", name, param, err)
			}
			switch v.Kind() {
			case stage.ValueFloat:
				params[param] = v.Float()
			case stage.ValueString:
				params[param] = v.Str()
			case stage.ValueBool:
				params[param] = v.Bool()
			}
		}
		doc.Stages[name] = StageSpec{Type: s.Kind().String(), Parameters: params}
	}

	for _, conn := range g.Connections() {
		doc.Connections = append(doc.Connections, ConnectionSpec{
			Source:      conn.Source,
			Destination: conn.Destination,
			Parameter:   conn.Parameter,
			Amount:      conn.Amount,
			Enabled:     conn.Enabled,
		})
	}

	return doc, nil
}

func applyParameters(s stage.Stage, params map[string]any) error {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var v stage.Value
		switch t := params[name].(type) {
		case float64:
			v = stage.FloatValue(t)
		case string:
			v = stage.StringValue(t)
		case bool:
			v = stage.BoolValue(t)
		default:
			continue
		}
		if err := s.SetParameter(name, v); err != nil {
			return err
		}
	}
	return nil
}
