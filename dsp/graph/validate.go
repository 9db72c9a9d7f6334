package graph

import "fmt"

// Validate inspects the graph and returns advisory findings. It never
// fails: a cyclic, disconnected, or hot graph still processes audio,
// and repeated calls on an unchanged graph return the same findings in
// the same order.
func (g *Graph) Validate() []string {
	var issues []string

	if g.HasCycles() {
		issues = append(issues, "Graph contains cycles")
	}
	if !g.IsConnected() {
		issues = append(issues, "Graph has disconnected components")
	}
	if g.TotalGain() >= 1.0 {
		issues = append(issues, "Total gain >= 1.0, potential feedback instability")
	}

	for _, name := range g.StageNames() {
		s := g.stages[name]
		for _, param := range s.ParameterNames() {
			if _, err := s.Parameter(param); err != nil {
				issues = append(issues, fmt.Sprintf("Stage %s parameter %s: %v", name, param, err))
			}
		}
	}

	return issues
}
