package graph

// adjacency maps each source name to its destinations, preserving
// connection insertion order. Names that are not registered stages
// still appear; the walkers treat them as ordinary nodes.
func (g *Graph) adjacency() map[string][]string {
	adj := make(map[string][]string, len(g.stages))
	for _, c := range g.connections {
		adj[c.Source] = append(adj[c.Source], c.Destination)
	}
	return adj
}

// HasCycles reports whether any directed cycle is reachable from a
// registered stage. Depth-first search with a recursion stack: an edge
// back into the active path is a cycle, a cross edge to a finished
// node is not.
func (g *Graph) HasCycles() bool {
	adj := g.adjacency()
	visited := make(map[string]bool, len(g.stages))
	inStack := make(map[string]bool, len(g.stages))

	var visit func(node string) bool
	visit = func(node string) bool {
		visited[node] = true
		inStack[node] = true

		for _, next := range adj[node] {
			if !visited[next] {
				if visit(next) {
					return true
				}
			} else if inStack[next] {
				return true
			}
		}

		inStack[node] = false
		return false
	}

	for _, name := range g.StageNames() {
		if !visited[name] && visit(name) {
			return true
		}
	}
	return false
}

// IsConnected reports whether every stage is reachable from the first
// one when edges are walked in both directions. An empty graph counts
// as connected. Edges referencing unregistered names inflate the
// visited set, so a graph with dangling edges reads as disconnected.
func (g *Graph) IsConnected() bool {
	if len(g.stages) == 0 {
		return true
	}

	names := g.StageNames()
	visited := map[string]bool{names[0]: true}
	queue := []string{names[0]}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, c := range g.connections {
			if c.Source == current && !visited[c.Destination] {
				visited[c.Destination] = true
				queue = append(queue, c.Destination)
			}
			if c.Destination == current && !visited[c.Source] {
				visited[c.Source] = true
				queue = append(queue, c.Source)
			}
		}
	}

	return len(visited) == len(g.stages)
}

// TopologicalOrder returns every stage in dependency order: reversed
// depth-first post-order, seeded from the sorted stage names. On a
// cyclic graph the order is still total, just not a valid schedule;
// callers that care run HasCycles first.
func (g *Graph) TopologicalOrder() []string {
	adj := g.adjacency()
	visited := make(map[string]bool, len(g.stages))
	order := make([]string, 0, len(g.stages))

	var visit func(node string)
	visit = func(node string) {
		visited[node] = true
		for _, next := range adj[node] {
			if !visited[next] {
				visit(next)
			}
		}
		order = append(order, node)
	}

	for _, name := range g.StageNames() {
		if !visited[name] {
			visit(name)
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}
