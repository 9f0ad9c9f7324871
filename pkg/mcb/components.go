package mcb

import (
	"sort"

	"github.com/chazu/vecgraph/pkg/graph"
)

// Component is a connected set of nodes with the edges between them, both in
// ascending index order.
type Component struct {
	Nodes []graph.NodeIndex
	Edges []graph.EdgeIndex
}

// ComponentStats summarises a component.
type ComponentStats struct {
	V, E  int
	Betti int
}

// Betti returns the number of independent cycles in the component.
func (c Component) Betti() int {
	if len(c.Nodes) == 0 {
		return 0
	}
	return len(c.Edges) - len(c.Nodes) + 1
}

// Stats returns the vertex, edge and cycle counts of the component.
func (c Component) Stats() ComponentStats {
	return ComponentStats{V: len(c.Nodes), E: len(c.Edges), Betti: c.Betti()}
}

// Components splits g into connected components by breadth-first search,
// seeded in ascending node order. Isolated nodes form their own component.
func Components(g *graph.Graph) []Component {
	seen := make(map[graph.NodeIndex]bool, g.NodeCount())
	var out []Component
	for _, seed := range g.NodeIndices() {
		if seen[seed] {
			continue
		}
		var comp Component
		edgeSeen := make(map[graph.EdgeIndex]bool)
		seen[seed] = true
		queue := []graph.NodeIndex{seed}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			comp.Nodes = append(comp.Nodes, n)
			adj, _ := g.Adjacent(n)
			for _, ei := range adj {
				if !edgeSeen[ei] {
					edgeSeen[ei] = true
					comp.Edges = append(comp.Edges, ei)
				}
				e, _ := g.Edge(ei)
				if m := e.Other(n); !seen[m] {
					seen[m] = true
					queue = append(queue, m)
				}
			}
		}
		sort.Slice(comp.Nodes, func(i, j int) bool { return comp.Nodes[i] < comp.Nodes[j] })
		sort.Slice(comp.Edges, func(i, j int) bool { return comp.Edges[i] < comp.Edges[j] })
		out = append(out, comp)
	}
	return out
}
