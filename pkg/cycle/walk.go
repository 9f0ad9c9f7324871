package cycle

import (
	"sort"

	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/pkg/errors"
)

// Errors
var (
	ErrClosedWalkDeadEnd  = errors.New("closed walk dead end")
	ErrClosedWalkTooSmall = errors.New("closed walk too small or not closed")
)

// minWalkEdges is the smallest edge count accepted as a closed walk.
const minWalkEdges = 3

// ClosedWalk orders an unordered set of edges that the caller asserts forms
// one closed loop into a directed Cycle.
//
// The walk starts at the lowest edge index in its stored direction and
// repeatedly takes the lowest unconsumed edge incident to the trailing node,
// flipping it logically when needed. Edges left over when the walk returns
// to its start early, as in a figure-eight through a shared node, are
// spliced in as sub-tours at their first touching step. The result depends
// only on the set, so shuffled or reversed input yields the same cycle.
// Repeated indices are ignored.
//
// Errors: *graph.MissingEdgeError for an absent edge, ErrClosedWalkTooSmall for
// fewer than three edges or a chain that does not close, ErrClosedWalkDeadEnd
// when the set cannot be covered by one closed walk.
func ClosedWalk(g *graph.Graph, edges []graph.EdgeIndex) (*Cycle, error) {
	set := make([]graph.EdgeIndex, 0, len(edges))
	seen := make(map[graph.EdgeIndex]bool, len(edges))
	for _, ei := range edges {
		if seen[ei] {
			continue
		}
		if !g.HasEdge(ei) {
			return nil, &graph.MissingEdgeError{Index: ei}
		}
		seen[ei] = true
		set = append(set, ei)
	}
	if len(set) < minWalkEdges {
		return nil, errors.Wrapf(ErrClosedWalkTooSmall, "%d edges", len(set))
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })

	// Index the set by node so each step only looks at local candidates.
	incident := make(map[graph.NodeIndex][]graph.EdgeIndex)
	for _, ei := range set {
		e, _ := g.Edge(ei)
		incident[e.Start] = append(incident[e.Start], ei)
		if e.End != e.Start {
			incident[e.End] = append(incident[e.End], ei)
		}
	}

	consumed := make(map[graph.EdgeIndex]bool, len(set))

	// extend greedily follows unconsumed edges from node until none remain
	// at the trailing node, and returns the steps taken and where it stopped.
	extend := func(node graph.NodeIndex) ([]Step, graph.NodeIndex) {
		var out []Step
		for {
			next := graph.InvalidEdge
			for _, ei := range incident[node] {
				if !consumed[ei] {
					next = ei
					break
				}
			}
			if next == graph.InvalidEdge {
				return out, node
			}
			stored, _ := g.Edge(next)
			directed, ok := stored.DirectedFrom(node)
			if !ok {
				panic("cycle: incident index lists an edge that does not touch its node")
			}
			out = append(out, Step{Index: next, Edge: directed})
			consumed[next] = true
			node = directed.End
		}
	}

	first, _ := g.Edge(set[0])
	consumed[set[0]] = true
	rest, trailing := extend(first.End)
	steps := append([]Step{{Index: set[0], Edge: first}}, rest...)

	// A walk revisiting a node can close before every edge is used. Splice
	// the remaining tours in at the first step that touches them.
	for len(steps) < len(set) && trailing == first.Start {
		at := -1
		for i, st := range steps {
			for _, ei := range incident[st.Edge.Start] {
				if !consumed[ei] {
					at = i
					break
				}
			}
			if at >= 0 {
				break
			}
		}
		if at < 0 {
			break
		}
		node := steps[at].Edge.Start
		tour, end := extend(node)
		if end != node {
			return nil, errors.Wrapf(ErrClosedWalkDeadEnd, "at node %d after %d of %d edges",
				int(end), len(steps)+len(tour), len(set))
		}
		spliced := make([]Step, 0, len(steps)+len(tour))
		spliced = append(spliced, steps[:at]...)
		spliced = append(spliced, tour...)
		steps = append(spliced, steps[at:]...)
	}
	if len(steps) < len(set) {
		return nil, errors.Wrapf(ErrClosedWalkDeadEnd, "at node %d after %d of %d edges",
			int(trailing), len(steps), len(set))
	}

	if trailing != first.Start {
		return nil, errors.Wrapf(ErrClosedWalkTooSmall, "chain ends at node %d, started at node %d",
			int(trailing), int(first.Start))
	}
	return &Cycle{Steps: steps}, nil
}
