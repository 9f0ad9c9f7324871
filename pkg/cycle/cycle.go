// Package cycle orders edge sets into directed closed walks and carries the
// resulting cycles, including nested hole cycles.
package cycle

import (
	"github.com/chazu/vecgraph/pkg/curve"
	"github.com/chazu/vecgraph/pkg/graph"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/pkg/errors"
)

// Step is one edge of a cycle. Edge is the logically directed copy of the
// stored edge; the graph itself is never modified.
type Step struct {
	Index graph.EdgeIndex
	Edge  graph.Edge
}

// Cycle is a closed walk: each step ends where the next begins and the last
// ends where the first begins. Holes are the cycles nested directly inside
// this one.
type Cycle struct {
	Steps []Step
	Holes []*Cycle
}

// Len returns the number of edges in the walk.
func (c *Cycle) Len() int {
	return len(c.Steps)
}

// EdgeIndices returns the edge indices in walk order.
func (c *Cycle) EdgeIndices() []graph.EdgeIndex {
	out := make([]graph.EdgeIndex, len(c.Steps))
	for i, s := range c.Steps {
		out[i] = s.Index
	}
	return out
}

// Nodes returns the node visited at the start of each step.
func (c *Cycle) Nodes() []graph.NodeIndex {
	out := make([]graph.NodeIndex, len(c.Steps))
	for i, s := range c.Steps {
		out[i] = s.Edge.Start
	}
	return out
}

// Contains reports whether the walk uses edge idx.
func (c *Cycle) Contains(idx graph.EdgeIndex) bool {
	for _, s := range c.Steps {
		if s.Index == idx {
			return true
		}
	}
	return false
}

// Reverse returns the walk traversed in the opposite direction. Holes are
// shared with the receiver.
func (c *Cycle) Reverse() *Cycle {
	out := &Cycle{Steps: make([]Step, len(c.Steps)), Holes: c.Holes}
	for i, s := range c.Steps {
		out.Steps[len(c.Steps)-1-i] = Step{Index: s.Index, Edge: s.Edge.Reversed()}
	}
	return out
}

// Check verifies the closed-walk invariant against g.
func (c *Cycle) Check(g *graph.Graph) error {
	if len(c.Steps) == 0 {
		return ErrClosedWalkTooSmall
	}
	for i, s := range c.Steps {
		stored, err := g.Edge(s.Index)
		if err != nil {
			return err
		}
		if !stored.Touches(s.Edge.Start) || stored.Other(s.Edge.Start) != s.Edge.End {
			return errors.Errorf("cycle: step %d does not match edge %d", i, int(s.Index))
		}
		next := c.Steps[(i+1)%len(c.Steps)]
		if s.Edge.End != next.Edge.Start {
			return errors.Wrapf(ErrClosedWalkTooSmall, "cycle: step %d ends at %v, step %d starts at %v",
				i, s.Edge.End, (i+1)%len(c.Steps), next.Edge.Start)
		}
	}
	return nil
}

// Walk calls fn for c and every nested hole in pre-order with its nesting
// depth, c being depth 0.
func (c *Cycle) Walk(fn func(c *Cycle, depth int)) {
	var visit func(c *Cycle, depth int)
	visit = func(c *Cycle, depth int) {
		fn(c, depth)
		for _, h := range c.Holes {
			visit(h, depth+1)
		}
	}
	visit(c, 0)
}

// Beziers returns the directed curve of every step.
func (c *Cycle) Beziers(g *graph.Graph) ([]curve.Bezier, error) {
	out := make([]curve.Bezier, len(c.Steps))
	for i, s := range c.Steps {
		b, err := curve.ForDirected(g, s.Edge)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// Polygon flattens the walk into a closed polygon. The closing point is not
// repeated.
func (c *Cycle) Polygon(g *graph.Graph, tol float64) ([]v2.Vec, error) {
	beziers, err := c.Beziers(g)
	if err != nil {
		return nil, err
	}
	var poly []v2.Vec
	for _, b := range beziers {
		pts := b.Flatten(tol)
		// Each curve starts where the previous one ended.
		poly = append(poly, pts[:len(pts)-1]...)
	}
	return poly, nil
}

// SignedArea returns the area enclosed by the flattened walk, positive for
// counter-clockwise traversal.
func (c *Cycle) SignedArea(g *graph.Graph, tol float64) (float64, error) {
	poly, err := c.Polygon(g, tol)
	if err != nil {
		return 0, err
	}
	return curve.SignedArea(poly), nil
}
