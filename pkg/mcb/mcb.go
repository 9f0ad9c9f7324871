// Package mcb computes a minimum cycle basis of a path graph: the shortest
// set of elementary cycles that spans every independent loop. In a planar
// drawing these are the faces that fill operations work on.
package mcb

import (
	"fmt"
	"sort"

	"github.com/chazu/vecgraph/pkg/curve"
	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// DefaultMaxSteps bounds the candidate search of a single Compute call.
const DefaultMaxSteps = 1 << 23

// ErrEmptyGraph is returned when a basis is requested for a graph without
// edges.
var ErrEmptyGraph = errors.New("empty graph")

// TraversalLimitError reports that candidate generation ran past its step
// budget, which signals a malformed or oversized graph.
type TraversalLimitError struct {
	Edges int
}

func (e *TraversalLimitError) Error() string {
	return fmt.Sprintf("cycle basis search exceeded its step limit on %d edges", e.Edges)
}

// Options tunes Compute.
type Options struct {
	// MaxSteps is the step budget; each shortest-path relaxation and each
	// candidate evaluation costs one step.
	MaxSteps int
	// Tolerance is the flattening tolerance for the geometric length used to
	// order candidates with equal edge counts.
	Tolerance float64
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		MaxSteps:  DefaultMaxSteps,
		Tolerance: curve.DefaultTolerance,
	}
}

// RawCycle is an unordered cycle given as ascending edge indices.
type RawCycle []graph.EdgeIndex

// Compute returns the minimum cycle basis of g. Each connected component
// contributes exactly E-V+1 cycles; acyclic components contribute none.
// Cycles are grouped by component in ascending node order and ordered by
// weight within a component.
func Compute(g *graph.Graph, opts Options) ([]RawCycle, error) {
	if g.EdgeCount() == 0 {
		return nil, ErrEmptyGraph
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = curve.DefaultTolerance
	}

	s := &search{g: g, opts: opts, edgeLen: make(map[graph.EdgeIndex]float64)}
	var out []RawCycle
	for ci, comp := range Components(g) {
		betti := comp.Betti()
		if betti == 0 {
			continue
		}
		cycles, err := s.component(comp)
		if err != nil {
			return nil, err
		}
		klog.V(2).Infof("mcb: component %d: V=%d E=%d cycles=%d steps=%d",
			ci, len(comp.Nodes), len(comp.Edges), len(cycles), s.steps)
		out = append(out, cycles...)
	}
	return out, nil
}

// search holds the state shared across the components of one Compute call.
type search struct {
	g       *graph.Graph
	opts    Options
	steps   int
	edgeLen map[graph.EdgeIndex]float64
}

// step charges n units against the budget.
func (s *search) step(n int) error {
	s.steps += n
	if s.steps > s.opts.MaxSteps {
		return &TraversalLimitError{Edges: s.g.EdgeCount()}
	}
	return nil
}

// length returns the cached geometric length of an edge.
func (s *search) length(ei graph.EdgeIndex) float64 {
	if l, ok := s.edgeLen[ei]; ok {
		return l
	}
	b, err := curve.ForEdge(s.g, ei)
	if err != nil {
		panic("mcb: component lists a dead edge: " + err.Error())
	}
	l := b.Length(s.opts.Tolerance)
	s.edgeLen[ei] = l
	return l
}

// component runs candidate generation and greedy selection for one
// connected component.
func (s *search) component(comp Component) ([]RawCycle, error) {
	betti := comp.Betti()
	pos := make(map[graph.EdgeIndex]int, len(comp.Edges))
	for i, ei := range comp.Edges {
		pos[ei] = i
	}

	candidates := redblacktree.NewWith(compareCandidates)
	for _, root := range comp.Nodes {
		tree, err := s.shortestPaths(root)
		if err != nil {
			return nil, err
		}
		if err := s.hortonCandidates(comp, tree, candidates); err != nil {
			return nil, err
		}
	}

	basis := newBasis(len(comp.Edges))
	var out []RawCycle
	it := candidates.Iterator()
	for it.Next() && len(out) < betti {
		if err := s.step(1); err != nil {
			return nil, err
		}
		c := it.Key().(*candidate)
		if basis.insert(c.vector(pos, len(comp.Edges))) {
			out = append(out, c.edges)
		}
	}

	if len(out) < betti {
		// Candidate paths were chosen without a consistent tie-break, so the
		// set can miss a generator. Fundamental cycles of one tree span the
		// cycle space and close the gap.
		klog.V(1).Infof("mcb: %d of %d cycles from candidates, adding fundamental cycles", len(out), betti)
		tree, err := s.shortestPaths(comp.Nodes[0])
		if err != nil {
			return nil, err
		}
		fundamental := redblacktree.NewWith(compareCandidates)
		for _, ei := range comp.Edges {
			if err := s.step(1); err != nil {
				return nil, err
			}
			if c := s.fundamentalCycle(tree, ei); c != nil {
				fundamental.Put(c, nil)
			}
		}
		fit := fundamental.Iterator()
		for fit.Next() && len(out) < betti {
			c := fit.Key().(*candidate)
			if basis.insert(c.vector(pos, len(comp.Edges))) {
				out = append(out, c.edges)
			}
		}
	}

	if len(out) != betti {
		panic(fmt.Sprintf("mcb: selected %d cycles for a component with %d independent loops", len(out), betti))
	}
	return out, nil
}

// hortonCandidates adds, for every edge (x, y) of the component, the cycle
// made of the tree paths root->x, the edge, and y->root, provided the two
// paths share no node but the root and neither contains the edge.
func (s *search) hortonCandidates(comp Component, tree *pathTree, out *redblacktree.Tree) error {
	for _, ei := range comp.Edges {
		if err := s.step(1); err != nil {
			return err
		}
		e, _ := s.g.Edge(ei)
		if !tree.reached(e.Start) || !tree.reached(e.End) {
			continue
		}
		if tree.parentEdge[e.Start] == ei || tree.parentEdge[e.End] == ei {
			continue
		}

		xNodes, xEdges := tree.path(e.Start)
		yNodes, yEdges := tree.path(e.End)
		if e.IsLoop() {
			if e.Start != tree.root {
				continue
			}
		} else if !disjointBelowRoot(xNodes, yNodes, tree.root) {
			continue
		}

		edges := make([]graph.EdgeIndex, 0, len(xEdges)+len(yEdges)+1)
		edges = append(edges, xEdges...)
		edges = append(edges, yEdges...)
		edges = append(edges, ei)
		out.Put(s.newCandidate(edges), nil)
	}
	return nil
}

// fundamentalCycle returns the cycle closed by a non-tree edge, or nil for
// tree edges.
func (s *search) fundamentalCycle(tree *pathTree, ei graph.EdgeIndex) *candidate {
	e, _ := s.g.Edge(ei)
	if tree.parentEdge[e.Start] == ei || tree.parentEdge[e.End] == ei {
		return nil
	}
	_, xEdges := tree.path(e.Start)
	_, yEdges := tree.path(e.End)

	// Edges shared by both paths cancel out.
	count := make(map[graph.EdgeIndex]int)
	for _, p := range [][]graph.EdgeIndex{xEdges, yEdges} {
		for _, pe := range p {
			count[pe]++
		}
	}
	edges := []graph.EdgeIndex{ei}
	for pe, n := range count {
		if n == 1 {
			edges = append(edges, pe)
		}
	}
	return s.newCandidate(edges)
}

// disjointBelowRoot reports whether two root paths meet only at the root.
func disjointBelowRoot(a, b []graph.NodeIndex, root graph.NodeIndex) bool {
	seen := make(map[graph.NodeIndex]bool, len(a))
	for _, n := range a {
		if n != root {
			seen[n] = true
		}
	}
	for _, n := range b {
		if seen[n] {
			return false
		}
	}
	return true
}

// candidate is a cycle under consideration with its ordering weight.
type candidate struct {
	edges  RawCycle
	length float64
}

func (s *search) newCandidate(edges []graph.EdgeIndex) *candidate {
	sorted := append(RawCycle(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	c := &candidate{edges: sorted}
	for _, ei := range sorted {
		c.length += s.length(ei)
	}
	return c
}

// vector returns the GF(2) incidence vector of the candidate over the
// component's edge positions.
func (c *candidate) vector(pos map[graph.EdgeIndex]int, n int) bitset {
	v := newBitset(n)
	for _, ei := range c.edges {
		v.flip(pos[ei])
	}
	return v
}

// compareCandidates orders by edge count, then geometric length, then the
// edge indices themselves. Identical edge sets compare equal, so the tree
// also de-duplicates.
func compareCandidates(a, b interface{}) int {
	ca, cb := a.(*candidate), b.(*candidate)
	if n := utils.IntComparator(len(ca.edges), len(cb.edges)); n != 0 {
		return n
	}
	if ca.length != cb.length {
		return utils.Float64Comparator(ca.length, cb.length)
	}
	for i := range ca.edges {
		if n := utils.IntComparator(int(ca.edges[i]), int(cb.edges[i])); n != 0 {
			return n
		}
	}
	return 0
}
