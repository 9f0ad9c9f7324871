package graph

import (
	"fmt"
	"sort"
)

// Graph owns all nodes and edges of a piece of vector artwork.
//
// Slots are append-only: removal leaves a nil tombstone so that every index
// handed out stays either live or permanently absent. Every mutation keeps the
// adjacency invariant: a node's Adjacent list holds exactly its incident live
// edges.
//
// A Graph is not safe for concurrent mutation. Callers serialise editing and
// region computation on the same instance.
type Graph struct {
	nodes     []*Node
	edges     []*Edge
	liveNodes int
	liveEdges int
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{}
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	return g.liveNodes
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	return g.liveEdges
}

// NodeSlots returns the number of node slots ever allocated, live or not.
func (g *Graph) NodeSlots() int {
	return len(g.nodes)
}

// EdgeSlots returns the number of edge slots ever allocated, live or not.
func (g *Graph) EdgeSlots() int {
	return len(g.edges)
}

// HasNode reports whether idx refers to a live node.
func (g *Graph) HasNode(idx NodeIndex) bool {
	return idx >= 0 && int(idx) < len(g.nodes) && g.nodes[idx] != nil
}

// HasEdge reports whether idx refers to a live edge.
func (g *Graph) HasEdge(idx EdgeIndex) bool {
	return idx >= 0 && int(idx) < len(g.edges) && g.edges[idx] != nil
}

// Node returns a copy of the node at idx.
func (g *Graph) Node(idx NodeIndex) (*Node, error) {
	if !g.HasNode(idx) {
		return nil, &MissingNodeError{Index: idx}
	}
	n := g.nodes[idx]
	return &Node{
		Position: n.Position,
		Adjacent: append([]EdgeIndex(nil), n.Adjacent...),
	}, nil
}

// Position returns the position of the node at idx.
func (g *Graph) Position(idx NodeIndex) (Point, error) {
	if !g.HasNode(idx) {
		return Point{}, &MissingNodeError{Index: idx}
	}
	return g.nodes[idx].Position, nil
}

// Adjacent returns the incident edges of the node at idx in ascending order.
// The returned slice must not be modified.
func (g *Graph) Adjacent(idx NodeIndex) ([]EdgeIndex, error) {
	if !g.HasNode(idx) {
		return nil, &MissingNodeError{Index: idx}
	}
	return g.nodes[idx].Adjacent, nil
}

// Edge returns the edge at idx in its stored direction.
func (g *Graph) Edge(idx EdgeIndex) (Edge, error) {
	if !g.HasEdge(idx) {
		return Edge{}, &MissingEdgeError{Index: idx}
	}
	return *g.edges[idx], nil
}

// NodeIndices returns the live node indices in ascending order.
func (g *Graph) NodeIndices() []NodeIndex {
	out := make([]NodeIndex, 0, g.liveNodes)
	for i, n := range g.nodes {
		if n != nil {
			out = append(out, NodeIndex(i))
		}
	}
	return out
}

// EdgeIndices returns the live edge indices in insertion order.
func (g *Graph) EdgeIndices() []EdgeIndex {
	out := make([]EdgeIndex, 0, g.liveEdges)
	for i, e := range g.edges {
		if e != nil {
			out = append(out, EdgeIndex(i))
		}
	}
	return out
}

// AddNode appends a node at pos and returns its index.
func (g *Graph) AddNode(pos Point) NodeIndex {
	g.nodes = append(g.nodes, &Node{Position: pos})
	g.liveNodes++
	return NodeIndex(len(g.nodes) - 1)
}

// AddEdge connects start to end with a segment of the given shape. A nil
// data is treated as a line. The graph is unchanged if either endpoint is
// missing.
func (g *Graph) AddEdge(data EdgeData, start, end NodeIndex) (EdgeIndex, error) {
	if !g.HasNode(start) {
		return InvalidEdge, &MissingNodeError{Index: start}
	}
	if !g.HasNode(end) {
		return InvalidEdge, &MissingNodeError{Index: end}
	}
	if data == nil {
		data = LineData{}
	}
	idx := EdgeIndex(len(g.edges))
	g.edges = append(g.edges, &Edge{Start: start, End: end, Data: data})
	g.liveEdges++
	g.link(start, idx)
	if end != start {
		g.link(end, idx)
	}
	return idx, nil
}

// RemoveEdge deletes the edge at idx and detaches it from both endpoints.
func (g *Graph) RemoveEdge(idx EdgeIndex) error {
	if !g.HasEdge(idx) {
		return &MissingEdgeError{Index: idx}
	}
	e := g.edges[idx]
	g.unlink(e.Start, idx)
	if e.End != e.Start {
		g.unlink(e.End, idx)
	}
	g.edges[idx] = nil
	g.liveEdges--
	return nil
}

// RemoveNode deletes the node at idx together with every incident edge.
func (g *Graph) RemoveNode(idx NodeIndex) error {
	if !g.HasNode(idx) {
		return &MissingNodeError{Index: idx}
	}
	incident := append([]EdgeIndex(nil), g.nodes[idx].Adjacent...)
	for _, ei := range incident {
		if err := g.RemoveEdge(ei); err != nil {
			panic(fmt.Sprintf("graph: adjacency of %s lists dead edge %s", idx, ei))
		}
	}
	g.nodes[idx] = nil
	g.liveNodes--
	return nil
}

// MoveNode sets the position of the node at idx.
func (g *Graph) MoveNode(idx NodeIndex, pos Point) error {
	if !g.HasNode(idx) {
		return &MissingNodeError{Index: idx}
	}
	g.nodes[idx].Position = pos
	return nil
}

// SetEdgeData replaces the shape of the edge at idx, keeping its endpoints.
func (g *Graph) SetEdgeData(idx EdgeIndex, data EdgeData) error {
	if !g.HasEdge(idx) {
		return &MissingEdgeError{Index: idx}
	}
	if data == nil {
		data = LineData{}
	}
	g.edges[idx].Data = data
	return nil
}

// Clone returns a deep copy of the graph, tombstones included, so indices
// are identical in the copy.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:     make([]*Node, len(g.nodes)),
		edges:     make([]*Edge, len(g.edges)),
		liveNodes: g.liveNodes,
		liveEdges: g.liveEdges,
	}
	for i, n := range g.nodes {
		if n != nil {
			c.nodes[i] = &Node{
				Position: n.Position,
				Adjacent: append([]EdgeIndex(nil), n.Adjacent...),
			}
		}
	}
	for i, e := range g.edges {
		if e != nil {
			ec := *e
			c.edges[i] = &ec
		}
	}
	return c
}

// link inserts ei into the sorted adjacency of n.
func (g *Graph) link(n NodeIndex, ei EdgeIndex) {
	node := g.nodes[n]
	i := sort.Search(len(node.Adjacent), func(i int) bool { return node.Adjacent[i] >= ei })
	if i < len(node.Adjacent) && node.Adjacent[i] == ei {
		return
	}
	node.Adjacent = append(node.Adjacent, 0)
	copy(node.Adjacent[i+1:], node.Adjacent[i:])
	node.Adjacent[i] = ei
}

// unlink removes ei from the adjacency of n.
func (g *Graph) unlink(n NodeIndex, ei EdgeIndex) {
	node := g.nodes[n]
	if node == nil {
		panic(fmt.Sprintf("graph: edge %s references dead node %s", ei, n))
	}
	i := sort.Search(len(node.Adjacent), func(i int) bool { return node.Adjacent[i] >= ei })
	if i == len(node.Adjacent) || node.Adjacent[i] != ei {
		panic(fmt.Sprintf("graph: edge %s missing from adjacency of %s", ei, n))
	}
	node.Adjacent = append(node.Adjacent[:i], node.Adjacent[i+1:]...)
}
