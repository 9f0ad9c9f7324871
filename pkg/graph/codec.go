package graph

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// The wire form keeps tombstoned slots as null entries so that indices are
// identical after a round trip. Adjacency is derived and never written.

type wirePoint [2]float64

type wireNode struct {
	Position wirePoint `json:"position"`
}

type wireEdge struct {
	Kind    string      `json:"kind"`
	Start   int         `json:"start"`
	End     int         `json:"end"`
	Handles []wirePoint `json:"handles,omitempty"`
}

type wireGraph struct {
	Nodes []*wireNode `json:"nodes"`
	Edges []*wireEdge `json:"edges"`
}

func toWire(p Point) wirePoint   { return wirePoint{p.X, p.Y} }
func fromWire(w wirePoint) Point { return Point{X: w[0], Y: w[1]} }

// MarshalJSON encodes the graph including tombstoned slots.
func (g *Graph) MarshalJSON() ([]byte, error) {
	w := wireGraph{
		Nodes: make([]*wireNode, len(g.nodes)),
		Edges: make([]*wireEdge, len(g.edges)),
	}
	for i, n := range g.nodes {
		if n != nil {
			w.Nodes[i] = &wireNode{Position: toWire(n.Position)}
		}
	}
	for i, e := range g.edges {
		if e == nil {
			continue
		}
		we := &wireEdge{
			Kind:  e.Kind().String(),
			Start: int(e.Start),
			End:   int(e.End),
		}
		if e.Data != nil {
			for _, h := range e.Data.Handles() {
				we.Handles = append(we.Handles, toWire(h))
			}
		}
		w.Edges[i] = we
	}
	return json.Marshal(w)
}

// UnmarshalJSON replaces the receiver with the decoded graph. Edges that
// reference absent nodes are rejected with a *MissingNodeError and leave the
// receiver untouched.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w wireGraph
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(ErrBadEncoding, err.Error())
	}

	out := New()
	out.nodes = make([]*Node, len(w.Nodes))
	for i, wn := range w.Nodes {
		if wn == nil {
			continue
		}
		out.nodes[i] = &Node{Position: fromWire(wn.Position)}
		out.liveNodes++
	}

	out.edges = make([]*Edge, len(w.Edges))
	for i, we := range w.Edges {
		if we == nil {
			continue
		}
		kind, ok := ParseEdgeKind(we.Kind)
		if !ok {
			return errors.Wrapf(ErrBadEncoding, "edge %d: unknown kind %q", i, we.Kind)
		}
		handles := make([]Point, len(we.Handles))
		for j, h := range we.Handles {
			handles[j] = fromWire(h)
		}
		ed, err := NewEdgeData(kind, handles)
		if err != nil {
			return errors.Wrapf(ErrBadEncoding, "edge %d: %d handles for %s", i, len(handles), kind)
		}
		start, end := NodeIndex(we.Start), NodeIndex(we.End)
		if !out.HasNode(start) {
			return errors.Wrapf(&MissingNodeError{Index: start}, "edge %d", i)
		}
		if !out.HasNode(end) {
			return errors.Wrapf(&MissingNodeError{Index: end}, "edge %d", i)
		}
		out.edges[i] = &Edge{Start: start, End: end, Data: ed}
		out.liveEdges++
		out.link(start, EdgeIndex(i))
		if end != start {
			out.link(end, EdgeIndex(i))
		}
	}

	*g = *out
	return nil
}

// Encode writes the graph as indented JSON.
func (g *Graph) Encode(w io.Writer) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return errors.Wrap(err, "graph: encode")
	}
	_, err = w.Write(data)
	return err
}

// Decode reads a graph previously written by Encode.
func Decode(r io.Reader) (*Graph, error) {
	g := New()
	if err := json.NewDecoder(r).Decode(g); err != nil {
		return nil, err
	}
	return g, nil
}
