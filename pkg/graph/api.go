package graph

// Builders compose the primitive mutations to append chains of straight
// segments. Each builder either applies completely or leaves the graph as it
// was.

// Line connects two existing nodes with a straight segment.
func (g *Graph) Line(start, end NodeIndex) (EdgeIndex, error) {
	return g.AddEdge(LineData{}, start, end)
}

// LineFrom appends a straight segment from an existing node to a new node at
// to. It returns the new node and the new edge.
func (g *Graph) LineFrom(start NodeIndex, to Point) (NodeIndex, EdgeIndex, error) {
	if !g.HasNode(start) {
		return InvalidNode, InvalidEdge, &MissingNodeError{Index: start}
	}
	end := g.AddNode(to)
	ei, err := g.AddEdge(LineData{}, start, end)
	if err != nil {
		panic("graph: LineFrom lost a node it just validated: " + err.Error())
	}
	return end, ei, nil
}

// LineTo appends a straight segment from a new node at from to an existing
// node. It returns the new node and the new edge.
func (g *Graph) LineTo(from Point, end NodeIndex) (NodeIndex, EdgeIndex, error) {
	if !g.HasNode(end) {
		return InvalidNode, InvalidEdge, &MissingNodeError{Index: end}
	}
	start := g.AddNode(from)
	ei, err := g.AddEdge(LineData{}, start, end)
	if err != nil {
		panic("graph: LineTo lost a node it just validated: " + err.Error())
	}
	return start, ei, nil
}

// LineFromTo adds two fresh nodes and the straight segment between them.
func (g *Graph) LineFromTo(from, to Point) (start, end NodeIndex, ei EdgeIndex) {
	start = g.AddNode(from)
	end = g.AddNode(to)
	ei, err := g.AddEdge(LineData{}, start, end)
	if err != nil {
		panic("graph: LineFromTo lost a node it just created: " + err.Error())
	}
	return start, end, ei
}

// Polyline extends a chain from an existing node through pts, adding a node
// per point. It returns the created edges in chain order.
func (g *Graph) Polyline(start NodeIndex, pts ...Point) ([]EdgeIndex, error) {
	if !g.HasNode(start) {
		return nil, &MissingNodeError{Index: start}
	}
	edges := make([]EdgeIndex, 0, len(pts))
	cur := start
	for _, p := range pts {
		next, ei, err := g.LineFrom(cur, p)
		if err != nil {
			return nil, err
		}
		edges = append(edges, ei)
		cur = next
	}
	return edges, nil
}

// Polygon adds a closed chain of straight segments through pts. It returns
// the created nodes and edges; edge i runs from node i to node i+1 and the
// last edge closes back to node 0. Fewer than two points add nothing.
func (g *Graph) Polygon(pts ...Point) ([]NodeIndex, []EdgeIndex) {
	if len(pts) < 2 {
		return nil, nil
	}
	nodes := make([]NodeIndex, len(pts))
	for i, p := range pts {
		nodes[i] = g.AddNode(p)
	}
	edges := make([]EdgeIndex, len(pts))
	for i := range nodes {
		ei, err := g.AddEdge(LineData{}, nodes[i], nodes[(i+1)%len(nodes)])
		if err != nil {
			panic("graph: Polygon lost a node it just created: " + err.Error())
		}
		edges[i] = ei
	}
	return nodes, edges
}

// Rect adds an axis-aligned rectangle with its minimum corner at (x, y),
// wound counter-clockwise in a y-up frame.
func (g *Graph) Rect(x, y, w, h float64) ([]NodeIndex, []EdgeIndex) {
	return g.Polygon(Pt(x, y), Pt(x+w, y), Pt(x+w, y+h), Pt(x, y+h))
}
