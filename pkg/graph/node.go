package graph

// Node is a positioned anchor point. Adjacent lists the incident edges in
// ascending index order; it is maintained by the Graph and never authored by
// callers.
type Node struct {
	Position Point
	Adjacent []EdgeIndex
}

// Edge is a segment between two nodes. Start and End are the canonical
// stored direction; traversal code flips edges logically with DirectedFrom
// and never writes the flipped form back.
type Edge struct {
	Start NodeIndex
	End   NodeIndex
	Data  EdgeData
}

// Kind returns the segment shape of the edge.
func (e Edge) Kind() EdgeKind {
	if e.Data == nil {
		return EdgeLine
	}
	return e.Data.Kind()
}

// IsLoop reports whether the edge starts and ends on the same node.
func (e Edge) IsLoop() bool {
	return e.Start == e.End
}

// Touches reports whether n is one of the edge endpoints.
func (e Edge) Touches(n NodeIndex) bool {
	return e.Start == n || e.End == n
}

// Other returns the endpoint opposite n, or InvalidNode if n is not an
// endpoint.
func (e Edge) Other(n NodeIndex) NodeIndex {
	switch n {
	case e.Start:
		return e.End
	case e.End:
		return e.Start
	}
	return InvalidNode
}

// Reversed returns the edge traversed end-to-start.
func (e Edge) Reversed() Edge {
	data := e.Data
	if data != nil {
		data = data.reversed()
	}
	return Edge{Start: e.End, End: e.Start, Data: data}
}

// DirectedFrom returns a copy of the edge oriented so that it leaves n. The
// second result is false when n is not an endpoint.
func (e Edge) DirectedFrom(n NodeIndex) (Edge, bool) {
	switch n {
	case e.Start:
		return e, true
	case e.End:
		return e.Reversed(), true
	}
	return e, false
}
