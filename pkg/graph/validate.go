package graph

import "fmt"

// ValidationSeverity indicates whether a validation finding breaks a graph
// invariant or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // invariant broken
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding. Node or Edge is
// InvalidNode/InvalidEdge when the finding is not tied to one element.
type ValidationError struct {
	Node     NodeIndex
	Edge     EdgeIndex
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	switch {
	case e.Edge != InvalidEdge:
		return fmt.Sprintf("[%s] edge %d: %s", e.Severity, int(e.Edge), e.Message)
	case e.Node != InvalidNode:
		return fmt.Sprintf("[%s] node %d: %s", e.Severity, int(e.Node), e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
}

// Validate checks the structural invariants of g and reports geometric
// oddities as warnings. Error-severity findings mean the graph was corrupted
// outside the public API. This function is read-only.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateEndpoints(g)...)
	errs = append(errs, validateAdjacency(g)...)
	errs = append(errs, validateCounts(g)...)
	errs = append(errs, validateGeometry(g)...)
	return errs
}

// HasErrors reports whether findings contains an error-severity entry.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func nodeFinding(n NodeIndex, sev ValidationSeverity, format string, args ...interface{}) ValidationError {
	return ValidationError{Node: n, Edge: InvalidEdge, Message: fmt.Sprintf(format, args...), Severity: sev}
}

func edgeFinding(e EdgeIndex, sev ValidationSeverity, format string, args ...interface{}) ValidationError {
	return ValidationError{Node: InvalidNode, Edge: e, Message: fmt.Sprintf(format, args...), Severity: sev}
}

// validateEndpoints checks that every live edge references live nodes.
func validateEndpoints(g *Graph) []ValidationError {
	var errs []ValidationError
	for i, e := range g.edges {
		if e == nil {
			continue
		}
		if !g.HasNode(e.Start) {
			errs = append(errs, edgeFinding(EdgeIndex(i), SeverityError, "start references missing node %d", int(e.Start)))
		}
		if !g.HasNode(e.End) {
			errs = append(errs, edgeFinding(EdgeIndex(i), SeverityError, "end references missing node %d", int(e.End)))
		}
		if e.Data == nil {
			errs = append(errs, edgeFinding(EdgeIndex(i), SeverityError, "edge has no segment data"))
		}
	}
	return errs
}

// validateAdjacency checks that each node lists exactly its incident edges,
// sorted and without repeats.
func validateAdjacency(g *Graph) []ValidationError {
	var errs []ValidationError

	want := make(map[NodeIndex]map[EdgeIndex]bool)
	for i, e := range g.edges {
		if e == nil {
			continue
		}
		for _, n := range []NodeIndex{e.Start, e.End} {
			if want[n] == nil {
				want[n] = make(map[EdgeIndex]bool)
			}
			want[n][EdgeIndex(i)] = true
		}
	}

	for i, n := range g.nodes {
		if n == nil {
			continue
		}
		idx := NodeIndex(i)
		for j, ei := range n.Adjacent {
			if j > 0 && n.Adjacent[j-1] >= ei {
				errs = append(errs, nodeFinding(idx, SeverityError, "adjacency not strictly ascending at %d", j))
			}
			if !want[idx][ei] {
				errs = append(errs, nodeFinding(idx, SeverityError, "adjacency lists edge %d which is not incident", int(ei)))
			}
		}
		if len(n.Adjacent) != len(want[idx]) {
			errs = append(errs, nodeFinding(idx, SeverityError, "adjacency has %d edges, %d are incident", len(n.Adjacent), len(want[idx])))
		}
	}
	return errs
}

// validateCounts checks the cached live counters against the arenas.
func validateCounts(g *Graph) []ValidationError {
	var errs []ValidationError
	if n := len(g.NodeIndices()); n != g.liveNodes {
		errs = append(errs, nodeFinding(InvalidNode, SeverityError, "live node count %d, arena holds %d", g.liveNodes, n))
	}
	if n := len(g.EdgeIndices()); n != g.liveEdges {
		errs = append(errs, nodeFinding(InvalidNode, SeverityError, "live edge count %d, arena holds %d", g.liveEdges, n))
	}
	return errs
}
