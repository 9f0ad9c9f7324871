package graph

// ---------------------------------------------------------------------------
// Edge kinds
// ---------------------------------------------------------------------------

// EdgeKind enumerates the segment shapes an edge can take.
type EdgeKind int

const (
	EdgeLine      EdgeKind = iota // straight segment
	EdgeQuadratic                 // quadratic Bézier, one handle
	EdgeCubic                     // cubic Bézier, two handles
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeLine:
		return "line"
	case EdgeQuadratic:
		return "quadratic"
	case EdgeCubic:
		return "cubic"
	default:
		return "unknown"
	}
}

// ParseEdgeKind is the inverse of EdgeKind.String.
func ParseEdgeKind(s string) (EdgeKind, bool) {
	switch s {
	case "line":
		return EdgeLine, true
	case "quadratic":
		return EdgeQuadratic, true
	case "cubic":
		return EdgeCubic, true
	}
	return 0, false
}

// EdgeData is the interface for kind-specific edge payloads. Handles are raw
// coordinates, not node references.
type EdgeData interface {
	Kind() EdgeKind
	// Handles returns the control points in start-to-end order.
	Handles() []Point
	// reversed returns the payload as seen when traversing end-to-start.
	reversed() EdgeData
}

// LineData is a straight segment between the edge endpoints.
type LineData struct{}

func (LineData) Kind() EdgeKind       { return EdgeLine }
func (LineData) Handles() []Point     { return nil }
func (d LineData) reversed() EdgeData { return d }

// QuadraticData is a quadratic Bézier with a single handle.
type QuadraticData struct {
	Handle Point
}

func (QuadraticData) Kind() EdgeKind       { return EdgeQuadratic }
func (d QuadraticData) Handles() []Point   { return []Point{d.Handle} }
func (d QuadraticData) reversed() EdgeData { return d }

// CubicData is a cubic Bézier. Handle1 belongs to the start node, Handle2 to
// the end node.
type CubicData struct {
	Handle1 Point
	Handle2 Point
}

func (CubicData) Kind() EdgeKind     { return EdgeCubic }
func (d CubicData) Handles() []Point { return []Point{d.Handle1, d.Handle2} }
func (d CubicData) reversed() EdgeData {
	return CubicData{Handle1: d.Handle2, Handle2: d.Handle1}
}

// NewEdgeData builds the payload for kind from its handles. It fails with
// ErrBadEdgeData when the handle count does not match the kind.
func NewEdgeData(kind EdgeKind, handles []Point) (EdgeData, error) {
	switch {
	case kind == EdgeLine && len(handles) == 0:
		return LineData{}, nil
	case kind == EdgeQuadratic && len(handles) == 1:
		return QuadraticData{Handle: handles[0]}, nil
	case kind == EdgeCubic && len(handles) == 2:
		return CubicData{Handle1: handles[0], Handle2: handles[1]}, nil
	}
	return nil, ErrBadEdgeData
}
