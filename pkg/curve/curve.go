// Package curve converts graph edges into a single cubic Bézier form so that
// geometric queries never branch on the edge kind.
package curve

import (
	"math"

	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultTolerance is the flattening tolerance used when callers have no
// better estimate of the output resolution.
const DefaultTolerance = 0.05

// maxSegments bounds the subdivision of a single curve when flattening.
const maxSegments = 256

// Bezier is a cubic Bézier curve. Lines and quadratics are carried in the
// same form.
type Bezier struct {
	P0, P1, P2, P3 v2.Vec
}

// FromEdge returns the cubic form of e given the positions of its logical
// start and end. A line gets control points at 1/3 and 2/3 of the segment;
// a quadratic is degree-elevated.
func FromEdge(e graph.Edge, start, end v2.Vec) Bezier {
	switch d := e.Data.(type) {
	case graph.QuadraticData:
		return Bezier{
			P0: start,
			P1: start.Add(d.Handle.Sub(start).MulScalar(2.0 / 3.0)),
			P2: end.Add(d.Handle.Sub(end).MulScalar(2.0 / 3.0)),
			P3: end,
		}
	case graph.CubicData:
		return Bezier{P0: start, P1: d.Handle1, P2: d.Handle2, P3: end}
	default:
		return Line(start, end)
	}
}

// Line returns the cubic form of a straight segment.
func Line(a, b v2.Vec) Bezier {
	d := b.Sub(a)
	return Bezier{
		P0: a,
		P1: a.Add(d.MulScalar(1.0 / 3.0)),
		P2: a.Add(d.MulScalar(2.0 / 3.0)),
		P3: b,
	}
}

// ForEdge looks up the edge at idx and its endpoint positions in g.
func ForEdge(g *graph.Graph, idx graph.EdgeIndex) (Bezier, error) {
	e, err := g.Edge(idx)
	if err != nil {
		return Bezier{}, err
	}
	return ForDirected(g, e)
}

// ForDirected converts an edge that may already be logically flipped, reading
// endpoint positions from g.
func ForDirected(g *graph.Graph, e graph.Edge) (Bezier, error) {
	start, err := g.Position(e.Start)
	if err != nil {
		return Bezier{}, err
	}
	end, err := g.Position(e.End)
	if err != nil {
		return Bezier{}, err
	}
	return FromEdge(e, start, end), nil
}

// Eval returns the point at parameter t in [0, 1].
func (b Bezier) Eval(t float64) v2.Vec {
	u := 1 - t
	w0 := u * u * u
	w1 := 3 * u * u * t
	w2 := 3 * u * t * t
	w3 := t * t * t
	return v2.Vec{
		X: w0*b.P0.X + w1*b.P1.X + w2*b.P2.X + w3*b.P3.X,
		Y: w0*b.P0.Y + w1*b.P1.Y + w2*b.P2.Y + w3*b.P3.Y,
	}
}

// Reverse returns the same curve traversed from P3 to P0.
func (b Bezier) Reverse() Bezier {
	return Bezier{P0: b.P3, P1: b.P2, P2: b.P1, P3: b.P0}
}

// Bounds returns the bounding box of the control polygon, which contains the
// curve.
func (b Bezier) Bounds() sdf.Box2 {
	return Bounds([]v2.Vec{b.P0, b.P1, b.P2, b.P3})
}

// IsLinear reports whether the control points lie on the chord within tol.
func (b Bezier) IsLinear(tol float64) bool {
	return distToLine(b.P1, b.P0, b.P3) <= tol && distToLine(b.P2, b.P0, b.P3) <= tol
}

// Flatten approximates the curve with a polyline whose deviation from the
// curve stays around tol. The first point is P0 and the last is P3.
func (b Bezier) Flatten(tol float64) []v2.Vec {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if b.IsLinear(tol) {
		return []v2.Vec{b.P0, b.P3}
	}
	// Second differences of the control polygon bound the curvature term of
	// the uniform subdivision error.
	dd := math.Max(
		b.P0.Sub(b.P1.MulScalar(2)).Add(b.P2).Length(),
		b.P1.Sub(b.P2.MulScalar(2)).Add(b.P3).Length(),
	)
	n := int(math.Ceil(math.Sqrt(0.75 * dd / tol)))
	if n < 2 {
		n = 2
	}
	if n > maxSegments {
		n = maxSegments
	}
	pts := make([]v2.Vec, 0, n+1)
	pts = append(pts, b.P0)
	for i := 1; i < n; i++ {
		pts = append(pts, b.Eval(float64(i)/float64(n)))
	}
	return append(pts, b.P3)
}

// Length approximates the arc length by flattening at tol.
func (b Bezier) Length(tol float64) float64 {
	pts := b.Flatten(tol)
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i].Sub(pts[i-1]).Length()
	}
	return l
}

// distToLine returns the distance from p to the line through a and b, or to
// a when a and b coincide.
func distToLine(p, a, b v2.Vec) float64 {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return p.Sub(a).Length()
	}
	return math.Abs(d.Cross(p.Sub(a))) / l
}
