package region

import (
	"math"

	"github.com/chazu/vecgraph/pkg/curve"
	"github.com/chazu/vecgraph/pkg/cycle"
	"github.com/chazu/vecgraph/pkg/graph"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/deadsy/sdfx/sdf"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// shape is the flattened geometry of one input cycle.
type shape struct {
	in     *cycle.Cycle
	poly   []v2.Vec
	area   float64 // signed
	bounds sdf.Box2
}

func (s *shape) absArea() float64 { return math.Abs(s.area) }

// Nest arranges cycles into a containment forest and returns one Region per
// top-level cycle, in input order. A cycle's parent is the enclosing cycle of
// least area. The input cycles are not modified; the regions hold reoriented
// copies.
func Nest(g *graph.Graph, cycles []*cycle.Cycle, opts Options) ([]*Region, error) {
	if opts.Tolerance <= 0 {
		opts.Tolerance = curve.DefaultTolerance
	}

	shapes := make([]*shape, len(cycles))
	for i, c := range cycles {
		poly, err := c.Polygon(g, opts.Tolerance)
		if err != nil {
			return nil, errors.Wrapf(err, "region: cycle %d", i)
		}
		shapes[i] = &shape{
			in:     c,
			poly:   poly,
			area:   curve.SignedArea(poly),
			bounds: curve.Bounds(poly),
		}
		if shapes[i].area == 0 {
			klog.Warningf("region: cycle %d %v has zero area", i, c.EdgeIndices())
		}
	}

	parent := make([]int, len(shapes))
	for i := range shapes {
		parent[i] = -1
		for j := range shapes {
			if i == j || !encloses(g, shapes[j], shapes[i], j < i, opts.Tolerance) {
				continue
			}
			switch {
			case parent[i] < 0:
				parent[i] = j
			case shapes[j].absArea() < shapes[parent[i]].absArea():
				parent[i] = j
			case shapes[j].absArea() == shapes[parent[i]].absArea():
				klog.Warningf("region: cycle %d is enclosed by cycles %d and %d of equal area, keeping %d",
					i, parent[i], j, parent[i])
			}
		}
	}

	children := make([][]int, len(shapes))
	var roots []int
	for i, p := range parent {
		if p < 0 {
			roots = append(roots, i)
		} else {
			children[p] = append(children[p], i)
		}
	}

	var build func(i, depth int) *cycle.Cycle
	build = func(i, depth int) *cycle.Cycle {
		s := shapes[i]
		out := &cycle.Cycle{Steps: s.in.Steps}
		ccw := depth%2 == 0
		if (ccw && s.area < 0) || (!ccw && s.area > 0) {
			out = s.in.Reverse()
		}
		out.Holes = nil
		for _, ch := range children[i] {
			out.Holes = append(out.Holes, build(ch, depth+1))
		}
		return out
	}

	regions := make([]*Region, 0, len(roots))
	for _, i := range roots {
		outer := build(i, 0)
		r := &Region{Winding: opts.Winding}
		outer.Walk(func(c *cycle.Cycle, _ int) {
			r.Cycles = append(r.Cycles, c)
		})
		regions = append(regions, r)
	}
	return regions, nil
}

// encloses reports whether outer contains inner. Among cycles of equal area
// only an earlier one may contain a later one, which keeps the relation a
// strict order. Zero-area cycles never contain anything.
func encloses(g *graph.Graph, outer, inner *shape, earlier bool, tol float64) bool {
	oa, ia := outer.absArea(), inner.absArea()
	if oa == 0 || oa < ia || (oa == ia && !earlier) {
		return false
	}
	if !curve.BoxInside(inner.bounds, outer.bounds) {
		return false
	}
	p, ok := samplePoint(g, inner.in, outer.in)
	if !ok {
		return false
	}
	return curve.ContainsPoint(outer.poly, p)
}

// samplePoint returns the midpoint of the first edge of c that is not part
// of other. Cycles built from the same edges yield no sample.
func samplePoint(g *graph.Graph, c, other *cycle.Cycle) (v2.Vec, bool) {
	for _, s := range c.Steps {
		if other.Contains(s.Index) {
			continue
		}
		b, err := curve.ForDirected(g, s.Edge)
		if err != nil {
			return v2.Vec{}, false
		}
		return b.Eval(0.5), true
	}
	return v2.Vec{}, false
}
