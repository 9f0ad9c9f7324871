// Package region turns the elementary cycles of a graph into fillable
// regions: each region is an outer boundary with nested holes and a winding
// rule for the tessellator.
package region

import (
	"github.com/chazu/vecgraph/pkg/curve"
	"github.com/chazu/vecgraph/pkg/cycle"
	"github.com/chazu/vecgraph/pkg/mcb"
)

// WindingRule selects how nested cycles decide which areas are filled.
type WindingRule int

const (
	// WindingDefault is the even-odd rule: nesting depth parity decides
	// fill, regardless of direction.
	WindingDefault WindingRule = iota
	// WindingNonZero fills by signed winding number. Cycles are oriented so
	// that holes wind opposite to their parent.
	WindingNonZero
)

func (w WindingRule) String() string {
	switch w {
	case WindingDefault:
		return "evenodd"
	case WindingNonZero:
		return "nonzero"
	default:
		return "unknown"
	}
}

// ParseWindingRule maps "evenodd" or "nonzero" to a rule.
func ParseWindingRule(s string) (WindingRule, bool) {
	switch s {
	case "evenodd", "default":
		return WindingDefault, true
	case "nonzero":
		return WindingNonZero, true
	}
	return 0, false
}

// Options tunes Nest and Build.
type Options struct {
	// Winding is applied to every region.
	Winding WindingRule
	// Tolerance is the curve flattening tolerance used for containment.
	Tolerance float64
	// MCB configures the cycle basis search run by Build.
	MCB mcb.Options
}

// DefaultOptions returns non-zero winding with the default tolerances.
func DefaultOptions() Options {
	return Options{
		Winding:   WindingNonZero,
		Tolerance: curve.DefaultTolerance,
		MCB:       mcb.DefaultOptions(),
	}
}

// Region is one connected piece of fill. Cycles lists the outer boundary
// first and then every nested cycle in pre-order; the nesting itself is
// carried by Cycle.Holes.
type Region struct {
	Winding WindingRule
	Cycles  []*cycle.Cycle
}

// Outer returns the outer boundary.
func (r *Region) Outer() *cycle.Cycle {
	if len(r.Cycles) == 0 {
		return nil
	}
	return r.Cycles[0]
}

// Holes returns the cycles directly inside the outer boundary.
func (r *Region) Holes() []*cycle.Cycle {
	if o := r.Outer(); o != nil {
		return o.Holes
	}
	return nil
}

// Depth returns the nesting depth of c within the region, or -1 if c is not
// part of it.
func (r *Region) Depth(c *cycle.Cycle) int {
	depth := -1
	if o := r.Outer(); o != nil {
		o.Walk(func(x *cycle.Cycle, d int) {
			if x == c {
				depth = d
			}
		})
	}
	return depth
}
