package region

import (
	"github.com/chazu/vecgraph/pkg/cycle"
	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/chazu/vecgraph/pkg/mcb"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Build runs the whole pipeline over a snapshot of g: cycle basis, closed
// walks and nesting. Basis cycles with fewer than three edges (two-edge
// lenses and self loops) cannot be walked and are skipped with a warning.
// A graph without edges yields mcb.ErrEmptyGraph.
func Build(g *graph.Graph, opts Options) ([]*Region, error) {
	raw, err := mcb.Compute(g, opts.MCB)
	if err != nil {
		return nil, err
	}

	cycles := make([]*cycle.Cycle, 0, len(raw))
	for _, rc := range raw {
		c, err := cycle.ClosedWalk(g, rc)
		if errors.Is(err, cycle.ErrClosedWalkTooSmall) {
			klog.Warningf("region: skipping cycle %v: %v", rc, err)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "region: walk %v", rc)
		}
		cycles = append(cycles, c)
	}
	return Nest(g, cycles, opts)
}
