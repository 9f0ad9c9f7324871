package pathdata

import (
	"strconv"
	"strings"

	"github.com/chazu/vecgraph/pkg/cycle"
	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/chazu/vecgraph/pkg/region"
	"github.com/pkg/errors"
)

// FormatCycle writes a directed cycle as absolute path data, one command per
// step followed by Z. Handles follow the walk direction.
func FormatCycle(g *graph.Graph, c *cycle.Cycle) (string, error) {
	var sb strings.Builder
	if err := writeCycle(&sb, g, c); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// FormatRegion writes every cycle of r as one subpath, outer boundary first.
func FormatRegion(g *graph.Graph, r *region.Region) (string, error) {
	var sb strings.Builder
	for i, c := range r.Cycles {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if err := writeCycle(&sb, g, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func writeCycle(sb *strings.Builder, g *graph.Graph, c *cycle.Cycle) error {
	if len(c.Steps) == 0 {
		return errors.New("pathdata: empty cycle")
	}
	first, err := g.Position(c.Steps[0].Edge.Start)
	if err != nil {
		return errors.Wrap(err, "pathdata")
	}
	sb.WriteString("M")
	writePoints(sb, first)

	for _, s := range c.Steps {
		to, err := g.Position(s.Edge.End)
		if err != nil {
			return errors.Wrapf(err, "pathdata: step %s", s.Index)
		}
		switch d := s.Edge.Data.(type) {
		case graph.QuadraticData:
			sb.WriteString(" Q")
			writePoints(sb, d.Handle, to)
		case graph.CubicData:
			sb.WriteString(" C")
			writePoints(sb, d.Handle1, d.Handle2, to)
		default:
			sb.WriteString(" L")
			writePoints(sb, to)
		}
	}
	sb.WriteString(" Z")
	return nil
}

func writePoints(sb *strings.Builder, pts ...graph.Point) {
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatFloat(p.X))
		sb.WriteByte(' ')
		sb.WriteString(formatFloat(p.Y))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
