package pathdata

import (
	"github.com/chazu/vecgraph/pkg/graph"
)

type opKind int

const (
	opMove opKind = iota
	opSegment
	opClose
)

// op is one absolute drawing step resolved from the command stream.
type op struct {
	kind opKind
	data graph.EdgeData
	to   graph.Point
}

// resolve turns commands into absolute ops, expanding repeated coordinate
// groups and relative forms. It rejects malformed input before the graph is
// touched.
func resolve(ast *pathAST) ([]op, error) {
	var (
		ops       []op
		cur, from graph.Point
		started   bool
	)
	for _, c := range ast.Commands {
		name := c.Op[0]
		upper := name &^ 0x20
		rel := name != upper
		n := arity[upper]

		if upper == 'Z' {
			if len(c.Args) != 0 {
				return nil, syntaxAt(c.Pos, "%c takes no coordinates", name)
			}
			if !started {
				return nil, syntaxAt(c.Pos, "%c before moveto", name)
			}
			ops = append(ops, op{kind: opClose})
			cur = from
			continue
		}
		if len(c.Args) == 0 || len(c.Args)%n != 0 {
			return nil, syntaxAt(c.Pos, "%c needs a multiple of %d coordinates, got %d", name, n, len(c.Args))
		}
		if upper != 'M' && !started {
			return nil, syntaxAt(c.Pos, "%c before moveto", name)
		}

		abs := func(x, y float64) graph.Point {
			if rel {
				return graph.Pt(cur.X+x, cur.Y+y)
			}
			return graph.Pt(x, y)
		}
		for i := 0; i < len(c.Args); i += n {
			a := c.Args[i : i+n]
			switch upper {
			case 'M':
				p := abs(a[0], a[1])
				if i == 0 {
					ops = append(ops, op{kind: opMove, to: p})
					from, started = p, true
				} else {
					ops = append(ops, op{kind: opSegment, data: graph.LineData{}, to: p})
				}
				cur = p
			case 'L':
				cur = abs(a[0], a[1])
				ops = append(ops, op{kind: opSegment, data: graph.LineData{}, to: cur})
			case 'H':
				x := a[0]
				if rel {
					x += cur.X
				}
				cur = graph.Pt(x, cur.Y)
				ops = append(ops, op{kind: opSegment, data: graph.LineData{}, to: cur})
			case 'V':
				y := a[0]
				if rel {
					y += cur.Y
				}
				cur = graph.Pt(cur.X, y)
				ops = append(ops, op{kind: opSegment, data: graph.LineData{}, to: cur})
			case 'Q':
				h := abs(a[0], a[1])
				cur = abs(a[2], a[3])
				ops = append(ops, op{kind: opSegment, data: graph.QuadraticData{Handle: h}, to: cur})
			case 'C':
				h1, h2 := abs(a[0], a[1]), abs(a[2], a[3])
				cur = abs(a[4], a[5])
				ops = append(ops, op{kind: opSegment, data: graph.CubicData{Handle1: h1, Handle2: h2}, to: cur})
			}
		}
	}
	return ops, nil
}

// Parse builds a new graph from path data.
func Parse(src string) (*graph.Graph, error) {
	g := graph.New()
	if _, err := Append(g, src); err != nil {
		return nil, err
	}
	return g, nil
}

// Append adds the outlines described by src to g and returns the created
// edges in drawing order. Each subpath gets its own nodes. A Z whose
// preceding segment already ends on the subpath start reuses the start node;
// otherwise Z adds a straight closing edge. On error g is unchanged.
func Append(g *graph.Graph, src string) ([]graph.EdgeIndex, error) {
	ast, err := parse(src)
	if err != nil {
		return nil, err
	}
	ops, err := resolve(ast)
	if err != nil {
		return nil, err
	}

	var (
		edges       []graph.EdgeIndex
		start, cur  = graph.InvalidNode, graph.InvalidNode
		startPos    graph.Point
		subpathOpen bool
	)
	add := func(data graph.EdgeData, a, b graph.NodeIndex) {
		ei, err := g.AddEdge(data, a, b)
		if err != nil {
			panic("pathdata: lost a node it just created: " + err.Error())
		}
		edges = append(edges, ei)
	}

	for i, o := range ops {
		switch o.kind {
		case opMove:
			start = g.AddNode(o.to)
			cur, startPos, subpathOpen = start, o.to, false
		case opSegment:
			var next graph.NodeIndex
			closing := i+1 < len(ops) && ops[i+1].kind == opClose && o.to == startPos
			if closing {
				next = start
			} else {
				next = g.AddNode(o.to)
			}
			add(o.data, cur, next)
			cur, subpathOpen = next, true
		case opClose:
			if subpathOpen && cur != start {
				add(graph.LineData{}, cur, start)
			}
			// Drawing after Z continues from the subpath start.
			cur, subpathOpen = start, false
		}
	}
	return edges, nil
}
