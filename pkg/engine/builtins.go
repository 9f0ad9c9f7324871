package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/chazu/vecgraph/pkg/pathdata"
	"github.com/chazu/vecgraph/pkg/region"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------
// Script values
// ---------------------------------------------------------------------------

// sexpPoint is a node handle returned by (point ...) and (node ...).
type sexpPoint struct {
	idx graph.NodeIndex
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %s)", p.idx)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpEdge is an edge handle returned by the drawing builtins.
type sexpEdge struct {
	idx graph.EdgeIndex
}

func (e *sexpEdge) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(edge %s)", e.idx)
}
func (e *sexpEdge) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Argument handling
// ---------------------------------------------------------------------------

// isKW reports whether s is a keyword rewritten by preprocessSource and
// returns its bare name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs is an argument list split into keyword and positional parts.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs splits args. A keyword takes the following argument as its
// value; a trailing keyword is a flag with value SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	out := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			out.positional = append(out.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			out.kw[name] = args[i+1]
			i++
		} else {
			out.kw[name] = zygo.SexpNull
		}
	}
	return out
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, errors.Errorf("expected number, got %s", s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", errors.Errorf("expected string, got %s", s.SexpString(nil))
}

// toKeywordString accepts a keyword (:nonzero) or a plain string.
func toKeywordString(s zygo.Sexp) (string, error) {
	if name, ok := isKW(s); ok {
		return name, nil
	}
	str, err := toString(s)
	if err != nil {
		return "", errors.Errorf("expected keyword or string, got %s", s.SexpString(nil))
	}
	return str, nil
}

// toBool treats a bare flag as true.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, errors.Errorf("expected boolean, got %s", s.SexpString(nil))
}

func toPoint(s zygo.Sexp) (graph.NodeIndex, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.idx, nil
	}
	return graph.InvalidNode, errors.Errorf("expected point, got %s", s.SexpString(nil))
}

func toEdge(s zygo.Sexp) (graph.EdgeIndex, error) {
	if e, ok := s.(*sexpEdge); ok {
		return e.idx, nil
	}
	return graph.InvalidEdge, errors.Errorf("expected edge, got %s", s.SexpString(nil))
}

// toIndex reads a non-negative integer slot index.
func toIndex(s zygo.Sexp) (int, error) {
	v, ok := s.(*zygo.SexpInt)
	if !ok || v.Val < 0 {
		return 0, errors.Errorf("expected index, got %s", s.SexpString(nil))
	}
	return int(v.Val), nil
}

// toCoords reads consecutive numbers as points.
func toCoords(args []zygo.Sexp) ([]graph.Point, error) {
	if len(args)%2 != 0 {
		return nil, errors.Errorf("expected x y pairs, got %d numbers", len(args))
	}
	pts := make([]graph.Point, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := toFloat64(args[i])
		if err != nil {
			return nil, err
		}
		y, err := toFloat64(args[i+1])
		if err != nil {
			return nil, err
		}
		pts = append(pts, graph.Pt(x, y))
	}
	return pts, nil
}

func edgeList(edges []graph.EdgeIndex) zygo.Sexp {
	items := make([]zygo.Sexp, len(edges))
	for i, ei := range edges {
		items[i] = &sexpEdge{idx: ei}
	}
	return zygo.MakeList(items)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtin is the signature zygomys expects for Go functions.
type builtin = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs the drawing builtins. They edit s.g directly, so
// a script is one batch of graph mutations.
//
// Source must be passed through preprocessSource first: keywords and
// kebab-case names only resolve after rewriting.
func registerBuiltins(env *zygo.Zlisp, s *session) {
	add := func(name string, fn builtin) {
		env.AddFunction(name, func(env *zygo.Zlisp, n string, args []zygo.Sexp) (zygo.Sexp, error) {
			out, err := fn(env, n, args)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, strings.ReplaceAll(name, "_", "-"))
			}
			return out, nil
		})
	}

	// (point x y)
	add("point", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := toCoords(args)
		if err != nil {
			return nil, err
		}
		if len(pts) != 1 {
			return nil, errors.New("requires x and y")
		}
		return &sexpPoint{idx: s.g.AddNode(pts[0])}, nil
	})

	// (line a b)
	add("line", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, rest, err := endpoints(args)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, errors.Errorf("takes two points, got %d extra arguments", len(rest))
		}
		ei, err := s.g.AddEdge(graph.LineData{}, a, b)
		if err != nil {
			return nil, err
		}
		return &sexpEdge{idx: ei}, nil
	})

	// (quad a b hx hy)
	add("quad", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, rest, err := endpoints(args)
		if err != nil {
			return nil, err
		}
		h, err := toCoords(rest)
		if err != nil || len(h) != 1 {
			return nil, errors.New("requires two points and one handle")
		}
		ei, err := s.g.AddEdge(graph.QuadraticData{Handle: h[0]}, a, b)
		if err != nil {
			return nil, err
		}
		return &sexpEdge{idx: ei}, nil
	})

	// (cubic a b h1x h1y h2x h2y)
	add("cubic", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, rest, err := endpoints(args)
		if err != nil {
			return nil, err
		}
		h, err := toCoords(rest)
		if err != nil || len(h) != 2 {
			return nil, errors.New("requires two points and two handles")
		}
		ei, err := s.g.AddEdge(graph.CubicData{Handle1: h[0], Handle2: h[1]}, a, b)
		if err != nil {
			return nil, err
		}
		return &sexpEdge{idx: ei}, nil
	})

	// (polygon x1 y1 x2 y2 ... [:open true])
	add("polygon", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		pts, err := toCoords(pa.positional)
		if err != nil {
			return nil, err
		}
		open := false
		if v, ok := pa.kw["open"]; ok {
			if open, err = toBool(v); err != nil {
				return nil, errors.Wrap(err, "open")
			}
		}
		if open {
			if len(pts) < 2 {
				return nil, errors.New("an open polygon needs at least two points")
			}
			start := s.g.AddNode(pts[0])
			edges, err := s.g.Polyline(start, pts[1:]...)
			if err != nil {
				return nil, err
			}
			return edgeList(edges), nil
		}
		if len(pts) < 3 {
			return nil, errors.New("needs at least three points")
		}
		_, edges := s.g.Polygon(pts...)
		return edgeList(edges), nil
	})

	// (rect x y w h)
	add("rect", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return nil, errors.Errorf("requires x y w h, got %d arguments", len(args))
		}
		var v [4]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return nil, err
			}
			v[i] = f
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, errors.Errorf("width and height must be positive, got %g x %g", v[2], v[3])
		}
		_, edges := s.g.Rect(v[0], v[1], v[2], v[3])
		return edgeList(edges), nil
	})

	// (path "M0 0 L10 0 ...")
	add("path", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return nil, errors.New("requires one path-data string")
		}
		src, err := toString(args[0])
		if err != nil {
			return nil, err
		}
		edges, err := pathdata.Append(s.g, src)
		if err != nil {
			return nil, err
		}
		return edgeList(edges), nil
	})

	// (node i) looks up an existing node, e.g. one from a stored document.
	add("node", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return nil, errors.New("requires one node index")
		}
		i, err := toIndex(args[0])
		if err != nil {
			return nil, err
		}
		idx := graph.NodeIndex(i)
		if !s.g.HasNode(idx) {
			return nil, &graph.MissingNodeError{Index: idx}
		}
		return &sexpPoint{idx: idx}, nil
	})

	// (edge i)
	add("edge", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return nil, errors.New("requires one edge index")
		}
		i, err := toIndex(args[0])
		if err != nil {
			return nil, err
		}
		idx := graph.EdgeIndex(i)
		if !s.g.HasEdge(idx) {
			return nil, &graph.MissingEdgeError{Index: idx}
		}
		return &sexpEdge{idx: idx}, nil
	})

	// (nodes) lists every live node.
	add("nodes", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return nil, errors.New("takes no arguments")
		}
		idx := s.g.NodeIndices()
		items := make([]zygo.Sexp, len(idx))
		for i, n := range idx {
			items[i] = &sexpPoint{idx: n}
		}
		return zygo.MakeList(items), nil
	})

	// (edges)
	add("edges", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return nil, errors.New("takes no arguments")
		}
		return edgeList(s.g.EdgeIndices()), nil
	})

	// (move-point p x y)
	add("move_point", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return nil, errors.New("requires a point and x y")
		}
		p, err := toPoint(args[0])
		if err != nil {
			return nil, err
		}
		pts, err := toCoords(args[1:])
		if err != nil {
			return nil, err
		}
		if err := s.g.MoveNode(p, pts[0]); err != nil {
			return nil, err
		}
		return args[0], nil
	})

	// (remove-edge e)
	add("remove_edge", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return nil, errors.New("requires one edge")
		}
		ei, err := toEdge(args[0])
		if err != nil {
			return nil, err
		}
		return zygo.SexpNull, s.g.RemoveEdge(ei)
	})

	// (remove-point p)
	add("remove_point", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return nil, errors.New("requires one point")
		}
		p, err := toPoint(args[0])
		if err != nil {
			return nil, err
		}
		return zygo.SexpNull, s.g.RemoveNode(p)
	})

	// (winding :nonzero) or (winding :evenodd)
	add("winding", func(_ *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return nil, errors.New("requires :nonzero or :evenodd")
		}
		name, err := toKeywordString(args[0])
		if err != nil {
			return nil, err
		}
		w, ok := region.ParseWindingRule(name)
		if !ok {
			return nil, errors.Errorf("unknown rule %q, expected nonzero or evenodd", name)
		}
		s.winding = w
		return zygo.SexpNull, nil
	})
}

// endpoints reads the two point arguments that open every segment builtin.
func endpoints(args []zygo.Sexp) (a, b graph.NodeIndex, rest []zygo.Sexp, err error) {
	if len(args) < 2 {
		return graph.InvalidNode, graph.InvalidNode, nil, errors.New("requires two points")
	}
	if a, err = toPoint(args[0]); err != nil {
		return
	}
	if b, err = toPoint(args[1]); err != nil {
		return
	}
	return a, b, args[2:], nil
}
