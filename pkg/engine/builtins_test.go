package engine

import (
	"strings"
	"testing"

	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/chazu/vecgraph/pkg/region"
)

// ---------------------------------------------------------------------------
// Preprocessing
// ---------------------------------------------------------------------------

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "keyword",
			input:  `(winding :nonzero)`,
			expect: `(winding "__kw_nonzero")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `(path "M0 0 :x")`,
			expect: `(path "M0 0 :x")`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(move-point p 1 2)`,
			expect: `(move_point p 1 2)`,
		},
		{
			name:   "minus and negative numbers preserved",
			input:  `(- 10 5) (point -1 -2)`,
			expect: `(- 10 5) (point -1 -2)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; outline :open`,
			expect: `// outline :open`,
		},
		{
			name:   "escaped quote in string",
			input:  `"a \" :b" :c`,
			expect: `"a \" :b" "__kw_c"`,
		},
		{
			name:   "backtick string",
			input:  "`remove-edge :x`",
			expect: "`remove-edge :x`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.input); got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Drawing builtins
// ---------------------------------------------------------------------------

func run(t *testing.T, src string) EvalResult {
	t.Helper()
	res := NewEngine().Run(src)
	if len(res.Errors) > 0 {
		t.Fatalf("Run errors: %v", res.Errors)
	}
	return res
}

func TestRectMakesOneRegion(t *testing.T) {
	res := run(t, "(rect 0 0 10 10)")
	if res.Graph.NodeCount() != 4 || res.Graph.EdgeCount() != 4 {
		t.Fatalf("got %d nodes, %d edges; want 4, 4", res.Graph.NodeCount(), res.Graph.EdgeCount())
	}
	if len(res.Regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(res.Regions))
	}
	if res.Regions[0].Winding != region.WindingNonZero {
		t.Errorf("winding = %v, want nonzero", res.Regions[0].Winding)
	}
}

func TestPointsAndSegments(t *testing.T) {
	res := run(t, `
(def a (point 0 0))
(def b (point 10 0))
(def c (point 5 8.5))
(line a b)
(quad b c 9 6)
(cubic c a 2 7 0 3)
`)
	g := res.Graph
	if g.NodeCount() != 3 || g.EdgeCount() != 3 {
		t.Fatalf("got %d nodes, %d edges; want 3, 3", g.NodeCount(), g.EdgeCount())
	}
	wantKinds := []graph.EdgeKind{graph.EdgeLine, graph.EdgeQuadratic, graph.EdgeCubic}
	for i, k := range wantKinds {
		e, err := g.Edge(graph.EdgeIndex(i))
		if err != nil {
			t.Fatal(err)
		}
		if e.Kind() != k {
			t.Errorf("edge %d kind = %s, want %s", i, e.Kind(), k)
		}
	}
	if p, _ := g.Position(2); p != graph.Pt(5, 8.5) {
		t.Errorf("point c at %v", p)
	}
	if len(res.Regions) != 1 {
		t.Errorf("got %d regions, want 1", len(res.Regions))
	}
}

func TestPathAndWinding(t *testing.T) {
	res := run(t, `
(winding :evenodd)
(path "M0 0 H10 V10 H0 Z M3 3 h4 v4 h-4 z")
`)
	if len(res.Regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(res.Regions))
	}
	r := res.Regions[0]
	if r.Winding != region.WindingDefault {
		t.Errorf("winding = %v, want evenodd", r.Winding)
	}
	if len(r.Holes()) != 1 {
		t.Errorf("got %d holes, want 1", len(r.Holes()))
	}
}

func TestOpenPolygon(t *testing.T) {
	res := run(t, "(polygon 0 0 10 0 10 10 :open true)")
	if res.Graph.NodeCount() != 3 || res.Graph.EdgeCount() != 2 {
		t.Errorf("got %d nodes, %d edges; want 3, 2", res.Graph.NodeCount(), res.Graph.EdgeCount())
	}
	if len(res.Regions) != 0 {
		t.Errorf("open polyline produced %d regions", len(res.Regions))
	}
}

func TestEditingBuiltins(t *testing.T) {
	res := run(t, `
(def a (point 0 0))
(def b (point 10 0))
(def c (point 10 10))
(def d (point 50 50))
(line a b)
(def bc (line b c))
(line c a)
(line c d)
(move-point c 0 10)
(remove-point d)
(remove-edge bc)
`)
	g := res.Graph
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes, %d edges; want 3, 2", g.NodeCount(), g.EdgeCount())
	}
	if p, _ := g.Position(2); p != graph.Pt(0, 10) {
		t.Errorf("moved point at %v, want (0,10)", p)
	}
	if g.HasEdge(1) {
		t.Error("removed edge still present")
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"line needs points", "(line 1 2)", "line"},
		{"rect arity", "(rect 0 0 1)", "rect"},
		{"rect size", "(rect 0 0 -1 1)", "positive"},
		{"bad winding", "(winding :spiral)", "spiral"},
		{"removed point", "(def p (point 0 0)) (def q (point 1 1)) (remove-point q) (line p q)", "missing node"},
		{"removed edge twice", "(def p (point 0 0)) (def q (point 1 1)) (def e (line p q)) (remove-edge e) (remove-edge e)", "missing edge"},
		{"bad path", `(path "L0 0")`, "moveto"},
		{"odd polygon", "(polygon 0 0 1)", "pairs"},
		{"unknown node", "(node 7)", "missing node"},
		{"unknown edge", "(edge 7)", "missing edge"},
		{"node needs index", "(node 1.5)", "index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, evalErrs, err := NewEngine().Evaluate(tt.src)
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if g != nil {
				t.Error("expected nil graph")
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected an eval error")
			}
			if !strings.Contains(evalErrs[0].Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", evalErrs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestRunReportsWarnings(t *testing.T) {
	res := run(t, `
(point 40 40)
(def a (point 0 0))
(def b (point 0 0))
(line a b)
`)
	var isolated, zero bool
	for _, w := range res.Warnings {
		isolated = isolated || strings.Contains(w.Message, "isolated")
		zero = zero || strings.Contains(w.Message, "zero-length")
	}
	if !isolated || !zero {
		t.Errorf("warnings = %v, want isolated node and zero-length line", res.Warnings)
	}
}

func TestRunOnEditsDocument(t *testing.T) {
	base := graph.New()
	base.Rect(0, 0, 10, 10)
	res := NewEngine().RunOn(base, "(rect 3 3 4 4)")
	if len(res.Errors) > 0 {
		t.Fatalf("errors: %v", res.Errors)
	}
	if len(res.Regions) != 1 || len(res.Regions[0].Holes()) != 1 {
		t.Errorf("want one region with one hole, got %d regions", len(res.Regions))
	}
}

func TestLookupBuiltinsEditBase(t *testing.T) {
	base := graph.New()
	base.Rect(0, 0, 10, 10)

	g, evalErrs, err := NewEngine().EvaluateOn(base, "(move-point (node 2) 20 20) (remove-edge (edge 3))")
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("EvaluateOn: %v %v", err, evalErrs)
	}
	pos, err := g.Position(2)
	if err != nil || pos != graph.Pt(20, 20) {
		t.Errorf("node 2 at %v (%v), want (20, 20)", pos, err)
	}
	if g.HasEdge(3) || g.EdgeCount() != 3 {
		t.Errorf("edge 3 still present, %d edges", g.EdgeCount())
	}
	if p, _ := base.Position(2); p != graph.Pt(10, 10) || base.EdgeCount() != 4 {
		t.Error("base graph was modified")
	}

	g, evalErrs, err = NewEngine().EvaluateOn(base, "(remove-point (node 0))")
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("EvaluateOn: %v %v", err, evalErrs)
	}
	if g.HasNode(0) || g.EdgeCount() != 2 {
		t.Errorf("remove-point left node 0 or its edges: %d edges", g.EdgeCount())
	}
}

func TestListBuiltins(t *testing.T) {
	base := graph.New()
	base.Rect(0, 0, 10, 10)
	src := `
(def ps (nodes))
(def es (edges))
(line (first ps) (first (rest (rest ps))))
(remove-edge (first es))
`
	g, evalErrs, err := NewEngine().EvaluateOn(base, src)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("EvaluateOn: %v %v", err, evalErrs)
	}
	if g.EdgeCount() != 4 || g.HasEdge(0) {
		t.Errorf("got %d edges, edge 0 present %v", g.EdgeCount(), g.HasEdge(0))
	}
	e, err := g.Edge(4)
	if err != nil || e.Start != 0 || e.End != 2 {
		t.Errorf("diagonal = %+v (%v), want n0-n2", e, err)
	}
}

func TestRunFoldsEvalErrors(t *testing.T) {
	res := NewEngine().Run("(line)")
	if len(res.Errors) == 0 {
		t.Fatal("expected errors")
	}
	if res.Graph != nil || res.Regions != nil {
		t.Error("failed run should carry no graph or regions")
	}
}
