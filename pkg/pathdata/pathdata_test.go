package pathdata_test

import (
	"strings"
	"testing"

	"github.com/chazu/vecgraph/pkg/cycle"
	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/chazu/vecgraph/pkg/pathdata"
	"github.com/chazu/vecgraph/pkg/region"
	"github.com/pkg/errors"
)

func mustParse(t *testing.T, src string) *graph.Graph {
	t.Helper()
	g, err := pathdata.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return g
}

func positions(t *testing.T, g *graph.Graph) []graph.Point {
	t.Helper()
	var out []graph.Point
	for _, n := range g.NodeIndices() {
		p, _ := g.Position(n)
		out = append(out, p)
	}
	return out
}

func TestParseSquare(t *testing.T) {
	g := mustParse(t, "M0 0 L10 0 L10 10 L0 10 Z")
	if g.NodeCount() != 4 || g.EdgeCount() != 4 {
		t.Fatalf("got %d nodes, %d edges; want 4, 4", g.NodeCount(), g.EdgeCount())
	}
	regions, err := region.Build(g, region.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(regions) != 1 {
		t.Errorf("got %d regions, want 1", len(regions))
	}
}

func TestCloseReusesCoincidentStart(t *testing.T) {
	g := mustParse(t, "M0 0 L10 0 L10 10 L0 0 Z")
	if g.NodeCount() != 3 || g.EdgeCount() != 3 {
		t.Errorf("got %d nodes, %d edges; want 3, 3", g.NodeCount(), g.EdgeCount())
	}
}

func TestRelativeAndAxisCommands(t *testing.T) {
	g := mustParse(t, "m1 1 h10 v10 h-10 z")
	want := []graph.Point{graph.Pt(1, 1), graph.Pt(11, 1), graph.Pt(11, 11), graph.Pt(1, 11)}
	got := positions(t, g)
	if len(got) != len(want) {
		t.Fatalf("positions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("node %d at %v, want %v", i, got[i], want[i])
		}
	}
	if g.EdgeCount() != 4 {
		t.Errorf("got %d edges, want 4", g.EdgeCount())
	}
}

func TestImplicitLineto(t *testing.T) {
	g := mustParse(t, "M0,0 10,0 10,10z")
	if g.NodeCount() != 3 || g.EdgeCount() != 3 {
		t.Errorf("got %d nodes, %d edges; want 3, 3", g.NodeCount(), g.EdgeCount())
	}
}

func TestCurves(t *testing.T) {
	g := mustParse(t, "M0 0 Q5 5 10 0 c2 2 4 -2 6 0")
	if g.EdgeCount() != 2 {
		t.Fatalf("got %d edges, want 2", g.EdgeCount())
	}
	q, _ := g.Edge(0)
	if d, ok := q.Data.(graph.QuadraticData); !ok || d.Handle != graph.Pt(5, 5) {
		t.Errorf("edge 0 = %#v, want quadratic with handle (5,5)", q.Data)
	}
	c, _ := g.Edge(1)
	d, ok := c.Data.(graph.CubicData)
	if !ok || d.Handle1 != graph.Pt(12, 2) || d.Handle2 != graph.Pt(14, -2) {
		t.Errorf("edge 1 = %#v, want cubic with relative handles resolved", c.Data)
	}
	end, _ := g.Position(c.End)
	if end != graph.Pt(16, 0) {
		t.Errorf("cubic ends at %v, want (16,0)", end)
	}
}

func TestSubpathsNest(t *testing.T) {
	g := mustParse(t, "M0 0 L10 0 L10 10 Z M3 3 L6 3 L6 6 Z")
	regions, err := region.Build(g, region.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(regions) != 1 || len(regions[0].Holes()) != 1 {
		t.Errorf("want one region with one hole, got %d regions", len(regions))
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		src  string
		line int
		col  int
	}{
		{"L0 0", 1, 1},
		{"M0 0 L1", 1, 6},
		{"M0 0\nQ1 2 3", 2, 1},
		{"M0 0 L1 1 Z 4", 1, 11},
		{"Z", 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			_, err := pathdata.Parse(tc.src)
			var se *pathdata.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *SyntaxError", err)
			}
			if se.Line != tc.line || se.Col != tc.col {
				t.Errorf("position %d:%d, want %d:%d", se.Line, se.Col, tc.line, tc.col)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := pathdata.Parse("M0 0 X1 2"); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

func TestAppendLeavesGraphOnError(t *testing.T) {
	g := graph.New()
	g.Rect(0, 0, 1, 1)
	if _, err := pathdata.Append(g, "M5 5 L6 6 L7"); err == nil {
		t.Fatal("expected an error")
	}
	if g.NodeCount() != 4 || g.EdgeCount() != 4 {
		t.Errorf("graph changed: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	edges, err := pathdata.Append(g, "M5 5 L6 6")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if len(edges) != 1 || edges[0] != 4 {
		t.Errorf("Append returned %v, want [e4]", edges)
	}
}

func TestFormatCycleBox(t *testing.T) {
	g := graph.New()
	_, edges := g.Rect(0, 0, 10, 10)
	c, err := cycle.ClosedWalk(g, edges)
	if err != nil {
		t.Fatal(err)
	}
	got, err := pathdata.FormatCycle(g, c)
	if err != nil {
		t.Fatal(err)
	}
	if want := "M0 0 L10 0 L10 10 L0 10 L0 0 Z"; got != want {
		t.Errorf("FormatCycle = %q, want %q", got, want)
	}
	back := mustParse(t, got)
	if back.NodeCount() != 4 || back.EdgeCount() != 4 {
		t.Errorf("reparsed %d nodes, %d edges; want 4, 4", back.NodeCount(), back.EdgeCount())
	}
}

func TestFormatCycleFollowsDirection(t *testing.T) {
	g := graph.New()
	a := g.AddNode(graph.Pt(0, 0))
	b := g.AddNode(graph.Pt(10, 0))
	c := g.AddNode(graph.Pt(5, 8))
	e0, _ := g.Line(a, b)
	// Stored c->b, so the walk traverses it flipped.
	e1, _ := g.AddEdge(graph.CubicData{Handle1: graph.Pt(7, 8), Handle2: graph.Pt(10, 3)}, c, b)
	e2, _ := g.AddEdge(graph.QuadraticData{Handle: graph.Pt(1, 5)}, c, a)

	cyc, err := cycle.ClosedWalk(g, []graph.EdgeIndex{e2, e1, e0})
	if err != nil {
		t.Fatal(err)
	}
	got, err := pathdata.FormatCycle(g, cyc)
	if err != nil {
		t.Fatal(err)
	}
	want := "M0 0 L10 0 C10 3 7 8 5 8 Q1 5 0 0 Z"
	if got != want {
		t.Errorf("FormatCycle = %q, want %q", got, want)
	}
}

func TestFormatRegion(t *testing.T) {
	g := graph.New()
	g.Rect(0, 0, 10, 10)
	g.Rect(3, 3, 4, 4)
	regions, err := region.Build(g, region.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	got, err := pathdata.FormatRegion(g, regions[0])
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(got, "M"); n != 2 {
		t.Errorf("FormatRegion = %q, want two subpaths", got)
	}
	back := mustParse(t, got)
	if back.EdgeCount() != 8 {
		t.Errorf("reparsed %d edges, want 8", back.EdgeCount())
	}
}
