package store_test

import (
	"reflect"
	"testing"

	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/chazu/vecgraph/pkg/store"
	"github.com/pkg/errors"
)

func openMem(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.DefaultOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openMem(t)

	g := graph.New()
	nodes, edges := g.Rect(0, 0, 10, 10)
	g.SetEdgeData(edges[1], graph.CubicData{Handle1: graph.Pt(12, 3), Handle2: graph.Pt(12, 7)})
	extra := g.AddNode(graph.Pt(20, 20))
	g.Line(nodes[0], extra)
	g.RemoveNode(extra)

	if err := s.Save("drawing", g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := s.Load("drawing")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.NodeCount() != g.NodeCount() || back.EdgeCount() != g.EdgeCount() {
		t.Errorf("counts %d/%d, want %d/%d", back.NodeCount(), back.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
	if back.NodeSlots() != g.NodeSlots() || back.EdgeSlots() != g.EdgeSlots() {
		t.Errorf("slots %d/%d, want %d/%d", back.NodeSlots(), back.EdgeSlots(), g.NodeSlots(), g.EdgeSlots())
	}
	for _, ei := range g.EdgeIndices() {
		want, _ := g.Edge(ei)
		got, err := back.Edge(ei)
		if err != nil {
			t.Fatalf("edge %s lost: %v", ei, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("edge %s = %+v, want %+v", ei, got, want)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	s := openMem(t)
	if _, err := s.Load("nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Load: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete("nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete: err = %v, want ErrNotFound", err)
	}
}

func TestListOverwriteDelete(t *testing.T) {
	s := openMem(t)
	small, big := graph.New(), graph.New()
	small.Rect(0, 0, 1, 1)
	big.Rect(0, 0, 1, 1)
	big.Rect(5, 5, 1, 1)

	for _, name := range []string{"b", "a", "c"} {
		if err := s.Save(name, small); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}

	if err := s.Save("b", big); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load("b")
	if err != nil {
		t.Fatal(err)
	}
	if got.EdgeCount() != 8 {
		t.Errorf("overwritten snapshot has %d edges, want 8", got.EdgeCount())
	}

	if err := s.Delete("a"); err != nil {
		t.Fatal(err)
	}
	names, _ = s.List()
	if want := []string{"b", "c"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List after delete = %v, want %v", names, want)
	}
}

func TestBadParams(t *testing.T) {
	s := openMem(t)
	if err := s.Save("", graph.New()); !errors.Is(err, store.ErrBadName) {
		t.Errorf("Save empty name: err = %v", err)
	}
	if _, err := store.Open(store.Options{ReadOnly: true}); !errors.Is(err, store.ErrBadParam) {
		t.Errorf("read-only in-memory: err = %v", err)
	}
}

func TestSavedSnapshotIsIndependent(t *testing.T) {
	s := openMem(t)
	g := graph.New()
	g.Rect(0, 0, 1, 1)
	if err := s.Save("doc", g); err != nil {
		t.Fatal(err)
	}
	g.Rect(2, 2, 1, 1)
	back, err := s.Load("doc")
	if err != nil {
		t.Fatal(err)
	}
	if back.EdgeCount() != 4 {
		t.Errorf("snapshot changed with the live graph: %d edges", back.EdgeCount())
	}
}
