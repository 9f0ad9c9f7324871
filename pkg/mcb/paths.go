package mcb

import (
	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/utils"
)

// pathTree is a shortest-path tree rooted at one node. Distance is measured
// first in hops and then in geometric length.
type pathTree struct {
	root       graph.NodeIndex
	hops       map[graph.NodeIndex]int
	length     map[graph.NodeIndex]float64
	parentEdge map[graph.NodeIndex]graph.EdgeIndex
	parentNode map[graph.NodeIndex]graph.NodeIndex
}

func (t *pathTree) reached(n graph.NodeIndex) bool {
	_, ok := t.hops[n]
	return ok
}

// path returns the nodes and edges from the root to n. The node list starts
// with n and ends with the root.
func (t *pathTree) path(n graph.NodeIndex) ([]graph.NodeIndex, []graph.EdgeIndex) {
	nodes := []graph.NodeIndex{n}
	var edges []graph.EdgeIndex
	for n != t.root {
		edges = append(edges, t.parentEdge[n])
		n = t.parentNode[n]
		nodes = append(nodes, n)
	}
	return nodes, edges
}

type visit struct {
	node   graph.NodeIndex
	hops   int
	length float64
	seq    int
}

func compareVisits(a, b interface{}) int {
	va, vb := a.(*visit), b.(*visit)
	if n := utils.IntComparator(va.hops, vb.hops); n != 0 {
		return n
	}
	if va.length != vb.length {
		return utils.Float64Comparator(va.length, vb.length)
	}
	return utils.IntComparator(va.seq, vb.seq)
}

// shortestPaths runs Dijkstra from root. Ties keep the first parent found,
// and adjacency is scanned in ascending edge order, so the tree is
// deterministic.
func (s *search) shortestPaths(root graph.NodeIndex) (*pathTree, error) {
	t := &pathTree{
		root:       root,
		hops:       map[graph.NodeIndex]int{root: 0},
		length:     map[graph.NodeIndex]float64{root: 0},
		parentEdge: map[graph.NodeIndex]graph.EdgeIndex{root: graph.InvalidEdge},
		parentNode: map[graph.NodeIndex]graph.NodeIndex{root: graph.InvalidNode},
	}
	done := make(map[graph.NodeIndex]bool)
	frontier := priorityqueue.NewWith(compareVisits)
	seq := 0
	frontier.Enqueue(&visit{node: root})

	for !frontier.Empty() {
		item, _ := frontier.Dequeue()
		v := item.(*visit)
		if done[v.node] {
			continue
		}
		done[v.node] = true

		adj, _ := s.g.Adjacent(v.node)
		for _, ei := range adj {
			if err := s.step(1); err != nil {
				return nil, err
			}
			e, _ := s.g.Edge(ei)
			m := e.Other(v.node)
			if done[m] {
				continue
			}
			hops, length := v.hops+1, v.length+s.length(ei)
			if old, ok := t.hops[m]; ok {
				if old < hops || (old == hops && t.length[m] <= length) {
					continue
				}
			}
			t.hops[m] = hops
			t.length[m] = length
			t.parentEdge[m] = ei
			t.parentNode[m] = v.node
			seq++
			frontier.Enqueue(&visit{node: m, hops: hops, length: length, seq: seq})
		}
	}
	return t, nil
}
