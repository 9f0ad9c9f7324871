// Package graph defines the vector path graph for vecgraph.
// The graph is a planar topology of positioned anchor points (nodes) joined
// by line, quadratic and cubic segments (edges). Nodes and edges live in
// arenas addressed by stable indices; removal tombstones a slot and a slot
// is never handed out again.
package graph
