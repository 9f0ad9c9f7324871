package graph

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// NodeIndex is a stable handle to a node slot in a Graph.
type NodeIndex int

// EdgeIndex is a stable handle to an edge slot in a Graph.
type EdgeIndex int

const (
	InvalidNode NodeIndex = -1
	InvalidEdge EdgeIndex = -1
)

func (i NodeIndex) String() string { return fmt.Sprintf("n%d", int(i)) }
func (i EdgeIndex) String() string { return fmt.Sprintf("e%d", int(i)) }

// Point is a 2D position in artwork space.
type Point = v2.Vec

// Pt is shorthand for building a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}
