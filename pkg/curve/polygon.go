package curve

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// SignedArea returns the shoelace area of a closed polygon. The result is
// positive for counter-clockwise winding in a y-up frame. The closing edge
// from the last point back to the first is implicit.
func SignedArea(poly []v2.Vec) float64 {
	if len(poly) < 3 {
		return 0
	}
	var a float64
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].Cross(poly[j])
	}
	return a / 2
}

// ContainsPoint reports whether p lies inside the closed polygon using the
// even-odd rule. Points exactly on the boundary may report either way.
func ContainsPoint(poly []v2.Vec, p v2.Vec) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if p.X < x {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the axis-aligned box around pts. An empty slice yields the
// zero box.
func Bounds(pts []v2.Vec) sdf.Box2 {
	if len(pts) == 0 {
		return sdf.Box2{}
	}
	box := sdf.Box2{
		Min: v2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: v2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, p := range pts {
		box.Min = v2.Vec{X: math.Min(box.Min.X, p.X), Y: math.Min(box.Min.Y, p.Y)}
		box.Max = v2.Vec{X: math.Max(box.Max.X, p.X), Y: math.Max(box.Max.Y, p.Y)}
	}
	return box
}

// BoxInside reports whether inner lies within outer, boundaries included.
func BoxInside(inner, outer sdf.Box2) bool {
	return outer.Contains(inner.Min) && outer.Contains(inner.Max)
}
