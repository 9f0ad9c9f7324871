package curve

import (
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

func square(x, y, s float64) []v2.Vec {
	return []v2.Vec{{X: x, Y: y}, {X: x + s, Y: y}, {X: x + s, Y: y + s}, {X: x, Y: y + s}}
}

func TestSignedArea(t *testing.T) {
	ccw := square(0, 0, 10)
	if a := SignedArea(ccw); a != 100 {
		t.Errorf("ccw area = %v, want 100", a)
	}
	cw := []v2.Vec{ccw[3], ccw[2], ccw[1], ccw[0]}
	if a := SignedArea(cw); a != -100 {
		t.Errorf("cw area = %v, want -100", a)
	}
	if a := SignedArea(ccw[:2]); a != 0 {
		t.Errorf("degenerate area = %v, want 0", a)
	}
}

func TestContainsPoint(t *testing.T) {
	sq := square(0, 0, 10)
	tests := []struct {
		p    v2.Vec
		want bool
	}{
		{v2.Vec{X: 5, Y: 5}, true},
		{v2.Vec{X: 0.1, Y: 9.9}, true},
		{v2.Vec{X: -1, Y: 5}, false},
		{v2.Vec{X: 5, Y: 11}, false},
		{v2.Vec{X: 15, Y: 5}, false},
	}
	for _, tc := range tests {
		if got := ContainsPoint(sq, tc.p); got != tc.want {
			t.Errorf("ContainsPoint(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestBoundsAndBoxInside(t *testing.T) {
	outer := Bounds(square(0, 0, 10))
	inner := Bounds(square(2, 2, 3))
	if !BoxInside(inner, outer) {
		t.Error("inner box should be inside outer")
	}
	if BoxInside(outer, inner) {
		t.Error("outer box is not inside inner")
	}
	if Bounds(nil) != (sdf.Box2{}) {
		t.Errorf("empty bounds = %+v, want zero box", Bounds(nil))
	}
}
