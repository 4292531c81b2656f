package tile3d

import (
	"math"
	"testing"
)

func axisAlignedBox() OrientedBox {
	return OrientedBox{
		Center: V3(0, 0, 0),
		XAxis:  V3(2, 0, 0),
		YAxis:  V3(0, 3, 0),
		ZAxis:  V3(0, 0, 1),
	}
}

func TestOrientedBox_Corners(t *testing.T) {
	b := axisAlignedBox()
	pts := b.corners()
	if len(pts) != 8 {
		t.Fatalf("corners() returned %d points, want 8", len(pts))
	}
	for _, p := range pts {
		if math.Abs(p.X) != 2 || math.Abs(p.Y) != 3 || math.Abs(p.Z) != 1 {
			t.Errorf("unexpected corner %v", p)
		}
	}
}

func TestOrientedBox_IntersectPlane(t *testing.T) {
	b := axisAlignedBox()
	tests := []struct {
		name string
		p    Plane
		want PlaneResult
	}{
		{"inside", NewPlane(V3(-100, 0, 0), V3(1, 0, 0)), Inside},
		{"outside", NewPlane(V3(100, 0, 0), V3(1, 0, 0)), Outside},
		{"straddling", NewPlane(V3(0, 0, 0), V3(1, 0, 0)), Intersecting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IntersectPlane(tt.p); got != tt.want {
				t.Errorf("IntersectPlane = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrientedBox_Transform(t *testing.T) {
	b := axisAlignedBox()
	m := Translate4(V3(5, 0, 0))
	got := b.Transform(m).(OrientedBox)
	if !got.Center.Approx(V3(5, 0, 0), 1e-9) {
		t.Errorf("Transform center = %v, want (5,0,0)", got.Center)
	}
	if !got.XAxis.Approx(b.XAxis, 1e-9) {
		t.Errorf("Transform should not translate the axis vectors: %v", got.XAxis)
	}
}

func TestOrientedBox_DistanceToCamera(t *testing.T) {
	b := axisAlignedBox()
	cam := Camera{Position: V3(100, 0, 0)}
	if got := b.DistanceToCamera(cam); got <= 0 {
		t.Errorf("DistanceToCamera = %v, want > 0", got)
	}
}
