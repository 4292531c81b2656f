package tile3d

import "testing"

func TestRegion_Transform(t *testing.T) {
	r := Region{West: -1, South: -0.5, East: 1, North: 0.5, MinimumHeight: 0, MaximumHeight: 100}
	got := r.Transform(Scale4(V3(1, 1, 2))).(Region)
	if got.West != r.West || got.East != r.East || got.South != r.South || got.North != r.North {
		t.Errorf("Transform must not affect lon/lat bounds: %+v", got)
	}
	if got.MaximumHeight != 200 {
		t.Errorf("MaximumHeight = %v, want 200", got.MaximumHeight)
	}
}

func TestRegion_IntersectPlane(t *testing.T) {
	r := Region{West: -0.1, South: -0.1, East: 0.1, North: 0.1, MinimumHeight: 0, MaximumHeight: 10}
	far := NewPlane(V3(1000, 0, 0), V3(1, 0, 0))
	if got := r.IntersectPlane(far); got != Outside {
		t.Errorf("IntersectPlane(far) = %v, want Outside", got)
	}
}
