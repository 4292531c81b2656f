package tile3d

import "testing"

func TestS2Cell_DistanceAndIntersect(t *testing.T) {
	c := S2Cell{Token: "89c25", CenterApprox: V3(0, 0, 0), RadiusApprox: 10}
	cam := Camera{Position: V3(50, 0, 0)}
	if got := c.DistanceToCamera(cam); got != 40 {
		t.Errorf("DistanceToCamera = %v, want 40", got)
	}
	near := NewPlane(V3(5, 0, 0), V3(1, 0, 0))
	if got := c.IntersectPlane(near); got != Intersecting {
		t.Errorf("IntersectPlane = %v, want Intersecting", got)
	}
}

func TestS2Cell_Transform(t *testing.T) {
	c := S2Cell{Token: "89c25", MinimumHeight: 0, MaximumHeight: 10, CenterApprox: V3(1, 0, 0), RadiusApprox: 2}
	got := c.Transform(Scale4(V3(2, 2, 2))).(S2Cell)
	if got.MaximumHeight != 20 {
		t.Errorf("MaximumHeight = %v, want 20", got.MaximumHeight)
	}
	if got.RadiusApprox != 4 {
		t.Errorf("RadiusApprox = %v, want 4", got.RadiusApprox)
	}
	if got.Token != "89c25" {
		t.Errorf("Token changed: %v", got.Token)
	}
}
